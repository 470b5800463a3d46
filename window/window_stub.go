//go:build !cgo

package window

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"hologlobe/v2/globe"
)

func Run(_ context.Context, _ globe.Config, _ zerolog.Logger, _, _ int) error {
	return errors.New("window backend requires cgo (build/run with CGO_ENABLED=1)")
}
