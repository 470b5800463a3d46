package term

// Glyph ramps ordered from densest to emptiest.
var shadingStyles = [][]rune{
	// Heavy to light blocks
	{'█', '▓', '▒', '░', '▪', '·', '˙', ' '},
	// Circle variations
	{'●', '◉', '◎', '○', '◌', '◦', '∘', '·', '˙', ' '},
	// ASCII traditional
	{'@', '#', '&', '%', '$', 'W', 'M', 'H', '8', '0', 'Q', 'O', 'o', '*', '+', '=', '-', '^', ':', '.', ' '},
	// Dots and marks
	{'■', '▪', '□', '▫', '♦', '◊', '▬', '▭', '·', '˙', ' '},
}

// StyleCount is the number of glyph ramps available to SetStyle.
var StyleCount = len(shadingStyles)

// depthChar maps an intensity in [0,1] to a glyph; 1 is the densest.
func depthChar(intensity float64, style int) rune {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}

	chars := shadingStyles[style%len(shadingStyles)]
	idx := int((1 - intensity) * float64(len(chars)-1))
	return chars[idx]
}
