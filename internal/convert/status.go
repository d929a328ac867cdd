package convert

import "github.com/pdiddy/ffxi-audio/pkg/types"

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func (c *Converter) tag(o types.Outcome) string {
	var label, color string
	switch o {
	case types.OutcomeConverted:
		label, color = "[OK]", ansiGreen
	case types.OutcomeSkipped:
		label, color = "[SKIP]", ansiYellow
	case types.OutcomeDecodeFailed, types.OutcomeEncodeFailed:
		label, color = "[FAIL]", ansiRed
	case types.OutcomeInterrupted:
		label, color = "[STOP]", ansiYellow
	default:
		label, color = "[ERROR]", ansiRed
	}
	if !c.color {
		return label
	}
	return color + label + ansiReset
}
