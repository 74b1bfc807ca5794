package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds the settings that decide where a top-level expression ends.
// The zero value parses to EOF.
type parsectx struct {
	// wseof holds the space runes that end the input.
	wseof string
	// ceof and seof allow a comma or semicolon, respectively, to end the
	// input.
	ceof, seof bool
}

// stopopt replaces the termination settings entirely.
type stopopt parsectx

func (o stopopt) parseOption(parsectx) parsectx {
	return parsectx(o)
}

// StopOn makes the parser end the expression at any of the given runes, each
// of which must be a comma, a semicolon, or a space rune. A space rune only
// ends an expression where the expression could be complete, so a newline
// after an operator continues the expression. Nothing ends an expression
// inside brackets.
//
// Each StopOn replaces any earlier one. StopOn() restores parsing to EOF.
func StopOn(chars ...rune) ParseOption {
	var o stopopt
	for _, r := range chars {
		switch {
		case r == ',':
			o.ceof = true
		case r == ';':
			o.seof = true
		case unicode.IsSpace(r):
			if !strings.ContainsRune(o.wseof, r) {
				o.wseof += string(r)
			}
		default:
			panic("calc: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	return o
}
