package gnum

import (
	"fmt"
	"strings"
)

// Radix selects the numeral base used to render or parse a Value.
type Radix int

const (
	Binary  Radix = 2
	Octal   Radix = 8
	Decimal Radix = 10
	Hex     Radix = 16
)

// Radixes lists every valid Radix in ascending order.
var Radixes = []Radix{Binary, Octal, Decimal, Hex}

func (r Radix) Valid() bool {
	switch r {
	case Binary, Octal, Decimal, Hex:
		return true
	}
	return false
}

func (r Radix) String() string {
	switch r {
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Decimal:
		return "decimal"
	case Hex:
		return "hex"
	}
	return fmt.Sprintf("Radix(%d)", int(r))
}

// Prefix returns the conventional literal prefix for the radix, or an empty
// string for Decimal. Parsing functions never strip it; see ParsePrefixed.
func (r Radix) Prefix() string {
	switch r {
	case Binary:
		return "0b"
	case Octal:
		return "0o"
	case Hex:
		return "0x"
	}
	return ""
}

// Digits returns the number of digits a bit pattern of the given width is
// padded to. Octal does not divide evenly into any supported width, so it
// is rounded up. Decimal is never padded and returns 0.
func (r Radix) Digits(bits uint) int {
	switch r {
	case Binary:
		return int(bits)
	case Octal:
		return int((bits + 2) / 3)
	case Hex:
		return int((bits + 3) / 4)
	}
	return 0
}

// digitBits is the number of bits each digit of a power-of-two radix holds.
func (r Radix) digitBits() uint {
	switch r {
	case Binary:
		return 1
	case Octal:
		return 3
	case Hex:
		return 4
	}
	return 0
}

// ParseRadix accepts a radix name or abbreviation ("bin", "oct", "dec",
// "hex") or its base as a number ("2", "8", "10", "16").
func ParseRadix(s string) (Radix, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2", "b", "bin", "binary":
		return Binary, nil
	case "8", "o", "oct", "octal":
		return Octal, nil
	case "10", "d", "dec", "decimal":
		return Decimal, nil
	case "16", "x", "h", "hex", "hexadecimal":
		return Hex, nil
	}
	return 0, fmt.Errorf("gnum: radix %q invalid", s)
}

func (r Radix) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("gnum: radix %d invalid", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Radix) UnmarshalText(bts []byte) error {
	v, err := ParseRadix(string(bts))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
