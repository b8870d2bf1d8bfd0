package gnum

import (
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
)

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// FormatPattern renders the low 'bits' bits of p in the given radix.
//
// Binary, Octal and Hex render the unsigned bit pattern, left-padded with
// zeros to exactly radix.Digits(bits) digits; Hex uses lower case. Decimal
// renders the pattern as a signed, two's complement integer of the given
// width, with no padding.
//
// bits is clamped to 128. FormatPattern panics if radix is not valid.
func FormatPattern(p U128, bits uint, radix Radix) string {
	return formatPattern(p, bits, radix, lowerDigits)
}

// FormatPatternUpper is FormatPattern with upper case hex digits.
func FormatPatternUpper(p U128, bits uint, radix Radix) string {
	return formatPattern(p, bits, radix, upperDigits)
}

func formatPattern(p U128, bits uint, radix Radix, digits string) string {
	if bits > 128 {
		bits = 128
	}
	if bits == 0 {
		return ""
	}

	if radix == Decimal {
		return signExtend(p, bits).String()
	}

	shift := radix.digitBits()
	if shift == 0 {
		panic("gnum: invalid radix")
	}

	p = p.And(maskU128(bits))
	digitMask := uint64(radix) - 1

	buf := make([]byte, radix.Digits(bits))
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = digits[p.lo&digitMask]
		p = p.Rsh(shift)
	}
	return string(buf)
}

// ParsePattern parses text as a number of the given radix that must fit in
// 'bits' bits, and returns its bit pattern, zero-extended.
//
// Binary, Octal and Hex are read as an unsigned bit pattern: any number of
// leading zeros is allowed, but no sign, and the value must be < 2^bits.
// The pattern is not sign-extended; "ff" at 8 bits is the pattern for -1.
//
// Decimal accepts an optional leading '-', and the value must fit in a
// signed, two's complement integer of the given width.
//
// No prefix ("0x", "0b", ...) or whitespace is stripped. ParsePattern
// reports false on any malformed or out-of-range input; it never panics.
func ParsePattern(text string, bits uint, radix Radix) (U128, bool) {
	if bits == 0 || bits > 128 || !radix.Valid() {
		return U128{}, false
	}

	neg := false
	if radix == Decimal && len(text) > 0 && text[0] == '-' {
		neg = true
		text = text[1:]
	}

	mag, ok := parseMagnitude(text, radix)
	if !ok {
		return U128{}, false
	}

	if radix != Decimal {
		if mag.BitLen() > bits {
			return U128{}, false
		}
		return mag, true
	}

	limit := U128{lo: 1}.Lsh(bits - 1)
	if neg {
		if limit.LessThan(mag) {
			return U128{}, false
		}
		return mag.AsI128().Neg().AsU128().And(maskU128(bits)), true
	}
	if !mag.LessThan(limit) {
		return U128{}, false
	}
	return mag, true
}

// parseMagnitude reads an unsigned number of the given radix. It fails on an
// empty string, on any byte outside the radix's digit set and if the value
// overflows 128 bits.
func parseMagnitude(text string, radix Radix) (out U128, ok bool) {
	if len(text) == 0 {
		return out, false
	}
	var overflow bool
	for i := 0; i < len(text); i++ {
		d := digitValue(text[i])
		if d >= uint64(radix) {
			return U128{}, false
		}
		out, overflow = out.mulAdd64(uint64(radix), d)
		if overflow {
			return U128{}, false
		}
	}
	return out, true
}

func digitValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10
	}
	return 0xFF
}

// signExtend interprets the low 'bits' bits of p as a two's complement
// integer.
func signExtend(p U128, bits uint) I128 {
	if bits >= 128 {
		return p.AsI128()
	} else if bits == 0 {
		return I128{}
	}
	mask := maskU128(bits)
	p = p.And(mask)
	if p.Bit(bits-1) != 0 {
		p = p.Or(mask.Not())
	}
	return p.AsI128()
}

// Separate inserts sep between every group of chunk characters in s, counting
// from the right, so that the least significant digits always form a full
// group:
//
//	Separate("1234567", 3, ",") // "1,234,567"
//	Separate("deadbeef", 4, "_") // "dead_beef"
//
// A leading '-' stays outside the groups. If chunk is <= 0, s is returned
// unchanged. s is treated as bytes; it is intended for the ASCII output of
// the formatting functions in this package.
func Separate(s string, chunk int, sep string) string {
	if chunk <= 0 {
		return s
	}

	var sign string
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= chunk {
		return sign + s
	}

	first := len(s) % chunk
	if first == 0 {
		first = chunk
	}

	var sb strings.Builder
	sb.Grow(len(sign) + len(s) + (len(s)/chunk)*len(sep))
	sb.WriteString(sign)
	sb.WriteString(s[:first])
	for i := first; i < len(s); i += chunk {
		sb.WriteString(sep)
		sb.WriteString(s[i : i+chunk])
	}
	return sb.String()
}

// The functions below apply the conversions to Go's native integer types,
// using the type's own size as the width. Signed types render and parse
// Decimal as signed, unsigned types as unsigned.

func widthOf[T constraints.Integer]() uint {
	var t T
	return uint(unsafe.Sizeof(t)) * 8
}

func isSigned[T constraints.Integer]() bool {
	var t T
	return ^t < 0
}

func patternOf[T constraints.Integer](v T) U128 {
	return U128{lo: uint64(v)}.And(maskU128(widthOf[T]()))
}

func ToBinary[T constraints.Integer](v T) string {
	return FormatPattern(patternOf(v), widthOf[T](), Binary)
}

func ToOctal[T constraints.Integer](v T) string {
	return FormatPattern(patternOf(v), widthOf[T](), Octal)
}

func ToDecimal[T constraints.Integer](v T) string {
	if !isSigned[T]() {
		return patternOf(v).String()
	}
	return FormatPattern(patternOf(v), widthOf[T](), Decimal)
}

func ToHexLower[T constraints.Integer](v T) string {
	return FormatPattern(patternOf(v), widthOf[T](), Hex)
}

func ToHexUpper[T constraints.Integer](v T) string {
	return FormatPatternUpper(patternOf(v), widthOf[T](), Hex)
}

func FromBinary[T constraints.Integer](s string) (T, bool) {
	return fromRadix[T](s, Binary)
}

func FromOctal[T constraints.Integer](s string) (T, bool) {
	return fromRadix[T](s, Octal)
}

func FromDecimal[T constraints.Integer](s string) (T, bool) {
	return fromRadix[T](s, Decimal)
}

func FromHex[T constraints.Integer](s string) (T, bool) {
	return fromRadix[T](s, Hex)
}

func fromRadix[T constraints.Integer](s string, radix Radix) (T, bool) {
	bits := widthOf[T]()

	if radix == Decimal && !isSigned[T]() {
		mag, ok := parseMagnitude(s, radix)
		if !ok || mag.BitLen() > bits {
			return 0, false
		}
		return T(mag.AsUint64()), true
	}

	p, ok := ParsePattern(s, bits, radix)
	if !ok {
		return 0, false
	}
	return T(p.AsUint64()), true
}
