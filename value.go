package gnum

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Value holds a signed integer of one of the fixed widths in Sizes. It is a
// value type; the zero Value is a Byte holding 0.
//
// Only the active width carries information: the payload is always the
// sign-extension of exactly Size().Bits() bits, so two Values of the same
// width are equal if and only if their bit patterns are equal.
type Value struct {
	size Size
	v    I128
}

func ValueFrom8(v int8) Value   { return Value{size: Byte, v: I128From8(v)} }
func ValueFrom16(v int16) Value { return Value{size: Word, v: I128From16(v)} }
func ValueFrom32(v int32) Value { return Value{size: DWord, v: I128From32(v)} }
func ValueFrom64(v int64) Value { return Value{size: QWord, v: I128From64(v)} }
func ValueFrom128(v I128) Value { return Value{size: OWord, v: v} }

// ValueFromRaw creates a Value of the given size from the low bits of a raw
// 128-bit pattern; any bits above the width are discarded. An invalid size
// is treated as OWord.
func ValueFromRaw(size Size, hi, lo uint64) Value {
	return fromPattern(U128FromRaw(hi, lo), size)
}

func fromPattern(p U128, size Size) Value {
	if !size.Valid() {
		size = OWord
	}
	return Value{size: size, v: signExtend(p, size.Bits())}
}

// LeastSize returns v in the narrowest width that holds it exactly, trying
// Byte, Word, DWord, QWord and finally OWord.
func LeastSize(v I128) Value {
	for _, sz := range Sizes {
		if signExtend(v.AsU128(), sz.Bits()) == v {
			return Value{size: sz, v: v}
		}
	}
	return Value{size: OWord, v: v}
}

// RandValue generates a random Value of the given size from an external
// source.
func RandValue(source RandSource, size Size) Value {
	return fromPattern(RandU128(source), size)
}

// FromBase parses text in the given radix as a 128-bit number and returns it
// in the narrowest width that holds it exactly. See ParsePattern for the
// accepted syntax; non-decimal text is a 128-bit pattern, so "ff" is 255 (a
// Word), not -1.
func FromBase(text string, radix Radix) (Value, bool) {
	p, ok := ParsePattern(text, OWord.Bits(), radix)
	if !ok {
		return Value{}, false
	}
	return LeastSize(p.AsI128()), true
}

// Parse is FromBase returning an Option; it is None if text is malformed or
// out of range for the radix.
func Parse(text string, radix Radix) mo.Option[Value] {
	v, ok := FromBase(text, radix)
	if !ok {
		return mo.None[Value]()
	}
	return mo.Some(v)
}

// ParseSize parses text in the given radix as a number of the given width,
// and returns a Value of that width. Unlike FromBase, non-decimal text is a
// pattern of the requested width, so ParseSize("ff", Hex, Byte) is -1.
func ParseSize(text string, radix Radix, size Size) (Value, bool) {
	if !size.Valid() {
		return Value{}, false
	}
	p, ok := ParsePattern(text, size.Bits(), radix)
	if !ok {
		return Value{}, false
	}
	return fromPattern(p, size), true
}

// ParsePrefixed is FromBase for user-entered text: surrounding whitespace and
// one literal prefix for the radix ("0x", "0b", "0o", in either case) are
// removed first.
func ParsePrefixed(text string, radix Radix) (Value, bool) {
	text = strings.TrimSpace(text)
	if pfx := radix.Prefix(); pfx != "" && len(text) >= len(pfx) && strings.EqualFold(text[:len(pfx)], pfx) {
		text = text[len(pfx):]
	}
	return FromBase(text, radix)
}

// Size reports which width is active.
func (v Value) Size() Size { return v.size }

// Bits returns the number of bits in the active width.
func (v Value) Bits() uint { return v.size.Bits() }

// Int128 returns v sign-extended to 128 bits.
func (v Value) Int128() I128 { return v.v }

// Pattern returns the raw bits of v, zero-extended to 128 bits.
func (v Value) Pattern() U128 {
	return v.v.AsU128().And(maskU128(v.size.Bits()))
}

// Raw returns the high and low 64 bits of Pattern; ValueFromRaw reverses it.
func (v Value) Raw() (hi, lo uint64) { return v.Pattern().Raw() }

// AsInt64 truncates v to fit in an int64. Only an OWord can fall outside
// the range; see IsInt64.
func (v Value) AsInt64() int64 { return v.v.AsInt64() }

// IsInt64 reports whether v can be represented as an int64.
func (v Value) IsInt64() bool { return v.v.IsInt64() }

func (v Value) IsZero() bool { return v.v.IsZero() }

// SignBit reports whether the most significant bit of the active width is
// set.
func (v Value) SignBit() bool { return v.v.Sign() < 0 }

// Equal reports whether v and n have the same width and the same value.
func (v Value) Equal(n Value) bool { return v == n }

// NumEqual reports whether v and n hold the same number, whatever their
// widths.
func (v Value) NumEqual(n Value) bool { return v.v.Equal(n.v) }

// Resize converts v to another width by sign-extending it and then
// truncating to the target width. Narrowing discards high-order bits
// (wraparound, not saturation). An invalid size is treated as OWord.
func (v Value) Resize(size Size) Value {
	return fromPattern(v.v.AsU128(), size)
}

func (v Value) ToByte() Value  { return v.Resize(Byte) }
func (v Value) ToWord() Value  { return v.Resize(Word) }
func (v Value) ToDWord() Value { return v.Resize(DWord) }
func (v Value) ToQWord() Value { return v.Resize(QWord) }
func (v Value) ToOWord() Value { return v.Resize(OWord) }

// Bit reports whether bit idx is set, where 0 is the least significant bit.
// Bits at or above the width are always unset.
func (v Value) Bit(idx uint) bool {
	if idx >= v.size.Bits() {
		return false
	}
	return v.v.AsU128().Bit(idx) != 0
}

// SetBit returns a copy of v with bit idx set or cleared. Indexes at or
// above the width return v unchanged.
func (v Value) SetBit(idx uint, on bool) Value {
	if idx >= v.size.Bits() {
		return v
	}
	var b uint
	if on {
		b = 1
	}
	return fromPattern(v.v.AsU128().SetBit(idx, b), v.size)
}

// FlipBit toggles bit idx in place. Indexes at or above the width are
// ignored.
func (v *Value) FlipBit(idx uint) {
	if idx >= v.size.Bits() {
		return
	}
	*v = fromPattern(v.v.AsU128().Xor(U128{lo: 1}.Lsh(idx)), v.size)
}

// Lsh returns v shifted left by n bits within its width. Bits shifted past
// the top of the width are discarded.
func (v Value) Lsh(n uint) Value {
	return fromPattern(v.v.Lsh(n).AsU128(), v.size)
}

// Rsh returns v arithmetically shifted right by n bits; the sign bit of the
// width is copied into the vacated bits.
func (v Value) Rsh(n uint) Value {
	return Value{size: v.size, v: v.v.Rsh(n)}
}

// Shl shifts v left by one bit in place.
func (v *Value) Shl() { *v = v.Lsh(1) }

// Shr shifts v right by one bit in place, preserving the sign.
func (v *Value) Shr() { *v = v.Rsh(1) }

// Neg returns -v, wrapping within the width: the most negative value of a
// width is its own negation.
func (v Value) Neg() Value {
	return fromPattern(v.v.Neg().AsU128(), v.size)
}

// ToBase renders v in the given radix. Binary, Octal and Hex show the bit
// pattern of the width, zero-padded; Decimal shows the signed value. It
// panics if radix is not valid.
func (v Value) ToBase(radix Radix) string {
	return FormatPattern(v.Pattern(), v.size.Bits(), radix)
}

// ToHexUpper renders v as upper case, zero-padded hex.
func (v Value) ToHexUpper() string {
	return FormatPatternUpper(v.Pattern(), v.size.Bits(), Hex)
}

// Text renders v like ToBase, but with leading zeros removed.
func (v Value) Text(radix Radix) string {
	s := v.ToBase(radix)
	if radix == Decimal {
		return s
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

// Grouped renders v like ToBase and separates the digits into groups of
// chunk characters with sep; see Separate.
func (v Value) Grouped(radix Radix, chunk int, sep string) string {
	return Separate(v.ToBase(radix), chunk, sep)
}

// String renders v in decimal.
func (v Value) String() string { return v.v.String() }

// Format implements fmt.Formatter. %b, %o, %x and %X render the zero-padded
// bit pattern of the width; %d, %s and %v render the signed decimal value.
// The '#' flag adds the radix prefix and '+' forces a sign on decimal
// output. Width pads with spaces, on the right with '-', or with zeros
// after any sign or prefix with '0'.
func (v Value) Format(s fmt.State, c rune) {
	var sign, prefix, out string
	switch c {
	case 'b':
		out = v.ToBase(Binary)
	case 'o':
		out = v.ToBase(Octal)
	case 'x':
		out = v.ToBase(Hex)
	case 'X':
		out = v.ToHexUpper()
	case 'd', 's', 'v':
		out = v.String()
		if strings.HasPrefix(out, "-") {
			sign, out = "-", out[1:]
		} else if s.Flag('+') {
			sign = "+"
		}
	default:
		fmt.Fprintf(s, "%%!%c(gnum.Value=%s)", c, v.String())
		return
	}

	if s.Flag('#') {
		switch c {
		case 'b':
			prefix = Binary.Prefix()
		case 'o':
			prefix = Octal.Prefix()
		case 'x':
			prefix = Hex.Prefix()
		case 'X':
			prefix = "0X"
		}
	}

	if w, ok := s.Width(); ok {
		if pad := w - len(sign) - len(prefix) - len(out); pad > 0 {
			switch {
			case s.Flag('-'):
				out += strings.Repeat(" ", pad)
			case s.Flag('0'):
				out = strings.Repeat("0", pad) + out
			default:
				sign = strings.Repeat(" ", pad) + sign
			}
		}
	}
	fmt.Fprint(s, sign, prefix, out)
}
