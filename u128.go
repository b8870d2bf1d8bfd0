package gnum

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
)

// U128 is an unsigned 128-bit integer. In this package it mostly serves as
// the raw bit pattern behind a Value; the OWord width has no native Go type.
type U128 struct {
	hi, lo uint64
}

func U128FromRaw(hi, lo uint64) U128 { return U128{hi: hi, lo: lo} }
func U128From64(v uint64) U128       { return U128{hi: 0, lo: v} }

// U128FromString creates a U128 from a string. Overflow truncates to MaxU128
// and sets accurate to 'false'. Only decimal strings are supported; see
// ParsePattern for the other radices.
func U128FromString(s string) (out U128, accurate bool, err error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return out, false, fmt.Errorf("gnum: u128 string %q invalid", s)
	}
	out, accurate = U128FromBigInt(b)
	return out, accurate, nil
}

// U128FromBigInt creates a U128 from a big.Int. Overflow truncates to MaxU128
// and sets accurate to 'false'.
func U128FromBigInt(v *big.Int) (out U128, accurate bool) {
	if v.Sign() < 0 {
		return out, false
	}

	words := v.Bits()

	switch intSize {
	case 64:
		lw := len(words)
		switch lw {
		case 0:
			return U128{}, true
		case 1:
			return U128{lo: uint64(words[0])}, true
		case 2:
			return U128{hi: uint64(words[1]), lo: uint64(words[0])}, true
		default:
			return MaxU128, false
		}

	case 32:
		lw := len(words)
		switch lw {
		case 0:
			return U128{}, true
		case 1:
			return U128{lo: uint64(words[0])}, true
		case 2:
			return U128{lo: (uint64(words[1]) << 32) | (uint64(words[0]))}, true
		case 3:
			return U128{hi: uint64(words[2]), lo: (uint64(words[1]) << 32) | (uint64(words[0]))}, true
		case 4:
			return U128{
				hi: (uint64(words[3]) << 32) | (uint64(words[2])),
				lo: (uint64(words[1]) << 32) | (uint64(words[0])),
			}, true
		default:
			return MaxU128, false
		}

	default:
		panic("gnum: unsupported bit size")
	}
}

// RandU128 generates a random 128-bit pattern from an external source; every
// bit is random.
func RandU128(source RandSource) (out U128) {
	return U128{hi: source.Uint64(), lo: source.Uint64()}
}

// maskU128 returns a U128 with the low n bits set. n must be in [1, 128].
func maskU128(n uint) U128 {
	return MaxU128.Rsh(128 - n)
}

func (u U128) IsZero() bool { return u == zeroU128 }

// Raw splits u into its high and low 64 bits; U128FromRaw reverses it.
func (u U128) Raw() (hi, lo uint64) { return u.hi, u.lo }

// String returns the decimal representation of u.
func (u U128) String() string {
	if u.IsUint64() {
		return strconv.FormatUint(u.lo, 10)
	}

	// 1e19 is the largest power of 10 that fits in a uint64, so each
	// division peels off exactly 19 digits.
	const chunk, chunkDigits = 10000000000000000000, 19

	var buf [40]byte
	i := len(buf)
	for u.hi != 0 {
		var r uint64
		u, r = u.QuoRem64(chunk)
		for j := 0; j < chunkDigits; j++ {
			i--
			buf[i] = byte('0' + r%10)
			r /= 10
		}
	}
	return strconv.FormatUint(u.lo, 10) + string(buf[i:])
}

func (u U128) Format(s fmt.State, c rune) {
	// FIXME: This is good enough for now, but not forever.
	u.AsBigInt().Format(s, c)
}

func (u U128) IntoBigInt(b *big.Int) {
	switch intSize {
	case 64:
		bits := b.Bits()
		ln := len(bits)
		if len(bits) < 2 {
			bits = append(bits, make([]big.Word, 2-ln)...)
		}
		bits = bits[:2]
		bits[0] = big.Word(u.lo)
		bits[1] = big.Word(u.hi)
		b.SetBits(bits)

	case 32:
		bits := b.Bits()
		ln := len(bits)
		if len(bits) < 4 {
			bits = append(bits, make([]big.Word, 4-ln)...)
		}
		bits = bits[:4]
		bits[0] = big.Word(u.lo & 0xFFFFFFFF)
		bits[1] = big.Word(u.lo >> 32)
		bits[2] = big.Word(u.hi & 0xFFFFFFFF)
		bits[3] = big.Word(u.hi >> 32)
		b.SetBits(bits)

	default:
		if u.hi > 0 {
			b.SetUint64(u.hi)
			b.Lsh(b, 64)
		}
		var lo big.Int
		lo.SetUint64(u.lo)
		b.Add(b, &lo)
	}
}

func (u U128) AsBigInt() (b *big.Int) {
	var v big.Int
	u.IntoBigInt(&v)
	return &v
}

// AsI128 performs a direct cast of a U128 to an I128, which will interpret it
// as a two's complement value.
func (u U128) AsI128() I128 {
	return I128{lo: u.lo, hi: u.hi}
}

// AsUint64 truncates the U128 to fit in a uint64. Values outside the range
// will over/underflow. See IsUint64() if you want to check before you convert.
func (u U128) AsUint64() uint64 {
	return u.lo
}

// IsUint64 reports whether u can be represented as a uint64.
func (u U128) IsUint64() bool {
	return u.hi == 0
}

func (u U128) Cmp(n U128) int {
	if u.hi > n.hi {
		return 1
	} else if u.hi < n.hi {
		return -1
	} else if u.lo > n.lo {
		return 1
	} else if u.lo < n.lo {
		return -1
	}
	return 0
}

func (u U128) Equal(n U128) bool {
	return u.hi == n.hi && u.lo == n.lo
}

func (u U128) LessThan(n U128) bool {
	return u.hi < n.hi || (u.hi == n.hi && u.lo < n.lo)
}

func (u U128) And(v U128) (out U128) {
	out.hi = u.hi & v.hi
	out.lo = u.lo & v.lo
	return out
}

func (u U128) AndNot(v U128) (out U128) {
	out.hi = u.hi &^ v.hi
	out.lo = u.lo &^ v.lo
	return out
}

func (u U128) Or(v U128) (out U128) {
	out.hi = u.hi | v.hi
	out.lo = u.lo | v.lo
	return out
}

func (u U128) Xor(v U128) (out U128) {
	out.hi = u.hi ^ v.hi
	out.lo = u.lo ^ v.lo
	return out
}

func (u U128) Not() (out U128) {
	out.hi = ^u.hi
	out.lo = ^u.lo
	return out
}

func (u U128) Lsh(n uint) (v U128) {
	if n == 0 {
		return u
	} else if n > 64 {
		v.hi = u.lo << (n - 64)
		v.lo = 0
	} else if n < 64 {
		v.hi = (u.hi << n) | (u.lo >> (64 - n))
		v.lo = u.lo << n
	} else if n == 64 {
		v.hi = u.lo
		v.lo = 0
	}
	return v
}

func (u U128) Rsh(n uint) (v U128) {
	if n == 0 {
		return u
	} else if n > 64 {
		v.lo = u.hi >> (n - 64)
		v.hi = 0
	} else if n < 64 {
		v.lo = (u.lo >> n) | (u.hi << (64 - n))
		v.hi = u.hi >> n
	} else if n == 64 {
		v.lo = u.hi
		v.hi = 0
	}

	return v
}

// Bit returns the value of the i'th bit of u (0 or 1). Bits at or above 128
// are always 0.
func (u U128) Bit(i uint) uint {
	if i >= 128 {
		return 0
	} else if i >= 64 {
		return uint((u.hi >> (i - 64)) & 1)
	}
	return uint((u.lo >> i) & 1)
}

// SetBit returns a copy of u with the i'th bit set to b (0 or 1). Indexes at
// or above 128 leave u unchanged.
func (u U128) SetBit(i uint, b uint) U128 {
	if i >= 128 {
		return u
	}
	bit := U128{lo: 1}.Lsh(i)
	if b == 0 {
		return u.AndNot(bit)
	}
	return u.Or(bit)
}

func (u U128) LeadingZeros() uint {
	if u.hi == 0 {
		return uint(bits.LeadingZeros64(u.lo)) + 64
	} else {
		return uint(bits.LeadingZeros64(u.hi))
	}
}

// BitLen returns the number of bits required to represent u; 0 for 0.
func (u U128) BitLen() uint {
	return 128 - u.LeadingZeros()
}

// QuoRem64 returns the quotient and remainder of u/by. If by == 0, a
// division-by-zero run-time panic occurs.
func (u U128) QuoRem64(by uint64) (q U128, r uint64) {
	if by == 0 {
		panic("u128: division by zero")
	}
	if u.hi < by {
		q.lo, r = quorem128by64(u.hi, u.lo, by)
		return q, r
	}
	q.hi, r = u.hi/by, u.hi%by
	q.lo, r = quorem128by64(r, u.lo, by)
	return q, r
}

// mulAdd64 returns u*m + a, and whether the result overflowed 128 bits.
func (u U128) mulAdd64(m, a uint64) (out U128, overflow bool) {
	hiCarry, hi := bits.Mul64(u.hi, m)
	loHi, lo := bits.Mul64(u.lo, m)

	hi, c1 := bits.Add64(hi, loHi, 0)
	lo, c2 := bits.Add64(lo, a, 0)
	hi, c3 := bits.Add64(hi, 0, c2)

	return U128{hi: hi, lo: lo}, hiCarry != 0 || c1 != 0 || c3 != 0
}

// Hacker's delight 9-4, divlu. u1 must be < v.
func quorem128by64(u1, u0, v uint64) (q, r uint64) {
	var b uint64 = 1 << 32
	var un1, un0, vn1, vn0, q1, q0, un32, un21, un10, rhat, left, right uint64

	s := uint(bits.LeadingZeros64(v))
	v <<= s

	vn1 = v >> 32
	vn0 = v & 0xffffffff

	if s > 0 {
		un32 = (u1 << s) | (u0 >> (64 - s))
		un10 = u0 << s
	} else {
		un32 = u1
		un10 = u0
	}

	un1 = un10 >> 32
	un0 = un10 & 0xffffffff

	q1 = un32 / vn1
	rhat = un32 % vn1

	left = q1 * vn0
	right = (rhat << 32) + un1

again1:
	if (q1 >= b) || (left > right) {
		q1--
		rhat += vn1
		if rhat < b {
			left -= vn0
			right = (rhat << 32) | un1
			goto again1
		}
	}

	un21 = (un32 << 32) + (un1 - (q1 * v))

	q0 = un21 / vn1
	rhat = un21 % vn1

	left = q0 * vn0
	right = (rhat << 32) | un0

again2:
	if (q0 >= b) || (left > right) {
		q0--
		rhat += vn1
		if rhat < b {
			left -= vn0
			right = (rhat << 32) | un0
			goto again2
		}
	}

	return (q1 << 32) | q0, ((un21 << 32) + (un0 - (q0 * v))) >> s
}

func (u U128) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *U128) UnmarshalText(bts []byte) (err error) {
	v, acc, err := U128FromString(string(bts))
	if err != nil {
		return err
	} else if !acc {
		return fmt.Errorf("gnum: u128 %q out of range", string(bts))
	}
	*u = v
	return nil
}

func (u U128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

func (u *U128) UnmarshalJSON(bts []byte) (err error) {
	if len(bts) > 0 && bts[0] == '"' {
		ln := len(bts)
		if ln < 2 || bts[ln-1] != '"' {
			return fmt.Errorf("gnum: u128 invalid JSON %q", string(bts))
		}
		bts = bts[1 : ln-1]
	}

	v, acc, err := U128FromString(string(bts))
	if err != nil {
		return err
	} else if !acc {
		return fmt.Errorf("gnum: u128 %q out of range", string(bts))
	}
	*u = v
	return nil
}
