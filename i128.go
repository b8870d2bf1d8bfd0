package gnum

import (
	"fmt"
	"math/big"
)

// I128 is a signed, two's complement 128-bit integer. It is the payload of
// every Value regardless of width.
type I128 struct {
	hi uint64
	lo uint64
}

const (
	signBit = 0x8000000000000000
)

// I128FromString creates a I128 from a string. Overflow truncates to
// MaxI128/MinI128 and sets accurate to 'false'. Only decimal strings are
// supported; see ParsePattern for the other radices.
func I128FromString(s string) (out I128, accurate bool, err error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return out, false, fmt.Errorf("gnum: i128 string %q invalid", s)
	}
	out, accurate = I128FromBigInt(b)
	return out, accurate, nil
}

func I128From64(v int64) I128 {
	var hi uint64
	if v < 0 {
		hi = maxUint64
	}
	return I128{hi: hi, lo: uint64(v)}
}

func I128From32(v int32) I128 { return I128From64(int64(v)) }
func I128From16(v int16) I128 { return I128From64(int64(v)) }
func I128From8(v int8) I128   { return I128From64(int64(v)) }

var (
	minI128AsAbsU128 = U128{hi: 0x8000000000000000, lo: 0}
	maxI128AsU128    = U128{hi: 0x7FFFFFFFFFFFFFFF, lo: 0xFFFFFFFFFFFFFFFF}
)

func I128FromBigInt(v *big.Int) (out I128, accurate bool) {
	neg := v.Sign() < 0

	words := v.Bits()

	var u U128
	accurate = true

	switch intSize {
	case 64:
		lw := len(words)
		switch lw {
		case 0:
		case 1:
			u.lo = uint64(words[0])
		case 2:
			u.hi = uint64(words[1])
			u.lo = uint64(words[0])
		default:
			u, accurate = MaxU128, false
		}

	case 32:
		lw := len(words)
		switch lw {
		case 0:
		case 1:
			u.lo = uint64(words[0])
		case 2:
			u.lo = (uint64(words[1]) << 32) | (uint64(words[0]))
		case 3:
			u.hi = uint64(words[2])
			u.lo = (uint64(words[1]) << 32) | (uint64(words[0]))
		case 4:
			u.hi = (uint64(words[3]) << 32) | (uint64(words[2]))
			u.lo = (uint64(words[1]) << 32) | (uint64(words[0]))
		default:
			u, accurate = MaxU128, false
		}

	default:
		panic("gnum: unsupported bit size")
	}

	if !neg {
		if cmp := u.Cmp(maxI128AsU128); cmp == 0 {
			out = MaxI128
		} else if cmp > 0 {
			out, accurate = MaxI128, false
		} else {
			out = u.AsI128()
		}

	} else {
		if cmp := u.Cmp(minI128AsAbsU128); cmp == 0 {
			out = MinI128
		} else if cmp > 0 {
			out, accurate = MinI128, false
		} else {
			out = u.AsI128().Neg()
		}
	}

	return out, accurate
}

func (i I128) IsZero() bool { return i == zeroI128 }

// String returns the signed decimal representation of i.
func (i I128) String() string {
	if i.hi&signBit != 0 {
		return "-" + i.Neg().AsU128().String()
	}
	return i.AsU128().String()
}

func (i I128) Format(s fmt.State, c rune) {
	// FIXME: This is good enough for now, but not forever.
	i.AsBigInt().Format(s, c)
}

// IntoBigInt copies this I128 into a big.Int, allowing you to retain and
// recycle memory.
func (i I128) IntoBigInt(b *big.Int) {
	neg := i.hi&signBit != 0
	b.SetUint64(0)
	if i.hi > 0 {
		b.SetUint64(i.hi)
		b.Lsh(b, 64)
	}
	var lo big.Int
	lo.SetUint64(i.lo)
	b.Add(b, &lo)

	if neg {
		b.Xor(b, maxBigU128).Add(b, big1).Neg(b)
	}
}

// AsBigInt allocates a new big.Int and copies this I128 into it.
func (i I128) AsBigInt() (b *big.Int) {
	b = new(big.Int)
	i.IntoBigInt(b)
	return b
}

// AsU128 performs a direct cast of an I128 to a U128. Negative numbers
// become values > math.MaxI128.
func (i I128) AsU128() U128 {
	return U128{lo: i.lo, hi: i.hi}
}

// AsInt64 truncates the I128 to fit in a int64. Values outside the range will
// over/underflow. See IsInt64() if you want to check before you convert.
func (i I128) AsInt64() int64 {
	if i.hi&signBit != 0 {
		return -int64(^(i.lo - 1))
	} else {
		return int64(i.lo)
	}
}

// IsInt64 reports whether i can be represented as a int64.
func (i I128) IsInt64() bool {
	if i.hi&signBit != 0 {
		return i.hi == maxUint64 && i.lo >= 0x8000000000000000
	} else {
		return i.hi == 0 && i.lo <= maxInt64
	}
}

func (i I128) Sign() int {
	if i == zeroI128 {
		return 0
	} else if i.hi&signBit == 0 {
		return 1
	}
	return -1
}

func (i I128) Neg() (v I128) {
	if i.hi == 0 && i.lo == 0 {
		return v
	}

	if i == MinI128 {
		// Overflow case: -MinI128 == MinI128
		return i

	} else if i.hi&signBit != 0 {
		v.hi = ^i.hi
		v.lo = ^(i.lo - 1)
	} else {
		v.hi = ^i.hi
		v.lo = (^i.lo) + 1
	}
	if v.lo == 0 { // handle overflow
		v.hi++
	}
	return v
}

// Lsh shifts i left by n bits. Bits shifted past bit 127 are discarded,
// including the sign.
func (i I128) Lsh(n uint) I128 {
	return i.AsU128().Lsh(n).AsI128()
}

// Rsh performs an arithmetic right shift of i by n bits, filling from the
// left with copies of the sign bit.
func (i I128) Rsh(n uint) (v I128) {
	fill := uint64(int64(i.hi) >> 63)
	if n == 0 {
		return i
	} else if n >= 128 {
		v.hi, v.lo = fill, fill
	} else if n > 64 {
		v.lo = uint64(int64(i.hi) >> (n - 64))
		v.hi = fill
	} else if n < 64 {
		v.lo = (i.lo >> n) | (i.hi << (64 - n))
		v.hi = uint64(int64(i.hi) >> n)
	} else if n == 64 {
		v.lo = i.hi
		v.hi = fill
	}
	return v
}

// Cmp compares i to n and returns:
//
//	< 0 if x <  y
//	  0 if x == y
//	> 0 if x >  y
//
// The specific value returned by Cmp is undefined, but it is guaranteed to
// satisfy the above constraints.
func (i I128) Cmp(n I128) int {
	if i.hi == n.hi && i.lo == n.lo {
		return 0
	} else if i.hi&signBit == n.hi&signBit {
		if i.hi > n.hi || (i.hi == n.hi && i.lo > n.lo) {
			return 1
		}
	} else if i.hi&signBit == 0 {
		return 1
	}
	return -1
}

func (i I128) Equal(n I128) bool {
	return i.hi == n.hi && i.lo == n.lo
}

func (i I128) LessThan(n I128) bool {
	if i.hi&signBit == n.hi&signBit {
		return i.hi < n.hi || (i.hi == n.hi && i.lo < n.lo)
	} else if i.hi&signBit != 0 {
		return true
	}
	return false
}

func (u I128) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *I128) UnmarshalText(bts []byte) (err error) {
	v, acc, err := I128FromString(string(bts))
	if err != nil {
		return err
	} else if !acc {
		return fmt.Errorf("gnum: i128 %q out of range", string(bts))
	}
	*u = v
	return nil
}

func (u I128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

func (u *I128) UnmarshalJSON(bts []byte) (err error) {
	if len(bts) > 0 && bts[0] == '"' {
		ln := len(bts)
		if ln < 2 || bts[ln-1] != '"' {
			return fmt.Errorf("gnum: i128 invalid JSON %q", string(bts))
		}
		bts = bts[1 : ln-1]
	}

	v, acc, err := I128FromString(string(bts))
	if err != nil {
		return err
	} else if !acc {
		return fmt.Errorf("gnum: i128 %q out of range", string(bts))
	}
	*u = v
	return nil
}
