package gnum

import (
	"fmt"
	"strings"
)

// Size identifies which of the fixed widths a Value occupies. The zero Size
// is Byte.
type Size uint8

const (
	Byte  Size = iota // 8 bits
	Word              // 16 bits
	DWord             // 32 bits
	QWord             // 64 bits
	OWord             // 128 bits
)

// Sizes lists every valid Size, narrowest first.
var Sizes = []Size{Byte, Word, DWord, QWord, OWord}

var sizeNames = [...]string{"byte", "word", "dword", "qword", "oword"}

func (s Size) Valid() bool { return s <= OWord }

// Bytes returns the number of bytes in the width.
func (s Size) Bytes() uint { return 1 << s }

// Bits returns the number of bits in the width.
func (s Size) Bits() uint { return 8 << s }

func (s Size) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Size(%d)", uint8(s))
	}
	return sizeNames[s]
}

// ParseSizeName accepts a size name ("byte", "word", "dword", "qword", "oword")
// or a bit count ("8", "16", "32", "64", "128"). Matching ignores case.
func ParseSizeName(s string) (Size, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, sz := range Sizes {
		if name == sizeNames[sz] || name == fmt.Sprint(sz.Bits()) {
			return sz, nil
		}
	}
	return 0, fmt.Errorf("gnum: size %q invalid", s)
}

func (s Size) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("gnum: size %d invalid", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Size) UnmarshalText(bts []byte) error {
	v, err := ParseSizeName(string(bts))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
