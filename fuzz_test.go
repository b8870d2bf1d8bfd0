package gnum

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

type fuzzOp string

// This is the equivalent of passing -gnum.fuzziter=10000 to 'go test':
const fuzzDefaultIterations = 10000

// These ops are all enabled by default. You can instead pass them explicitly
// on the command line like so: '-gnum.fuzzop=lsh -gnum.fuzzop=rsh', or you can
// use the short form '-gnum.fuzzop=lsh,rsh,neg'.
//
// If you add a new op, search for the string 'NEWOP' in this file for all the
// places you need to update.
const (
	fuzzBit       fuzzOp = "bit"
	fuzzFlipBit   fuzzOp = "flipbit"
	fuzzFromBase  fuzzOp = "frombase"
	fuzzLeastSize fuzzOp = "leastsize"
	fuzzLsh       fuzzOp = "lsh"
	fuzzNeg       fuzzOp = "neg"
	fuzzParseSize fuzzOp = "parsesize"
	fuzzResize    fuzzOp = "resize"
	fuzzRsh       fuzzOp = "rsh"
	fuzzSetBit    fuzzOp = "setbit"
	fuzzSignBit   fuzzOp = "signbit"
	fuzzString    fuzzOp = "string"
	fuzzToBase    fuzzOp = "tobase"
)

// allFuzzOps are active by default.
//
// NEWOP: Update this list if a NEW op is added otherwise it won't be
// enabled by default.
//
// Please keep this list alphabetised.
var allFuzzOps = []fuzzOp{
	fuzzBit,
	fuzzFlipBit,
	fuzzFromBase,
	fuzzLeastSize,
	fuzzLsh,
	fuzzNeg,
	fuzzParseSize,
	fuzzResize,
	fuzzRsh,
	fuzzSetBit,
	fuzzSignBit,
	fuzzString,
	fuzzToBase,
}

// classic rando!
type rando struct {
	operands []*big.Int
	rng      *rand.Rand
}

func (r *rando) Operands() []*big.Int { return r.operands }

func (r *rando) Clear() {
	for i := range r.operands {
		r.operands[i] = nil
	}
	r.operands = r.operands[:0]
}

func (r *rando) Uintn(n int) uint {
	v := uint(r.rng.Intn(n))
	r.operands = append(r.operands, new(big.Int).SetUint64(uint64(v)))
	return v
}

func (r *rando) Size() Size {
	sz := Sizes[r.rng.Intn(len(Sizes))]
	r.operands = append(r.operands, new(big.Int).SetUint64(uint64(sz)))
	return sz
}

func (r *rando) Radix() Radix {
	rdx := Radixes[r.rng.Intn(len(Radixes))]
	r.operands = append(r.operands, new(big.Int).SetInt64(int64(rdx)))
	return rdx
}

// Value returns a random Value of the given size along with its big.Int
// model.
func (r *rando) Value(size Size) (Value, *big.Int) {
	b := randBigForSize(r.rng, size)
	r.operands = append(r.operands, b)
	return valueFromBig(b, size), b
}

func checkEqualBool(u bool, b bool) error {
	if u != b {
		return fmt.Errorf("gnum(%v) != big(%v)", u, b)
	}
	return nil
}

func checkEqualString(u string, b string) error {
	if u != b {
		return fmt.Errorf("gnum(%q) != big(%q)", u, b)
	}
	return nil
}

func checkEqualValue(v Value, size Size, b *big.Int) error {
	if v.Size() != size {
		return fmt.Errorf("gnum size %s != expected %s", v.Size(), size)
	}
	if v.String() != b.String() {
		return fmt.Errorf("gnum(%s) != big(%s)", v.String(), b.String())
	}
	return nil
}

// bigPatternText renders b at the given width the way ToBase does, using
// big.Int as the reference.
func bigPatternText(b *big.Int, bits uint, radix Radix) string {
	if radix == Decimal {
		return wrapBig(b, bits).String()
	}
	s := patternBig(b, bits).Text(int(radix))
	if pad := radix.Digits(bits) - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return s
}

type fuzzValue struct {
	source *rando
	size   Size
}

func (f fuzzValue) Name() string { return f.size.String() }

func (f fuzzValue) Bit() error {
	v, b := f.source.Value(f.size)
	idx := f.source.Uintn(int(f.size.Bits()) + 8)
	expected := idx < f.size.Bits() && patternBig(b, f.size.Bits()).Bit(int(idx)) == 1
	return checkEqualBool(v.Bit(idx), expected)
}

func (f fuzzValue) SetBit() error {
	v, b := f.source.Value(f.size)
	idx := f.source.Uintn(int(f.size.Bits()))
	p := patternBig(b, f.size.Bits())
	p.SetBit(p, int(idx), 1)
	return checkEqualValue(v.SetBit(idx, true), f.size, wrapBig(p, f.size.Bits()))
}

func (f fuzzValue) FlipBit() error {
	v, b := f.source.Value(f.size)
	idx := f.source.Uintn(int(f.size.Bits()))
	p := patternBig(b, f.size.Bits())
	p.SetBit(p, int(idx), p.Bit(int(idx))^1)
	v.FlipBit(idx)
	return checkEqualValue(v, f.size, wrapBig(p, f.size.Bits()))
}

func (f fuzzValue) Lsh() error {
	v, b := f.source.Value(f.size)
	by := f.source.Uintn(int(f.size.Bits()) + 8)
	expected := wrapBig(new(big.Int).Lsh(b, by), f.size.Bits())
	return checkEqualValue(v.Lsh(by), f.size, expected)
}

func (f fuzzValue) Rsh() error {
	v, b := f.source.Value(f.size)
	by := f.source.Uintn(int(f.size.Bits()) + 8)
	// big.Int.Rsh rounds towards negative infinity, which is an arithmetic
	// shift:
	expected := new(big.Int).Rsh(b, by)
	return checkEqualValue(v.Rsh(by), f.size, expected)
}

func (f fuzzValue) Neg() error {
	v, b := f.source.Value(f.size)
	expected := wrapBig(new(big.Int).Neg(b), f.size.Bits())
	return checkEqualValue(v.Neg(), f.size, expected)
}

func (f fuzzValue) Resize() error {
	v, b := f.source.Value(f.size)
	to := f.source.Size()
	return checkEqualValue(v.Resize(to), to, wrapBig(b, to.Bits()))
}

func (f fuzzValue) SignBit() error {
	v, b := f.source.Value(f.size)
	return checkEqualBool(v.SignBit(), b.Sign() < 0)
}

func (f fuzzValue) String() error {
	v, b := f.source.Value(f.size)
	return checkEqualString(v.String(), b.String())
}

func (f fuzzValue) ToBase() error {
	v, b := f.source.Value(f.size)
	radix := f.source.Radix()
	return checkEqualString(v.ToBase(radix), bigPatternText(b, f.size.Bits(), radix))
}

func (f fuzzValue) ParseSize() error {
	v, _ := f.source.Value(f.size)
	radix := f.source.Radix()
	out, ok := ParseSize(v.ToBase(radix), radix, f.size)
	if !ok {
		return fmt.Errorf("gnum: %s %s text %q did not parse", f.size, radix, v.ToBase(radix))
	}
	if !out.Equal(v) {
		return fmt.Errorf("gnum(%s/%s) != input(%s/%s)", out.Size(), out, v.Size(), v)
	}
	return nil
}

func (f fuzzValue) FromBase() error {
	v, b := f.source.Value(f.size)
	radix := f.source.Radix()

	// A negative value's pattern is a large unsigned number in the
	// non-decimal radices, so only decimal can be compared numerically:
	expected := b
	if radix != Decimal {
		expected = patternBig(b, f.size.Bits())
	}
	out, ok := FromBase(v.ToBase(radix), radix)
	if !ok {
		return fmt.Errorf("gnum: %s text %q did not parse", radix, v.ToBase(radix))
	}
	if expected.Cmp(new(big.Int).Lsh(big1, 127)) >= 0 {
		expected = wrapBig(expected, 128)
	}
	return checkEqualString(out.String(), expected.String())
}

func (f fuzzValue) LeastSize() error {
	_, b := f.source.Value(f.size)
	out := LeastSize(valueFromBig(b, OWord).Int128())

	var expected Size
	for _, sz := range Sizes {
		expected = sz
		if wrapBig(b, sz.Bits()).Cmp(b) == 0 {
			break
		}
	}
	return checkEqualValue(out, expected, b)
}

func TestFuzz(t *testing.T) {
	// fuzzOpsActive comes from the -gnum.fuzzop flag, in TestMain:
	var runFuzzOps = fuzzOpsActive

	// fuzzSizesActive comes from the -gnum.fuzzsize flag, in TestMain:
	var runFuzzSizes = fuzzSizesActive

	var source = &rando{rng: globalRNG} // Classic rando!
	var totalFailures int

	for _, size := range runFuzzSizes {
		fuzzImpl := fuzzValue{source: source, size: size}
		var failures = make([]int, len(runFuzzOps))

		for opIdx, op := range runFuzzOps {
			for i := 0; i < fuzzIterations; i++ {
				source.Clear()

				var err error

				// NEWOP: add a new branch here in alphabetical order if a new
				// op is added.
				switch op {
				case fuzzBit:
					err = fuzzImpl.Bit()
				case fuzzFlipBit:
					err = fuzzImpl.FlipBit()
				case fuzzFromBase:
					err = fuzzImpl.FromBase()
				case fuzzLeastSize:
					err = fuzzImpl.LeastSize()
				case fuzzLsh:
					err = fuzzImpl.Lsh()
				case fuzzNeg:
					err = fuzzImpl.Neg()
				case fuzzParseSize:
					err = fuzzImpl.ParseSize()
				case fuzzResize:
					err = fuzzImpl.Resize()
				case fuzzRsh:
					err = fuzzImpl.Rsh()
				case fuzzSetBit:
					err = fuzzImpl.SetBit()
				case fuzzSignBit:
					err = fuzzImpl.SignBit()
				case fuzzString:
					err = fuzzImpl.String()
				case fuzzToBase:
					err = fuzzImpl.ToBase()
				default:
					panic(fmt.Errorf("unsupported op %q", op))
				}

				if err != nil {
					failures[opIdx]++
					t.Logf("%s %s: %s\n", size, op.Print(source.Operands()...), err)
				}
			}
		}

		for opIdx, cnt := range failures {
			if cnt > 0 {
				totalFailures += cnt
				t.Logf("size %s, op %s: %d/%d failed", fuzzImpl.Name(), string(runFuzzOps[opIdx]), cnt, fuzzIterations)
			}
		}
	}

	if totalFailures > 0 {
		t.Fail()
	}
}

func (op fuzzOp) Print(operands ...*big.Int) string {
	// NEWOP: please add a human-readable format for your op here; this is
	// used for reporting errors and should show the operation, i.e. "2 << 3".
	if len(operands) == 0 {
		return string(op)
	}
	switch op {
	case fuzzLsh:
		return fmt.Sprintf("%d << %d", operands[0], operands[1])
	case fuzzRsh:
		return fmt.Sprintf("%d >> %d", operands[0], operands[1])
	case fuzzBit:
		return fmt.Sprintf("(%d>>%d)&1", operands[0], operands[1])
	case fuzzSetBit:
		return fmt.Sprintf("%d|(1<<%d)", operands[0], operands[1])
	case fuzzFlipBit:
		return fmt.Sprintf("%d^(1<<%d)", operands[0], operands[1])
	case fuzzNeg:
		return fmt.Sprintf("-%d", operands[0])
	case fuzzResize:
		return fmt.Sprintf("resize(%d, %s)", operands[0], Size(operands[1].Uint64()))
	case fuzzToBase, fuzzParseSize, fuzzFromBase:
		return fmt.Sprintf("%s(%d, %s)", op, operands[0], Radix(operands[1].Int64()))
	default:
		return fmt.Sprintf("%s(%d)", op, operands[0])
	}
}
