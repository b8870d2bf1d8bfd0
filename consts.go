package gnum

import (
	"math/big"
)

const (
	maxUint64 = 1<<64 - 1
	maxInt64  = 1<<63 - 1
	minInt64  = -1 << 63

	intSize = 32 << (^uint(0) >> 63)
)

var (
	MaxI128 = I128{hi: 0x7FFFFFFFFFFFFFFF, lo: 0xFFFFFFFFFFFFFFFF}
	MinI128 = I128{hi: 0x8000000000000000, lo: 0}
	MaxU128 = U128{hi: maxUint64, lo: maxUint64}

	zeroI128 I128
	zeroU128 U128

	big1 = new(big.Int).SetInt64(1)

	maxBigU128, _ = new(big.Int).SetString("340282366920938463463374607431768211455", 10)
)
