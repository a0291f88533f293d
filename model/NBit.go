package model

import (
	"encoding/hex"
	"math/big"

	"github.com/bsv-blockchain/go-bc"
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/spvchain/errors"
)

// NBit is the compact difficulty target of a block header, stored in wire
// (little-endian) byte order.
type NBit [4]byte

func NewNBitFromSlice(nBits []byte) NBit {
	var nb NBit

	copy(nb[:], nBits)

	return nb
}

// NewNBitFromString parses the big-endian hex form, as printed by block explorers.
func NewNBitFromString(nBits string) (*NBit, error) {
	b, err := hex.DecodeString(nBits)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid nBits %q", nBits, err)
	}

	if len(b) != 4 {
		return nil, errors.NewInvalidArgumentError("nBits should be 4 bytes, got %d", len(b))
	}

	nb := NewNBitFromSlice(bt.ReverseBytes(b))

	return &nb, nil
}

func (b NBit) String() string {
	return hex.EncodeToString(bt.ReverseBytes(b[:]))
}

func (b NBit) CloneBytes() []byte {
	c := make([]byte, 4)
	copy(c, b[:])

	return c
}

// CalculateTarget expands the compact form into the 256-bit target.
func (b NBit) CalculateTarget() *big.Int {
	target, err := bc.ExpandTargetFromAsInt(b.String())
	if err != nil {
		// b.String() is always 8 valid hex characters
		return big.NewInt(0)
	}

	return target
}

// CalculateDifficulty returns the ratio of the difficulty-1 target to this target.
func (b NBit) CalculateDifficulty() *big.Float {
	if b.CalculateTarget().Sign() <= 0 {
		return big.NewFloat(0)
	}

	difficulty, err := bc.DifficultyFromBits(bt.ReverseBytes(b[:]))
	if err != nil {
		return big.NewFloat(0)
	}

	return big.NewFloat(difficulty)
}
