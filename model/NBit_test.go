package model

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-bc"
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The expected difficulty is the difficulty-1 target (1d00ffff) divided by the target of 1e0cbb05.
func TestNBit(t *testing.T) {
	bits, err := NewNBitFromString("1e0cbb05")
	require.NoError(t, err)
	require.Equal(t, "1e0cbb05", bits.String())
	require.Equal(t, []byte{0x05, 0xbb, 0x0c, 0x1e}, bits.CloneBytes())

	difficulty, _ := bits.CalculateDifficulty().Float64()
	assert.InDelta(t, 0.0003068360688, difficulty, 1e-13)

	target := bits.CalculateTarget()
	require.Equal(t, "87862992749702277876753291758735394717545048148536728461472937357082624", target.String())
}

func TestCalculateTarget(t *testing.T) {
	bits, err := NewNBitFromString("180f7f7d")
	require.NoError(t, err)

	difficulty, _ := bits.CalculateDifficulty().Float32()
	expectedDifficulty, _ := big.NewFloat(70944300723.85233).Float32()
	require.Equal(t, expectedDifficulty, difficulty)

	target := bits.CalculateTarget()
	require.Equal(t, "380009881215830907712605183958726704270100120947772096512", target.String())
}

func TestDifficultyOne(t *testing.T) {
	bits, err := NewNBitFromString("1d00ffff")
	require.NoError(t, err)

	difficulty, _ := bits.CalculateDifficulty().Float64()
	assert.InDelta(t, 1.0, difficulty, 0)
}

func TestNewNBitFromStringErrors(t *testing.T) {
	_, err := NewNBitFromString("zz")
	require.Error(t, err)

	_, err = NewNBitFromString("1d00ff")
	require.Error(t, err)
}

func TestNBitMatchesCompactExpansion(t *testing.T) {
	for _, nBits := range []string{"1d00ffff", "207fffff", "180f7f7d", "1e0cbb05"} {
		t.Run(nBits, func(t *testing.T) {
			bits, err := NewNBitFromString(nBits)
			require.NoError(t, err)

			expected, err := bc.ExpandTargetFromAsInt(nBits)
			require.NoError(t, err)
			assert.Equal(t, 0, expected.Cmp(bits.CalculateTarget()))

			expectedDifficulty, err := bc.DifficultyFromBits(bt.ReverseBytes(bits.CloneBytes()))
			require.NoError(t, err)

			difficulty, _ := bits.CalculateDifficulty().Float64()
			assert.InDelta(t, expectedDifficulty, difficulty, 0)
		})
	}
}

func TestZeroNBit(t *testing.T) {
	var bits NBit

	assert.Equal(t, 0, bits.CalculateTarget().Sign())

	difficulty, _ := bits.CalculateDifficulty().Float64()
	assert.InDelta(t, 0.0, difficulty, 0)
}
