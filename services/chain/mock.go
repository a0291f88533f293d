package chain

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/stretchr/testify/mock"
)

// MockValidator implements HeaderValidator for testing purposes
type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(ctx context.Context, candidate *model.BlockHeader, previous *model.Block) error {
	args := m.Called(ctx, candidate, previous)

	return args.Error(0)
}

// MockListener implements Listener for testing purposes
type MockListener struct {
	mock.Mock
}

func (m *MockListener) OnBlockInsert(ctx context.Context, block *model.Block) {
	m.Called(ctx, block)
}

func (m *MockListener) OnTransactionsDelete(ctx context.Context, hashes []chainhash.Hash) {
	m.Called(ctx, hashes)
}
