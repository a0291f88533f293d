package blockchain

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/options"
	"github.com/stretchr/testify/mock"
)

// MockStore implements the blockchain.Store interface for testing purposes
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*model.Block, error) {
	args := m.Called(ctx, blockHash)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Block), args.Error(1)
}

func (m *MockStore) GetBlockExists(ctx context.Context, blockHash *chainhash.Hash) (bool, error) {
	args := m.Called(ctx, blockHash)

	return args.Bool(0), args.Error(1)
}

func (m *MockStore) AddBlock(ctx context.Context, block *model.Block) error {
	args := m.Called(ctx, block)

	return args.Error(0)
}

func (m *MockStore) UpdateBlock(ctx context.Context, block *model.Block) error {
	args := m.Called(ctx, block)

	return args.Error(0)
}

func (m *MockStore) DeleteBlocks(ctx context.Context, blocks []*model.Block) error {
	args := m.Called(ctx, blocks)

	return args.Error(0)
}

func (m *MockStore) GetBlocks(ctx context.Context, tentative bool) ([]*model.Block, error) {
	args := m.Called(ctx, tentative)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*model.Block), args.Error(1)
}

func (m *MockStore) GetBlocksFromHeight(ctx context.Context, height uint32, tentative bool) ([]*model.Block, error) {
	args := m.Called(ctx, height, tentative)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*model.Block), args.Error(1)
}

func (m *MockStore) GetFirstBlock(ctx context.Context, tentative bool, sortOrder options.SortOrder) (*model.Block, error) {
	args := m.Called(ctx, tentative, sortOrder)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Block), args.Error(1)
}

func (m *MockStore) GetBlockTransactions(ctx context.Context, block *model.Block) ([]*model.Transaction, error) {
	args := m.Called(ctx, block)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockStore) Close() error {
	args := m.Called()

	return args.Error(0)
}
