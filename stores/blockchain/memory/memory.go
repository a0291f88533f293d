// Package memory implements the block store in process memory, for tests and
// short-lived tools. Contents are lost on Close.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/options"
	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/dolthub/swiss"
)

type storedBlock struct {
	id           uint64
	header       model.BlockHeader
	height       uint32
	tentative    bool
	transactions []chainhash.Hash
}

type Memory struct {
	mu     sync.RWMutex
	logger ulogger.Logger
	blocks *swiss.Map[chainhash.Hash, *storedBlock]
	nextID uint64
}

func New(logger ulogger.Logger, tSettings *settings.Settings) (*Memory, error) {
	m := &Memory{
		logger: logger.New("bcmem"),
		blocks: swiss.NewMap[chainhash.Hash, *storedBlock](1024),
	}

	genesisBlock, err := model.GenesisBlock(tSettings.ChainCfgParams)
	if err != nil {
		return nil, err
	}

	if err = m.AddBlock(context.Background(), genesisBlock); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Memory) toBlock(sb *storedBlock) *model.Block {
	header := sb.header

	return &model.Block{
		Header:    &header,
		Height:    sb.height,
		Tentative: sb.tentative,
	}
}

func (m *Memory) GetBlock(_ context.Context, blockHash *chainhash.Hash) (*model.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sb, ok := m.blocks.Get(*blockHash)
	if !ok {
		return nil, errors.NewBlockNotFoundError("block %s not found", blockHash)
	}

	return m.toBlock(sb), nil
}

func (m *Memory) GetBlockExists(_ context.Context, blockHash *chainhash.Hash) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.blocks.Has(*blockHash), nil
}

func (m *Memory) AddBlock(_ context.Context, block *model.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	blockHash := *block.Hash()

	if m.blocks.Has(blockHash) {
		return errors.NewBlockExistsError("block %s already exists", blockHash)
	}

	transactions := make([]chainhash.Hash, 0, len(block.Transactions))
	for _, tx := range block.Transactions {
		transactions = append(transactions, tx.Hash)
	}

	m.nextID++

	m.blocks.Put(blockHash, &storedBlock{
		id:           m.nextID,
		header:       *block.Header,
		height:       block.Height,
		tentative:    block.Tentative,
		transactions: transactions,
	})

	return nil
}

func (m *Memory) UpdateBlock(_ context.Context, block *model.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sb, ok := m.blocks.Get(*block.Hash())
	if !ok {
		return errors.NewBlockNotFoundError("block %s not found", block.Hash())
	}

	sb.tentative = block.Tentative

	return nil
}

func (m *Memory) DeleteBlocks(_ context.Context, blocks []*model.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, block := range blocks {
		m.blocks.Delete(*block.Hash())
	}

	return nil
}

func (m *Memory) GetBlocks(ctx context.Context, tentative bool) ([]*model.Block, error) {
	return m.GetBlocksFromHeight(ctx, 0, tentative)
}

func (m *Memory) GetBlocksFromHeight(_ context.Context, height uint32, tentative bool) ([]*model.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(func(sb *storedBlock) bool {
		return sb.tentative == tentative && sb.height >= height
	}, options.SortAsc), nil
}

func (m *Memory) GetFirstBlock(_ context.Context, tentative bool, sortOrder options.SortOrder) (*model.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blocks := m.collect(func(sb *storedBlock) bool {
		return sb.tentative == tentative
	}, sortOrder)

	if len(blocks) == 0 {
		return nil, errors.NewBlockNotFoundError("no block with tentative=%t", tentative)
	}

	return blocks[0], nil
}

func (m *Memory) GetBlockTransactions(_ context.Context, block *model.Block) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blockHash := *block.Hash()

	sb, ok := m.blocks.Get(blockHash)
	if !ok {
		return []*model.Transaction{}, nil
	}

	transactions := make([]*model.Transaction, 0, len(sb.transactions))
	for _, txHash := range sb.transactions {
		transactions = append(transactions, &model.Transaction{
			Hash:      txHash,
			BlockHash: blockHash,
		})
	}

	return transactions, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = swiss.NewMap[chainhash.Hash, *storedBlock](0)

	return nil
}

// collect returns the matching blocks ordered by height then insertion order.
// Callers must hold the lock.
func (m *Memory) collect(match func(sb *storedBlock) bool, sortOrder options.SortOrder) []*model.Block {
	matched := make([]*storedBlock, 0)

	m.blocks.Iter(func(_ chainhash.Hash, sb *storedBlock) bool {
		if match(sb) {
			matched = append(matched, sb)
		}

		return false // continue
	})

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if sortOrder == options.SortDesc {
			a, b = b, a
		}

		if a.height != b.height {
			return a.height < b.height
		}

		return a.id < b.id
	})

	blocks := make([]*model.Block, 0, len(matched))
	for _, sb := range matched {
		blocks = append(blocks, m.toBlock(sb))
	}

	return blocks
}
