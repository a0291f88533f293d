package chain

import (
	"context"
	"sync"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/stores/blockchain"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/options"
	"github.com/bsv-blockchain/spvchain/tracing"
	"github.com/bsv-blockchain/spvchain/ulogger"
)

// Manager owns the chain view held in a Store. All operations, reads
// included, are serialized on one mutex so the read, decide and write phases
// of different calls never interleave.
type Manager struct {
	mu        sync.Mutex
	logger    ulogger.Logger
	settings  *settings.Settings
	store     blockchain.Store
	validator HeaderValidator
	listener  Listener
}

func NewManager(logger ulogger.Logger, tSettings *settings.Settings, store blockchain.Store, validator HeaderValidator, listener Listener) *Manager {
	initPrometheusMetrics()

	return &Manager{
		logger:    logger,
		settings:  tSettings,
		store:     store,
		validator: validator,
		listener:  listener,
	}
}

// Connect appends candidate on top of its stored predecessor after the
// validator accepted it. A candidate that is already stored is returned as is.
func (m *Manager) Connect(ctx context.Context, candidate *model.MerkleBlock) (block *model.Block, err error) {
	blockHash := candidate.Hash()

	ctx, _, deferFn := tracing.StartTracing(ctx, "Manager:Connect",
		tracing.WithHistogram(prometheusChainConnect),
		tracing.WithTag("hash", blockHash.String()),
		tracing.WithLogMessage(m.logger, "[Connect][%s] called", blockHash),
	)
	defer func() {
		deferFn(err)
	}()

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := m.store.GetBlock(ctx, blockHash)
	if err == nil {
		m.logger.Debugf("[Connect][%s] already stored at height %d", blockHash, existing.Height)
		return existing, nil
	}

	if !errors.Is(err, errors.ErrBlockNotFound) {
		return nil, err
	}

	previous, err := m.store.GetBlock(ctx, candidate.Header.HashPrevBlock)
	if err != nil {
		if errors.Is(err, errors.ErrBlockNotFound) {
			return nil, errors.NewNoPreviousBlockError("[Connect][%s] previous block %s not found", blockHash, candidate.Header.HashPrevBlock)
		}

		return nil, err
	}

	if err = m.validator.Validate(ctx, candidate.Header, previous); err != nil {
		m.logger.Warnf("[Connect][%s] rejected: %v", blockHash, err)
		return nil, err
	}

	block = model.NewBlock(candidate, previous.Height+1, false)

	if err = m.store.AddBlock(ctx, block); err != nil {
		return nil, err
	}

	m.logger.Infof("[Connect][%s] connected at height %d with %d transactions", blockHash, block.Height, len(block.Transactions))

	m.listener.OnBlockInsert(ctx, block)

	return block, nil
}

// ForceAdd stores candidate as a tentative block at height without validation.
// It becomes part of the confirmed chain only if ResolveForks accepts its branch.
func (m *Manager) ForceAdd(ctx context.Context, candidate *model.MerkleBlock, height uint32) (block *model.Block, err error) {
	blockHash := candidate.Hash()

	ctx, _, deferFn := tracing.StartTracing(ctx, "Manager:ForceAdd",
		tracing.WithHistogram(prometheusChainForceAdd),
		tracing.WithTag("hash", blockHash.String()),
		tracing.WithLogMessage(m.logger, "[ForceAdd][%s] called for height %d", blockHash, height),
	)
	defer func() {
		deferFn(err)
	}()

	m.mu.Lock()
	defer m.mu.Unlock()

	block = model.NewBlock(candidate, height, true)

	if err = m.store.AddBlock(ctx, block); err != nil {
		return nil, err
	}

	m.logger.Infof("[ForceAdd][%s] added tentative block at height %d", blockHash, height)

	m.listener.OnBlockInsert(ctx, block)

	return block, nil
}

// ResolveForks compares the tentative branch with the confirmed blocks from
// the branch's first height upwards. The strictly longer one survives, ties
// keep the confirmed blocks. Transactions of the losing side are retracted.
func (m *Manager) ResolveForks(ctx context.Context) (err error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "Manager:ResolveForks",
		tracing.WithHistogram(prometheusChainResolveForks),
		tracing.WithLogMessage(m.logger, "[ResolveForks] called"),
	)
	defer func() {
		deferFn(err)
	}()

	m.mu.Lock()
	defer m.mu.Unlock()

	branch, err := m.store.GetBlocks(ctx, true)
	if err != nil {
		return err
	}

	if len(branch) == 0 {
		return nil
	}

	forkHeight := branch[0].Height

	incumbent, err := m.store.GetBlocksFromHeight(ctx, forkHeight, false)
	if err != nil {
		return err
	}

	if len(branch) <= len(incumbent) {
		m.logger.Infof("[ResolveForks] incumbent of %d blocks kept over branch of %d blocks from height %d", len(incumbent), len(branch), forkHeight)

		return m.retract(ctx, branch)
	}

	if len(incumbent) > 0 {
		m.logger.Infof("[ResolveForks] branch of %d blocks replaces incumbent of %d blocks from height %d", len(branch), len(incumbent), forkHeight)

		if err = m.retract(ctx, incumbent); err != nil {
			return err
		}

		prometheusChainReorgs.Inc()
	}

	for _, block := range branch {
		block.Tentative = false

		if err = m.store.UpdateBlock(ctx, block); err != nil {
			return err
		}
	}

	m.logger.Infof("[ResolveForks] confirmed %d blocks, tip %s at height %d", len(branch), branch[len(branch)-1].Hash(), branch[len(branch)-1].Height)

	return nil
}

// retract deletes blocks and tells the listener which transaction hashes went
// with them, in block order.
func (m *Manager) retract(ctx context.Context, blocks []*model.Block) error {
	hashes := make([]chainhash.Hash, 0)

	for _, block := range blocks {
		transactions, err := m.store.GetBlockTransactions(ctx, block)
		if err != nil {
			return err
		}

		for _, tx := range transactions {
			hashes = append(hashes, tx.Hash)
		}
	}

	if err := m.store.DeleteBlocks(ctx, blocks); err != nil {
		return err
	}

	prometheusChainRetractedTransactions.Add(float64(len(hashes)))

	m.logger.Debugf("[ResolveForks] deleted %d blocks, retracting %d transactions", len(blocks), len(hashes))

	m.listener.OnTransactionsDelete(ctx, hashes)

	return nil
}

func (m *Manager) GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*model.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.GetBlock(ctx, blockHash)
}

// GetBestBlock returns the highest confirmed block.
func (m *Manager) GetBestBlock(ctx context.Context) (*model.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.GetFirstBlock(ctx, false, options.SortDesc)
}

// GetBestTentativeBlock returns the highest tentative block, or
// errors.ErrBlockNotFound when no fork is pending.
func (m *Manager) GetBestTentativeBlock(ctx context.Context) (*model.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.GetFirstBlock(ctx, true, options.SortDesc)
}

func (m *Manager) GetBlockTransactions(ctx context.Context, block *model.Block) ([]*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.GetBlockTransactions(ctx, block)
}
