// Package headersync feeds batches of peer headers into the chain manager.
// It decides per header between connecting, tentatively adding and buffering
// as an orphan. Tentatively added headers form a single pending branch that is
// kept across batches and resolved once it passes the confirmed tip, or when
// the caller flushes at the end of a sync.
package headersync

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/services/chain"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/tracing"
	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/jellydator/ttlcache/v3"
	"github.com/looplab/fsm"
)

// ChainManager is the part of chain.Manager the syncer drives.
type ChainManager interface {
	Connect(ctx context.Context, candidate *model.MerkleBlock) (*model.Block, error)
	ForceAdd(ctx context.Context, candidate *model.MerkleBlock, height uint32) (*model.Block, error)
	ResolveForks(ctx context.Context) error
	GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*model.Block, error)
	GetBestBlock(ctx context.Context) (*model.Block, error)
	GetBestTentativeBlock(ctx context.Context) (*model.Block, error)
}

// Result counts what happened to the candidates of one batch. Replayed
// orphans are counted under the outcome of their replay. Pending is set when
// tentative blocks are left for a later batch or Flush.
type Result struct {
	Connected  int
	ForceAdded int
	Skipped    int
	Orphaned   int
	Resolved   bool
	Pending    bool
}

func (r *Result) String() string {
	return fmt.Sprintf("connected %d, force added %d, skipped %d, orphaned %d, resolved %t, pending %t",
		r.Connected, r.ForceAdded, r.Skipped, r.Orphaned, r.Resolved, r.Pending)
}

type orphan struct {
	candidate *model.MerkleBlock
	seq       uint64
}

type Syncer struct {
	mu        sync.Mutex
	logger    ulogger.Logger
	settings  *settings.Settings
	manager   ChainManager
	validator chain.HeaderValidator
	orphans   *ttlcache.Cache[chainhash.Hash, *orphan]
	orphanSeq uint64
	fsm       *fsm.FSM
}

// New creates a Syncer. validator must be the one the manager uses, so that
// tentatively added headers pass the same checks as connected ones.
func New(logger ulogger.Logger, tSettings *settings.Settings, manager ChainManager, validator chain.HeaderValidator) *Syncer {
	initPrometheusMetrics()

	maxOrphans := tSettings.HeaderSync.MaxOrphans
	if maxOrphans <= 0 {
		maxOrphans = 1
	}

	s := &Syncer{
		logger:    logger,
		settings:  tSettings,
		manager:   manager,
		validator: validator,
		orphans: ttlcache.New[chainhash.Hash, *orphan](
			ttlcache.WithTTL[chainhash.Hash, *orphan](tSettings.HeaderSync.OrphanTTL),
			ttlcache.WithCapacity[chainhash.Hash, *orphan](uint64(maxOrphans)),
			ttlcache.WithDisableTouchOnHit[chainhash.Hash, *orphan](),
		),
		fsm: NewFiniteStateMachine(),
	}

	go s.orphans.Start()

	return s
}

// State returns the current state of the syncer state machine.
func (s *Syncer) State() string {
	return s.fsm.Current()
}

// OrphanCount returns the number of buffered orphan headers.
func (s *Syncer) OrphanCount() int {
	return s.orphans.Len()
}

// ProcessHeaders runs a batch of candidates through the chain in order. It
// stops at the first candidate that fails validation or storage. Afterwards
// the pending branch is resolved if it reaches above the confirmed tip;
// otherwise it is kept, since later headers may still extend it.
func (s *Syncer) ProcessHeaders(ctx context.Context, candidates []*model.MerkleBlock) (result *Result, err error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "Syncer:ProcessHeaders",
		tracing.WithHistogram(prometheusHeaderSyncProcessHeaders),
		tracing.WithLogMessage(s.logger, "[ProcessHeaders] processing %d headers", len(candidates)),
	)
	defer func() {
		deferFn(err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fsm.Current() == StateStopped {
		return nil, errors.NewServiceError("[ProcessHeaders] syncer is stopped")
	}

	if err = s.fsm.Event(ctx, EventSync); err != nil {
		return nil, errors.NewStateError("[ProcessHeaders] failed to start syncing", err)
	}

	defer func() {
		if doneErr := s.fsm.Event(context.WithoutCancel(ctx), EventDone); doneErr != nil {
			s.logger.Errorf("[ProcessHeaders] failed to return to %s: %v", StateIdle, doneErr)
		}
	}()

	result = &Result{}

	for _, candidate := range candidates {
		if err = s.processWithOrphans(ctx, candidate, result); err != nil {
			break
		}
	}

	if settleErr := s.settle(ctx, result); settleErr != nil {
		if err == nil {
			err = settleErr
		} else {
			s.logger.Errorf("[ProcessHeaders] failed to settle pending branch after error: %v", settleErr)
		}
	}

	prometheusHeaderSyncOrphans.Set(float64(s.orphans.Len()))

	if err != nil {
		return result, err
	}

	s.logger.Infof("[ProcessHeaders] %s", result)

	return result, nil
}

// Flush resolves the pending branch whatever its length. Callers use it when
// no more headers are expected, so a branch that never passed the tip is
// decided against the confirmed chain. It reports whether anything was resolved.
func (s *Syncer) Flush(ctx context.Context) (resolved bool, err error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "Syncer:Flush",
		tracing.WithLogMessage(s.logger, "[Flush] called"),
	)
	defer func() {
		deferFn(err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fsm.Current() == StateStopped {
		return false, errors.NewServiceError("[Flush] syncer is stopped")
	}

	if _, err = s.manager.GetBestTentativeBlock(ctx); err != nil {
		if errors.Is(err, errors.ErrBlockNotFound) {
			return false, nil
		}

		return false, err
	}

	if err = s.fsm.Event(ctx, EventResolve); err != nil {
		return false, errors.NewStateError("[Flush] failed to start resolving", err)
	}

	defer func() {
		if doneErr := s.fsm.Event(context.WithoutCancel(ctx), EventDone); doneErr != nil {
			s.logger.Errorf("[Flush] failed to return to %s: %v", StateIdle, doneErr)
		}
	}()

	if err = s.manager.ResolveForks(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// settle resolves the pending branch once its tip is above the confirmed tip,
// which is when it is strictly longer than the confirmed blocks it competes with.
func (s *Syncer) settle(ctx context.Context, result *Result) error {
	branchTip, err := s.manager.GetBestTentativeBlock(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrBlockNotFound) {
			return nil
		}

		return err
	}

	tip, err := s.manager.GetBestBlock(ctx)
	if err != nil {
		return err
	}

	if branchTip.Height <= tip.Height {
		result.Pending = true

		s.logger.Infof("[ProcessHeaders] pending branch at height %d has not passed tip at height %d", branchTip.Height, tip.Height)

		return nil
	}

	if err = s.resolve(ctx); err != nil {
		return err
	}

	result.Resolved = true

	return nil
}

// resolve runs ResolveForks in the RESOLVING state and returns to SYNCING.
func (s *Syncer) resolve(ctx context.Context) error {
	if err := s.fsm.Event(ctx, EventResolve); err != nil {
		return errors.NewStateError("[ProcessHeaders] failed to start resolving", err)
	}

	resolveErr := s.manager.ResolveForks(ctx)

	if err := s.fsm.Event(context.WithoutCancel(ctx), EventSync); err != nil {
		return errors.NewStateError("[ProcessHeaders] failed to resume syncing", err)
	}

	return resolveErr
}

// processWithOrphans processes candidate and then every buffered orphan that
// became connectable because of it.
func (s *Syncer) processWithOrphans(ctx context.Context, candidate *model.MerkleBlock, result *Result) error {
	queue := []*model.MerkleBlock{candidate}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		stored, err := s.process(ctx, next, result)
		if err != nil {
			return err
		}

		if stored {
			queue = append(queue, s.takeOrphans(next.Hash())...)
		}
	}

	return nil
}

// process applies the sync policy to a single candidate and reports whether
// it was stored.
func (s *Syncer) process(ctx context.Context, candidate *model.MerkleBlock, result *Result) (bool, error) {
	blockHash := candidate.Hash()

	if _, err := s.manager.GetBlock(ctx, blockHash); err == nil {
		result.Skipped++
		prometheusHeaderSyncCandidates.WithLabelValues("skipped").Inc()

		return false, nil
	} else if !errors.Is(err, errors.ErrBlockNotFound) {
		return false, err
	}

	stored, err := s.store(ctx, candidate, result)

	switch {
	case err == nil:
		return stored, nil
	case errors.IsContinuityError(err):
		s.buffer(candidate, result)
		return false, nil
	case errors.IsValidationError(err):
		prometheusHeaderSyncCandidates.WithLabelValues("rejected").Inc()
		s.logger.Warnf("[ProcessHeaders][%s] rejected header: %v", blockHash, err)
	}

	return false, err
}

// store connects candidate when it extends the confirmed tip, and otherwise
// validates it and adds it to the pending branch.
func (s *Syncer) store(ctx context.Context, candidate *model.MerkleBlock, result *Result) (bool, error) {
	previous, err := s.manager.GetBlock(ctx, candidate.Header.HashPrevBlock)
	if err != nil {
		if errors.Is(err, errors.ErrBlockNotFound) {
			return false, errors.NewNoPreviousBlockError("[ProcessHeaders][%s] previous block %s not found", candidate.Hash(), candidate.Header.HashPrevBlock, err)
		}

		return false, err
	}

	tip, err := s.manager.GetBestBlock(ctx)
	if err != nil {
		return false, err
	}

	if !previous.Tentative && previous.Hash().IsEqual(tip.Hash()) {
		if _, err = s.manager.Connect(ctx, candidate); err != nil {
			return false, err
		}

		result.Connected++
		prometheusHeaderSyncCandidates.WithLabelValues("connected").Inc()

		return true, nil
	}

	branchTip, err := s.manager.GetBestTentativeBlock(ctx)
	if err != nil && !errors.Is(err, errors.ErrBlockNotFound) {
		return false, err
	}

	if branchTip != nil && !branchTip.Hash().IsEqual(previous.Hash()) {
		// candidate starts another fork; tentative blocks stay a single chain
		s.logger.Infof("[ProcessHeaders][%s] new fork from %s, resolving pending branch at height %d first", candidate.Hash(), previous.Hash(), branchTip.Height)

		if err = s.resolve(ctx); err != nil {
			return false, err
		}

		result.Resolved = true

		return s.store(ctx, candidate, result)
	}

	if err = s.validator.Validate(ctx, candidate.Header, previous); err != nil {
		return false, err
	}

	if _, err = s.manager.ForceAdd(ctx, candidate, previous.Height+1); err != nil {
		return false, err
	}

	result.ForceAdded++
	prometheusHeaderSyncCandidates.WithLabelValues("force_added").Inc()

	return true, nil
}

func (s *Syncer) buffer(candidate *model.MerkleBlock, result *Result) {
	s.orphanSeq++
	s.orphans.Set(*candidate.Hash(), &orphan{candidate: candidate, seq: s.orphanSeq}, ttlcache.DefaultTTL)

	result.Orphaned++
	prometheusHeaderSyncCandidates.WithLabelValues("orphaned").Inc()

	s.logger.Debugf("[ProcessHeaders][%s] buffered orphan, previous %s unknown", candidate.Hash(), candidate.Header.HashPrevBlock)
}

// takeOrphans removes and returns the buffered orphans whose predecessor is
// parent, in the order they were buffered.
func (s *Syncer) takeOrphans(parent *chainhash.Hash) []*model.MerkleBlock {
	matched := make([]*orphan, 0)

	for hash, item := range s.orphans.Items() {
		if item.IsExpired() {
			continue
		}

		if o := item.Value(); o.candidate.Header.HashPrevBlock.IsEqual(parent) {
			matched = append(matched, o)

			s.orphans.Delete(hash)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].seq < matched[j].seq
	})

	children := make([]*model.MerkleBlock, 0, len(matched))
	for _, o := range matched {
		children = append(children, o.candidate)
	}

	return children
}

// Stop rejects all further batches. A batch in progress completes first.
func (s *Syncer) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fsm.Current() == StateStopped {
		return nil
	}

	if err := s.fsm.Event(ctx, EventStop); err != nil {
		return errors.NewStateError("[Stop] failed to stop syncer", err)
	}

	s.orphans.Stop()
	s.orphans.DeleteAll()

	prometheusHeaderSyncOrphans.Set(0)

	return nil
}
