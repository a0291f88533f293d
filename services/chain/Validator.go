package chain

import (
	"context"
	"time"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/ulogger"
)

// Validator is the default HeaderValidator. It checks linkage to the
// previous block, the header's own proof of work and that the timestamp is
// not too far in the future.
type Validator struct {
	logger   ulogger.Logger
	settings *settings.Settings
	now      func() time.Time
}

func NewValidator(logger ulogger.Logger, tSettings *settings.Settings) *Validator {
	return &Validator{
		logger:   logger,
		settings: tSettings,
		now:      time.Now,
	}
}

func (v *Validator) Validate(_ context.Context, candidate *model.BlockHeader, previous *model.Block) error {
	if candidate == nil || candidate.HashPrevBlock == nil || candidate.HashMerkleRoot == nil {
		return errors.NewBlockInvalidError("[Validate] header is incomplete")
	}

	blockHash := candidate.Hash()

	if !candidate.HashPrevBlock.IsEqual(previous.Hash()) {
		return errors.NewWrongPreviousHeaderError("[Validate][%s] previous hash %s does not match block %s", blockHash, candidate.HashPrevBlock, previous.Hash())
	}

	if v.settings.HeaderSync.CheckPoW {
		if ok, _, err := candidate.HasMetTargetDifficulty(); !ok {
			return errors.NewBlockInvalidError("[Validate][%s] proof of work check failed", blockHash, err)
		}
	}

	maxTime := v.now().Add(v.settings.HeaderSync.MaxFutureBlockTime)
	if int64(candidate.Timestamp) > maxTime.Unix() {
		return errors.NewBlockInvalidError("[Validate][%s] timestamp %d is more than %s in the future", blockHash, candidate.Timestamp, v.settings.HeaderSync.MaxFutureBlockTime)
	}

	return nil
}
