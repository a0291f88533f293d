package blockchain

import (
	"net/url"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/memory"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/sql"
	"github.com/bsv-blockchain/spvchain/ulogger"
)

func NewStore(logger ulogger.Logger, storeURL *url.URL, tSettings *settings.Settings) (Store, error) {
	if storeURL == nil {
		return nil, errors.NewConfigurationError("blockchain store URL is not set")
	}

	switch storeURL.Scheme {
	case "postgres", "sqlitememory", "sqlite":
		return sql.New(logger, storeURL, tSettings)
	case "memory":
		return memory.New(logger, tSettings)
	}

	return nil, errors.NewConfigurationError("unknown blockchain store scheme: %s", storeURL.Scheme)
}
