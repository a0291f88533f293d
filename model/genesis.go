package model

import (
	"bytes"

	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/spvchain/errors"
)

// GenesisBlock returns the confirmed height-0 block of the network described
// by params.
func GenesisBlock(params *chaincfg.Params) (*Block, error) {
	var buf bytes.Buffer

	if err := params.GenesisBlock.Serialize(&buf); err != nil {
		return nil, errors.NewConfigurationError("failed to serialize genesis block for %s", params.Name, err)
	}

	header, err := NewBlockHeaderFromBytes(buf.Bytes()[:BlockHeaderSize])
	if err != nil {
		return nil, err
	}

	if !header.Hash().IsEqual(params.GenesisHash) {
		return nil, errors.NewConfigurationError("genesis header hash %s does not match %s", header.Hash(), params.GenesisHash)
	}

	return &Block{
		Header: header,
		Height: 0,
	}, nil
}
