package model

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
	jsoniter "github.com/json-iterator/go"
)

type NotificationType string

const (
	NotificationTypeBlockInsert        NotificationType = "BlockInsert"
	NotificationTypeTransactionsDelete NotificationType = "TransactionsDelete"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Notification is a chain event as published to external consumers. Hashes
// are encoded in their usual reversed hex form.
type Notification struct {
	Type      NotificationType `json:"type"`
	BlockHash string           `json:"blockHash,omitempty"`
	Height    uint32           `json:"height,omitempty"`
	Tentative bool             `json:"tentative,omitempty"`
	TxHashes  []string         `json:"txHashes,omitempty"`
}

func NewBlockInsertNotification(block *Block) *Notification {
	txHashes := make([]string, 0, len(block.Transactions))
	for _, tx := range block.Transactions {
		txHashes = append(txHashes, tx.Hash.String())
	}

	return &Notification{
		Type:      NotificationTypeBlockInsert,
		BlockHash: block.Hash().String(),
		Height:    block.Height,
		Tentative: block.Tentative,
		TxHashes:  txHashes,
	}
}

func NewTransactionsDeleteNotification(hashes []chainhash.Hash) *Notification {
	txHashes := make([]string, 0, len(hashes))
	for _, hash := range hashes {
		txHashes = append(txHashes, hash.String())
	}

	return &Notification{
		Type:     NotificationTypeTransactionsDelete,
		TxHashes: txHashes,
	}
}

func (n *Notification) Bytes() ([]byte, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, errors.NewProcessingError("failed to encode %s notification", n.Type, err)
	}

	return b, nil
}

func NewNotificationFromBytes(b []byte) (*Notification, error) {
	n := &Notification{}
	if err := json.Unmarshal(b, n); err != nil {
		return nil, errors.NewProcessingError("failed to decode notification", err)
	}

	return n, nil
}
