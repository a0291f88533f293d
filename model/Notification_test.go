package model

import (
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockInsertNotification(t *testing.T) {
	block := NewBlock(NewTestMerkleBlock(&chainhash.Hash{}, 7, 2), 5, false)

	n := NewBlockInsertNotification(block)
	assert.Equal(t, NotificationTypeBlockInsert, n.Type)
	assert.Equal(t, block.Hash().String(), n.BlockHash)
	assert.Equal(t, uint32(5), n.Height)
	require.Len(t, n.TxHashes, 2)

	b, err := n.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"BlockInsert"`)

	decoded, err := NewNotificationFromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, n, decoded)
}

func TestTransactionsDeleteNotification(t *testing.T) {
	hashes := []chainhash.Hash{chainhash.HashH([]byte("a")), chainhash.HashH([]byte("b"))}

	n := NewTransactionsDeleteNotification(hashes)
	assert.Equal(t, NotificationTypeTransactionsDelete, n.Type)
	assert.Equal(t, []string{hashes[0].String(), hashes[1].String()}, n.TxHashes)

	b, err := n.Bytes()
	require.NoError(t, err)
	assert.NotContains(t, string(b), "blockHash")

	_, err = NewNotificationFromBytes([]byte("{"))
	require.Error(t, err)
}
