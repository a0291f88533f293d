package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/services/headersync"
	"github.com/urfave/cli/v2"
)

const defaultBatchSize = 2000

func importAction(c *cli.Context) error {
	n, err := newNodeFromContext(c)
	if err != nil {
		return err
	}
	defer n.Close()

	var r io.Reader = os.Stdin

	if path := c.String("file"); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return errors.NewProcessingError("cannot open %s", path, err)
		}
		defer f.Close()

		r = f
	}

	total, err := importHeaders(c.Context, n.syncer, r, c.Int("batch"))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.App.Writer, "imported: %s\n", total)

	return printTip(c.Context, n, c.App.Writer)
}

func resolveAction(c *cli.Context) error {
	n, err := newNodeFromContext(c)
	if err != nil {
		return err
	}
	defer n.Close()

	if err = n.manager.ResolveForks(c.Context); err != nil {
		return err
	}

	return printTip(c.Context, n, c.App.Writer)
}

func tipAction(c *cli.Context) error {
	n, err := newNodeFromContext(c)
	if err != nil {
		return err
	}
	defer n.Close()

	return printTip(c.Context, n, c.App.Writer)
}

func blockAction(c *cli.Context) error {
	blockHash, err := chainhash.NewHashFromStr(c.String("hash"))
	if err != nil {
		return errors.NewInvalidArgumentError("invalid block hash %q", c.String("hash"), err)
	}

	n, err := newNodeFromContext(c)
	if err != nil {
		return err
	}
	defer n.Close()

	return printBlock(c.Context, n, blockHash, c.App.Writer)
}

// importHeaders feeds the lines of r to the syncer in batches of batchSize and
// returns the summed result. A fork still pending after the last batch is
// resolved against the confirmed chain.
func importHeaders(ctx context.Context, syncer *headersync.Syncer, r io.Reader, batchSize int) (*headersync.Result, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	total := &headersync.Result{}
	batch := make([]*model.MerkleBlock, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		if ctx.Err() != nil {
			return errors.NewContextCanceledError("import canceled after %d headers", total.Connected+total.ForceAdded+total.Skipped+total.Orphaned, ctx.Err())
		}

		result, err := syncer.ProcessHeaders(ctx, batch)
		if result != nil {
			total.Connected += result.Connected
			total.ForceAdded += result.ForceAdded
			total.Skipped += result.Skipped
			total.Orphaned += result.Orphaned
			total.Resolved = total.Resolved || result.Resolved
			total.Pending = result.Pending
		}

		batch = batch[:0]

		return err
	}

	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		candidate, err := model.NewMerkleBlockFromString(line)
		if err != nil {
			return total, errors.NewProcessingError("line %d", lineNumber, err)
		}

		batch = append(batch, candidate)

		if len(batch) == batchSize {
			if err = flush(); err != nil {
				return total, err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return total, errors.NewProcessingError("failed to read headers", err)
	}

	if err := flush(); err != nil {
		return total, err
	}

	if !total.Pending {
		return total, nil
	}

	resolved, err := syncer.Flush(ctx)
	if err != nil {
		return total, err
	}

	total.Resolved = total.Resolved || resolved
	total.Pending = false

	return total, nil
}

func printTip(ctx context.Context, n *node, w io.Writer) error {
	tip, err := n.manager.GetBestBlock(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "tip: %s height %d\n", tip.Hash(), tip.Height)

	return nil
}

func printBlock(ctx context.Context, n *node, blockHash *chainhash.Hash, w io.Writer) error {
	block, err := n.manager.GetBlock(ctx, blockHash)
	if err != nil {
		return err
	}

	transactions, err := n.manager.GetBlockTransactions(ctx, block)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "hash:       %s\n", block.Hash())
	_, _ = fmt.Fprintf(w, "height:     %d\n", block.Height)
	_, _ = fmt.Fprintf(w, "tentative:  %t\n", block.Tentative)
	_, _ = fmt.Fprintf(w, "previous:   %s\n", block.Header.HashPrevBlock)
	_, _ = fmt.Fprintf(w, "merkleroot: %s\n", block.Header.HashMerkleRoot)
	_, _ = fmt.Fprintf(w, "time:       %d\n", block.Header.Timestamp)
	_, _ = fmt.Fprintf(w, "bits:       %s (difficulty %s)\n", block.Header.Bits, block.Header.Bits.CalculateDifficulty().Text('f', 8))
	_, _ = fmt.Fprintf(w, "nonce:      %d\n", block.Header.Nonce)
	_, _ = fmt.Fprintf(w, "transactions (%d):\n", len(transactions))

	for _, tx := range transactions {
		_, _ = fmt.Fprintf(w, "  %s\n", tx.Hash)
	}

	return nil
}
