// Package main is the spvchain command line tool. It imports header files
// into a local chain store, resolves forks and inspects the stored chain.
//
// Usage:
//
//	spvchain [--store URL] import --file headers.txt
//	spvchain resolve
//	spvchain tip
//	spvchain block --hash <hash>
//
// Settings are read from settings.conf and settings_local.conf; --store
// overrides blockchain_store.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "spvchain",
		Usage: "Maintain a local SPV header chain",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Usage: "blockchain store URL, overrides the blockchain_store setting",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import headers, one hex header per line optionally followed by comma separated tx hashes",
				Action: importAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path of the header file, - for stdin",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch",
						Usage: "number of headers processed per batch",
						Value: defaultBatchSize,
					},
				},
			},
			{
				Name:   "resolve",
				Usage:  "Resolve competing branches",
				Action: resolveAction,
			},
			{
				Name:   "tip",
				Usage:  "Print the confirmed chain tip",
				Action: tipAction,
			},
			{
				Name:   "block",
				Usage:  "Print a stored block and its transactions",
				Action: blockAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "hash",
						Usage:    "block hash in hex",
						Required: true,
					},
				},
			},
		},
	}
}
