package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:  "monero-multisig",
		Usage: "Create and manage Monero M-of-N multisig wallets",
		Description: "Supports arbitrary M-of-N configurations, multi-round key exchange, " +
			"and cooperative transaction signing. Each command is one step of the " +
			"protocol; progress is remembered in the data directory between runs.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a JSON configuration file",
			},
			&cli.StringFlag{
				Name:  "daemon-host",
				Usage: "Monero wallet RPC host",
				Value: "127.0.0.1",
			},
			&cli.UintFlag{
				Name:  "daemon-port",
				Usage: "Monero wallet RPC port",
				Value: 18081,
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "directory holding the wallet state record",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "create-wallet",
				Usage: "Create a new multisig wallet and output your multisig info for sharing",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:     "threshold",
						Aliases:  []string{"m"},
						Usage:    "required number of signers (M)",
						Required: true,
					},
					&cli.UintFlag{
						Name:     "participants",
						Aliases:  []string{"n"},
						Usage:    "total number of participants (N)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "label",
						Aliases: []string{"l"},
						Usage:   "human-readable wallet label",
						Value:   "default",
					},
				},
				Action: createWalletCmd,
			},
			{
				Name:  "exchange-keys",
				Usage: "Perform a key exchange round with peer multisig info strings",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "info",
						Aliases:  []string{"i"},
						Usage:    "multisig info from other participants, one per peer (use @file to read from a file)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "wallet password (prompted when omitted on a terminal)",
					},
				},
				Action: exchangeKeysCmd,
			},
			{
				Name:   "export-info",
				Usage:  "Export multisig info for balance synchronization",
				Action: exportInfoCmd,
			},
			{
				Name:  "import-info",
				Usage: "Import multisig info from co-signers before building transactions",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "info",
						Aliases:  []string{"i"},
						Usage:    "multisig info from co-signers (use @file to read from a file)",
						Required: true,
					},
				},
				Action: importInfoCmd,
			},
			{
				Name:   "balance",
				Usage:  "Show the wallet's total and unlocked balance",
				Action: balanceCmd,
			},
			{
				Name:  "build-tx",
				Usage: "Build an unsigned transaction and output the signing envelope",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "address",
						Aliases:  []string{"a"},
						Usage:    "recipient address",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "amount",
						Aliases:  []string{"x"},
						Usage:    "amount in atomic units (piconero)",
						Required: true,
					},
					&cli.UintFlag{
						Name:  "priority",
						Usage: "transaction priority (0=default, 1=low, 2=medium, 3=high)",
					},
				},
				Action: buildTxCmd,
			},
			{
				Name:  "sign-tx",
				Usage: "Apply this participant's signature to a multisig transaction",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tx-data",
						Aliases:  []string{"t"},
						Usage:    "signing envelope from build-tx or a previous sign-tx (use @file to read from a file)",
						Required: true,
					},
				},
				Action: signTxCmd,
			},
			{
				Name:  "submit-tx",
				Usage: "Submit a fully signed multisig transaction to the network",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tx-data",
						Aliases:  []string{"t"},
						Usage:    "fully signed envelope (use @file to read from a file)",
						Required: true,
					},
				},
				Action: submitTxCmd,
			},
			{
				Name:   "show",
				Usage:  "Show the current wallet setup state",
				Action: showCmd,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
