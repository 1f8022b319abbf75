package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yascherice/monero-multisig/config"
	"github.com/yascherice/monero-multisig/rpc"
	"github.com/yascherice/monero-multisig/transaction"
	"github.com/yascherice/monero-multisig/wallet"
)

// setup resolves config, flag overrides and the wallet-rpc client for
// one command invocation. The caller must Close the client.
func setup(c *cli.Context) (config.Config, *rpc.Client, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, nil, err
	}
	if c.IsSet("daemon-host") {
		cfg.Daemon.Host = c.String("daemon-host")
	}
	if c.IsSet("daemon-port") {
		cfg.Daemon.Port = uint16(c.Uint("daemon-port"))
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}

	client := rpc.NewClient(rpc.Options{
		URL:      cfg.Daemon.URL(),
		Username: cfg.Daemon.Username,
		Password: cfg.Daemon.Password,
	})
	return cfg, client, nil
}

// readBlobArgs expands blob flag values: a value starting with '@' is
// read from the named file, everything else is taken verbatim.
func readBlobArgs(values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := strings.CutPrefix(v, "@"); ok {
			buf, err := os.ReadFile(name)
			if err != nil {
				return nil, fmt.Errorf("read multisig data from %s: %w", name, err)
			}
			v = strings.TrimSpace(string(buf))
		}
		out = append(out, v)
	}
	return out, nil
}

// resolvePassword returns the --password value, prompting on the
// terminal when the flag was not given.
func resolvePassword(c *cli.Context) (string, error) {
	if c.IsSet("password") {
		return c.String("password"), nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}
	fmt.Fprint(os.Stderr, "Wallet password: ")
	buf, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(buf), nil
}

func createWalletCmd(c *cli.Context) error {
	cfg, client, err := setup(c)
	if err != nil {
		return err
	}
	defer client.Close()

	params, err := wallet.NewMultisigParams(uint32(c.Uint("threshold")), uint32(c.Uint("participants")), c.String("label"))
	if err != nil {
		return err
	}
	fmt.Printf("Creating %d-of-%d multisig wallet %q...\n", params.Threshold, params.Total, params.Label)

	_, info, err := wallet.Create(c.Context, client, cfg.DataDir, params)
	if err != nil {
		return err
	}

	fmt.Println("\nYour multisig info (share with all other participants):")
	fmt.Println()
	fmt.Println(info)
	return nil
}

func exchangeKeysCmd(c *cli.Context) error {
	cfg, client, err := setup(c)
	if err != nil {
		return err
	}
	defer client.Close()

	state, err := wallet.LoadState(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load wallet state: %w", err)
	}
	peerInfo, err := readBlobArgs(c.StringSlice("info"))
	if err != nil {
		return err
	}
	password, err := resolvePassword(c)
	if err != nil {
		return err
	}

	fmt.Println("Performing key exchange round...")
	result, err := wallet.RunExchangeRound(c.Context, client, state, peerInfo, password)
	if err != nil {
		return err
	}
	if err := state.AdvanceExchange(result); err != nil {
		return err
	}
	if err := wallet.SaveState(cfg.DataDir, state); err != nil {
		return err
	}

	if result.Complete() {
		fmt.Println("\nMultisig wallet is ready!")
		fmt.Println("Address:", result.Address)
		return nil
	}
	fmt.Println("\nKey exchange round complete. More rounds needed.")
	fmt.Println("Share this info with peers for the next round:")
	fmt.Println()
	fmt.Println(result.NextInfo)
	return nil
}

// requireReady loads the state record and gates transaction commands on
// a finished key exchange, without touching the gateway first.
func requireReady(dataDir string) (*wallet.State, error) {
	state, err := wallet.LoadState(dataDir)
	if err != nil {
		return nil, fmt.Errorf("load wallet state: %w", err)
	}
	if err := state.EnsureReady(); err != nil {
		return nil, err
	}
	return state, nil
}

func exportInfoCmd(c *cli.Context) error {
	cfg, client, err := setup(c)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := requireReady(cfg.DataDir); err != nil {
		return err
	}
	info, err := transaction.ExportInfo(c.Context, client)
	if err != nil {
		return err
	}
	fmt.Println("Multisig info (share with co-signers):")
	fmt.Println()
	fmt.Println(info)
	return nil
}

func importInfoCmd(c *cli.Context) error {
	cfg, client, err := setup(c)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := requireReady(cfg.DataDir); err != nil {
		return err
	}
	info, err := readBlobArgs(c.StringSlice("info"))
	if err != nil {
		return err
	}
	n, err := transaction.ImportInfo(c.Context, client, info)
	if err != nil {
		return err
	}
	fmt.Printf("Multisig info imported successfully (%d outputs updated). Balance is now synchronized.\n", n)
	return nil
}

func balanceCmd(c *cli.Context) error {
	cfg, client, err := setup(c)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := requireReady(cfg.DataDir); err != nil {
		return err
	}
	bal, err := client.GetBalance(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("Balance:  %s XMR\n", transaction.FormatXMR(bal.Balance))
	fmt.Printf("Unlocked: %s XMR\n", transaction.FormatXMR(bal.UnlockedBalance))
	return nil
}

func buildTxCmd(c *cli.Context) error {
	cfg, client, err := setup(c)
	if err != nil {
		return err
	}
	defer client.Close()

	state, err := requireReady(cfg.DataDir)
	if err != nil {
		return err
	}

	destinations := []transaction.Destination{{
		Address: c.String("address"),
		Amount:  c.Uint64("amount"),
	}}
	priority := transaction.PriorityFromUint(uint32(c.Uint("priority")))

	fmt.Println("Building unsigned multisig transaction...")
	env, err := transaction.BuildTransfer(c.Context, client, cfg.Network, destinations, priority, state.Params.Threshold)
	if err != nil {
		return err
	}

	fmt.Println("\nTransaction built successfully:")
	fmt.Println("  Hash:", env.TxHash)
	fmt.Printf("  Fee:  %s XMR\n", transaction.FormatXMR(env.Fee))
	fmt.Printf("  Signatures: %d of %d\n", env.Signatures, env.Required)
	fmt.Println("\nSigning envelope (share with co-signers):")
	fmt.Println()
	fmt.Println(env.Encode())
	return nil
}

func signTxCmd(c *cli.Context) error {
	cfg, client, err := setup(c)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := requireReady(cfg.DataDir); err != nil {
		return err
	}
	blobs, err := readBlobArgs([]string{c.String("tx-data")})
	if err != nil {
		return err
	}

	fmt.Println("Signing multisig transaction...")
	env, err := transaction.ApplySignature(c.Context, client, blobs[0])
	if err != nil {
		return err
	}

	fmt.Println("\nSignature applied:")
	fmt.Println("  Hash:", env.TxHash)
	fmt.Printf("  Signatures: %d of %d\n", env.Signatures, env.Required)
	if env.ReadyToSubmit() {
		fmt.Println("\nQuorum reached. Updated envelope (submit or share):")
	} else {
		fmt.Println("\nUpdated envelope (share with remaining co-signers):")
	}
	fmt.Println()
	fmt.Println(env.Encode())
	return nil
}

func submitTxCmd(c *cli.Context) error {
	cfg, client, err := setup(c)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := requireReady(cfg.DataDir); err != nil {
		return err
	}
	blobs, err := readBlobArgs([]string{c.String("tx-data")})
	if err != nil {
		return err
	}

	fmt.Println("Submitting fully signed transaction...")
	hash, err := transaction.Submit(c.Context, client, blobs[0])
	if err != nil {
		return err
	}

	fmt.Println("\nTransaction submitted successfully!")
	fmt.Println("  Hash:", hash)
	return nil
}

func showCmd(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}

	state, err := wallet.LoadState(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load wallet state: %w", err)
	}
	fmt.Println(state)
	fmt.Println("State file:", wallet.StatePath(cfg.DataDir))
	return nil
}
