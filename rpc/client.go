package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("rpc")

const defaultTimeout = 30 * time.Second

// Error is an application-level failure reported by the wallet-RPC,
// carrying the JSON-RPC error code and message plus the method that
// produced it. Transport failures are returned as plain wrapped errors
// so callers can tell the two apart.
type Error struct {
	Method  string
	Code    int64
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc %s: %s (code %d)", e.Method, e.Message, e.Code)
}

// Options configures a wallet-RPC client.
type Options struct {
	// URL is the full JSON-RPC endpoint, e.g. http://127.0.0.1:18081/json_rpc.
	URL string
	// Username and Password enable HTTP authentication when non-empty.
	Username string
	Password string
	// Timeout bounds each round-trip. Zero means the 30s default.
	Timeout time.Duration
}

// Client talks JSON-RPC 2.0 over HTTP(S) to a monero-wallet-rpc
// service. It implements Gateway. Request ids increase monotonically
// per client.
type Client struct {
	conn *jrpc2.Client
	url  string
}

var _ Gateway = (*Client)(nil)

// NewClient builds a client for the given endpoint. The caller owns the
// client and must Close it.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := &http.Client{Timeout: timeout}
	if opts.Username != "" {
		hc.Transport = &authTransport{
			username: opts.Username,
			password: opts.Password,
			base:     http.DefaultTransport,
		}
	}
	ch := jhttp.NewChannel(opts.URL, &jhttp.ChannelOptions{Client: hc})
	return &Client{
		conn: jrpc2.NewClient(ch, nil),
		url:  opts.URL,
	}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.url
}

type authTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(clone)
}

// call performs one request and maps failures: remote errors become
// *Error, everything else (network, timeout, decode) stays a wrapped
// transport error naming the method.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	err := c.conn.CallResult(ctx, method, params, result)
	if err == nil {
		log.Debugw("rpc call ok", "method", method)
		return nil
	}
	var jerr *jrpc2.Error
	if errors.As(err, &jerr) {
		log.Debugw("rpc call rejected", "method", method, "code", int64(jerr.Code), "message", jerr.Message)
		return &Error{Method: method, Code: int64(jerr.Code), Message: jerr.Message}
	}
	return fmt.Errorf("rpc %s: %w", method, err)
}

type prepareMultisigResult struct {
	MultisigInfo string `json:"multisig_info"`
}

func (c *Client) PrepareMultisig(ctx context.Context) (string, error) {
	var res prepareMultisigResult
	if err := c.call(ctx, "prepare_multisig", struct{}{}, &res); err != nil {
		return "", err
	}
	return res.MultisigInfo, nil
}

type makeMultisigParams struct {
	MultisigInfo []string `json:"multisig_info"`
	Threshold    uint32   `json:"threshold"`
	Password     string   `json:"password"`
}

func (c *Client) MakeMultisig(ctx context.Context, peerInfo []string, threshold uint32, password string) (*ExchangeResult, error) {
	params := makeMultisigParams{
		MultisigInfo: peerInfo,
		Threshold:    threshold,
		Password:     password,
	}
	var res ExchangeResult
	if err := c.call(ctx, "make_multisig", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type exchangeKeysParams struct {
	MultisigInfo []string `json:"multisig_info"`
	Password     string   `json:"password"`
}

func (c *Client) ExchangeMultisigKeys(ctx context.Context, peerInfo []string, password string) (*ExchangeResult, error) {
	params := exchangeKeysParams{
		MultisigInfo: peerInfo,
		Password:     password,
	}
	var res ExchangeResult
	if err := c.call(ctx, "exchange_multisig_keys", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type exportInfoResult struct {
	Info string `json:"info"`
}

func (c *Client) ExportMultisigInfo(ctx context.Context) (string, error) {
	var res exportInfoResult
	if err := c.call(ctx, "export_multisig_info", struct{}{}, &res); err != nil {
		return "", err
	}
	return res.Info, nil
}

type importInfoParams struct {
	Info []string `json:"info"`
}

type importInfoResult struct {
	NOutputs uint64 `json:"n_outputs"`
}

func (c *Client) ImportMultisigInfo(ctx context.Context, info []string) (uint64, error) {
	var res importInfoResult
	if err := c.call(ctx, "import_multisig_info", importInfoParams{Info: info}, &res); err != nil {
		return 0, err
	}
	return res.NOutputs, nil
}

type transferParams struct {
	Destinations []TransferDestination `json:"destinations"`
	Priority     uint32                `json:"priority"`
	GetTxHex     bool                  `json:"get_tx_hex"`
	DoNotRelay   bool                  `json:"do_not_relay"`
}

func (c *Client) Transfer(ctx context.Context, destinations []TransferDestination, priority uint32) (*TransferResult, error) {
	params := transferParams{
		Destinations: destinations,
		Priority:     priority,
		// The tx set must never be relayed here; co-signers still have
		// to apply their signatures.
		DoNotRelay: true,
	}
	var res TransferResult
	if err := c.call(ctx, "transfer", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type txDataParams struct {
	TxDataHex string `json:"tx_data_hex"`
}

func (c *Client) SignMultisig(ctx context.Context, txDataHex string) (*SignResult, error) {
	var res SignResult
	if err := c.call(ctx, "sign_multisig", txDataParams{TxDataHex: txDataHex}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SubmitMultisig(ctx context.Context, txDataHex string) (*SubmitResult, error) {
	var res SubmitResult
	if err := c.call(ctx, "submit_multisig", txDataParams{TxDataHex: txDataHex}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type getBalanceParams struct {
	AccountIndex uint32 `json:"account_index"`
}

func (c *Client) GetBalance(ctx context.Context) (*BalanceResult, error) {
	var res BalanceResult
	if err := c.call(ctx, "get_balance", getBalanceParams{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
