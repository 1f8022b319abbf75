package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// rpcServer is a scripted wallet-rpc endpoint: it records every request
// and answers from a per-method table.
type rpcServer struct {
	t        *testing.T
	requests []rpcRequest
	results  map[string]string // method -> result JSON
	errors   map[string]string // method -> error object JSON
}

func newRPCServer(t *testing.T) (*rpcServer, *Client) {
	t.Helper()
	s := &rpcServer{
		t:       t,
		results: map[string]string{},
		errors:  map[string]string{},
	}
	srv := httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(srv.Close)

	client := NewClient(Options{URL: srv.URL})
	t.Cleanup(func() { client.Close() })
	return s, client
}

func (s *rpcServer) handle(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.t.Errorf("decode request: %v", err)
		return
	}
	s.requests = append(s.requests, req)

	w.Header().Set("Content-Type", "application/json")
	if errObj, ok := s.errors[req.Method]; ok {
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":%s}`, req.ID, errObj)
		return
	}
	result, ok := s.results[req.Method]
	if !ok {
		result = "{}"
	}
	fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
}

func TestPrepareMultisig(t *testing.T) {
	srv, client := newRPCServer(t)
	srv.results["prepare_multisig"] = `{"multisig_info":"MultisigV1abc"}`

	info, err := client.PrepareMultisig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MultisigV1abc", info)
	require.Len(t, srv.requests, 1)
	assert.Equal(t, "prepare_multisig", srv.requests[0].Method)
	assert.Equal(t, "2.0", srv.requests[0].JSONRPC)
}

func TestMakeMultisigParams(t *testing.T) {
	srv, client := newRPCServer(t)
	srv.results["make_multisig"] = `{"address":"","multisig_info":"MultisigxV2next"}`

	res, err := client.MakeMultisig(context.Background(), []string{"a", "b"}, 2, "pw")
	require.NoError(t, err)
	assert.Equal(t, "MultisigxV2next", res.MultisigInfo)
	assert.Empty(t, res.Address)

	var params struct {
		MultisigInfo []string `json:"multisig_info"`
		Threshold    uint32   `json:"threshold"`
		Password     string   `json:"password"`
	}
	require.NoError(t, json.Unmarshal(srv.requests[0].Params, &params))
	assert.Equal(t, []string{"a", "b"}, params.MultisigInfo)
	assert.Equal(t, uint32(2), params.Threshold)
	assert.Equal(t, "pw", params.Password)
}

func TestTransferNeverRelays(t *testing.T) {
	srv, client := newRPCServer(t)
	srv.results["transfer"] = `{"tx_hash":"h","fee":7,"multisig_txset":"set"}`

	res, err := client.Transfer(context.Background(), []TransferDestination{{Address: "4abc", Amount: 9}}, 1)
	require.NoError(t, err)
	assert.Equal(t, "set", res.MultisigTxset)
	assert.Equal(t, uint64(7), res.Fee)

	var params struct {
		DoNotRelay bool   `json:"do_not_relay"`
		Priority   uint32 `json:"priority"`
	}
	require.NoError(t, json.Unmarshal(srv.requests[0].Params, &params))
	assert.True(t, params.DoNotRelay)
	assert.Equal(t, uint32(1), params.Priority)
}

func TestApplicationErrorSurfacesCodeAndMethod(t *testing.T) {
	srv, client := newRPCServer(t)
	srv.errors["transfer"] = `{"code":-17,"message":"not enough money"}`

	_, err := client.Transfer(context.Background(), nil, 0)
	require.Error(t, err)

	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "transfer", rpcErr.Method)
	assert.Equal(t, int64(-17), rpcErr.Code)
	assert.Equal(t, "not enough money", rpcErr.Message)
}

func TestTransportErrorIsNotAnRPCError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	client := NewClient(Options{URL: srv.URL})
	defer client.Close()

	_, err := client.PrepareMultisig(context.Background())
	require.Error(t, err)
	var rpcErr *Error
	assert.False(t, errors.As(err, &rpcErr))
	assert.Contains(t, err.Error(), "prepare_multisig")
}

func TestRequestIDsIncrease(t *testing.T) {
	srv, client := newRPCServer(t)
	srv.results["get_balance"] = `{"balance":10,"unlocked_balance":5}`

	for i := 0; i < 3; i++ {
		_, err := client.GetBalance(context.Background())
		require.NoError(t, err)
	}
	require.Len(t, srv.requests, 3)

	prev := int64(-1)
	for _, req := range srv.requests {
		id, err := strconv.ParseInt(string(req.ID), 10, 64)
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestGetBalance(t *testing.T) {
	srv, client := newRPCServer(t)
	srv.results["get_balance"] = `{"balance":2000000000000,"unlocked_balance":1500000000}`

	bal, err := client.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000_000_000), bal.Balance)
	assert.Equal(t, uint64(1_500_000_000), bal.UnlockedBalance)
}

func TestImportMultisigInfo(t *testing.T) {
	srv, client := newRPCServer(t)
	srv.results["import_multisig_info"] = `{"n_outputs":4}`

	n, err := client.ImportMultisigInfo(context.Background(), []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), n)
}
