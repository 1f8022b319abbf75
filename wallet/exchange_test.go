package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yascherice/monero-multisig/rpc"
)

// fakeGateway scripts the wallet-RPC side of the exchange. Methods not
// overridden panic through the embedded nil interface, which doubles as
// a guard against unexpected calls.
type fakeGateway struct {
	rpc.Gateway

	prepareInfo string
	prepareErr  error

	makeResp *rpc.ExchangeResult
	makeErr  error
	makeArgs struct {
		peerInfo  []string
		threshold uint32
		password  string
	}
	makeCalls int

	exchangeResps []*rpc.ExchangeResult
	exchangeErr   error
	exchangeCalls int
}

func (f *fakeGateway) PrepareMultisig(ctx context.Context) (string, error) {
	return f.prepareInfo, f.prepareErr
}

func (f *fakeGateway) MakeMultisig(ctx context.Context, peerInfo []string, threshold uint32, password string) (*rpc.ExchangeResult, error) {
	f.makeCalls++
	f.makeArgs.peerInfo = peerInfo
	f.makeArgs.threshold = threshold
	f.makeArgs.password = password
	return f.makeResp, f.makeErr
}

func (f *fakeGateway) ExchangeMultisigKeys(ctx context.Context, peerInfo []string, password string) (*rpc.ExchangeResult, error) {
	f.exchangeCalls++
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	resp := f.exchangeResps[0]
	f.exchangeResps = f.exchangeResps[1:]
	return resp, nil
}

func TestCreateWallet(t *testing.T) {
	dir := t.TempDir()
	gw := &fakeGateway{prepareInfo: "MultisigV1-initial"}

	state, info, err := Create(context.Background(), gw, dir, testParams(t))
	require.NoError(t, err)
	assert.Equal(t, "MultisigV1-initial", info)
	assert.Equal(t, StateCreated, state.Kind)

	loaded, err := LoadState(dir)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestCreateWalletAlreadyExists(t *testing.T) {
	dir := t.TempDir()
	gw := &fakeGateway{prepareInfo: "blob"}

	_, _, err := Create(context.Background(), gw, dir, testParams(t))
	require.NoError(t, err)

	_, _, err = Create(context.Background(), gw, dir, testParams(t))
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateWalletGatewayFailureLeavesNoState(t *testing.T) {
	dir := t.TempDir()
	gw := &fakeGateway{prepareErr: errors.New("connection refused")}

	_, _, err := Create(context.Background(), gw, dir, testParams(t))
	require.Error(t, err)

	_, err = LoadState(dir)
	require.ErrorIs(t, err, ErrStateNotFound)
}

func TestRunExchangeRoundFirstRound(t *testing.T) {
	gw := &fakeGateway{makeResp: &rpc.ExchangeResult{MultisigInfo: "MultisigxV2-round2"}}
	state := NewCreatedState("/tmp/wallet", testParams(t))

	result, err := RunExchangeRound(context.Background(), gw, state, []string{"peerA", "peerB"}, "pw")
	require.NoError(t, err)
	assert.False(t, result.Complete())
	assert.Equal(t, "MultisigxV2-round2", result.NextInfo)

	// First round goes through make_multisig with the threshold.
	assert.Equal(t, 1, gw.makeCalls)
	assert.Equal(t, []string{"peerA", "peerB"}, gw.makeArgs.peerInfo)
	assert.Equal(t, uint32(2), gw.makeArgs.threshold)
	assert.Equal(t, "pw", gw.makeArgs.password)
	assert.Equal(t, 0, gw.exchangeCalls)
}

func TestRunExchangeRoundIncompletePeerSet(t *testing.T) {
	gw := &fakeGateway{}
	state := NewCreatedState("/tmp/wallet", testParams(t))

	// 2-of-3 needs blobs from both other participants on round one.
	_, err := RunExchangeRound(context.Background(), gw, state, []string{"peerA"}, "")
	require.ErrorIs(t, err, ErrInvalidParams)
	assert.Equal(t, 0, gw.makeCalls)

	_, err = RunExchangeRound(context.Background(), gw, state, nil, "")
	require.ErrorIs(t, err, ErrInvalidParams)
	assert.Equal(t, 0, gw.makeCalls)
}

func TestRunExchangeRoundLaterRound(t *testing.T) {
	gw := &fakeGateway{exchangeResps: []*rpc.ExchangeResult{{Address: "4addr"}}}
	state := &State{Kind: StateKeyExchange, Params: testParams(t), Round: 1}

	result, err := RunExchangeRound(context.Background(), gw, state, []string{"blobA", "blobB"}, "pw")
	require.NoError(t, err)
	assert.True(t, result.Complete())
	assert.Equal(t, "4addr", result.Address)
	assert.Equal(t, 0, gw.makeCalls)
	assert.Equal(t, 1, gw.exchangeCalls)
}

func TestRunExchangeRoundFromReady(t *testing.T) {
	gw := &fakeGateway{}
	state := &State{Kind: StateReady, Params: testParams(t), Address: "4addr"}

	_, err := RunExchangeRound(context.Background(), gw, state, []string{"blob"}, "")
	require.ErrorIs(t, err, ErrAlreadySetUp)
}

func TestRunExchangeRoundWrapsGatewayError(t *testing.T) {
	gw := &fakeGateway{makeErr: &rpc.Error{Method: "make_multisig", Code: -1, Message: "wallet locked"}}
	state := NewCreatedState("/tmp/wallet", testParams(t))

	_, err := RunExchangeRound(context.Background(), gw, state, []string{"a", "b"}, "")
	require.ErrorIs(t, err, ErrKeyExchangeFailed)
	assert.Contains(t, err.Error(), "wallet locked")
}

func TestRunExchangeRoundEmptyGatewayResponse(t *testing.T) {
	gw := &fakeGateway{makeResp: &rpc.ExchangeResult{}}
	state := NewCreatedState("/tmp/wallet", testParams(t))

	_, err := RunExchangeRound(context.Background(), gw, state, []string{"a", "b"}, "")
	require.ErrorIs(t, err, ErrKeyExchangeFailed)
}

// TestTwoOfThreeSetupScenario walks the full 2-of-3 setup the way three
// separate CLI invocations would: create, a partial round, a completing
// round, then a rejected extra round.
func TestTwoOfThreeSetupScenario(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	gw := &fakeGateway{
		prepareInfo: "MultisigV1-mine",
		makeResp:    &rpc.ExchangeResult{MultisigInfo: "MultisigxV2-mine"},
		exchangeResps: []*rpc.ExchangeResult{
			{Address: "4multisigaddr"},
		},
	}

	// Invocation 1: create-wallet -m 2 -n 3 -l test.
	params, err := NewMultisigParams(2, 3, "test")
	require.NoError(t, err)
	_, info, err := Create(ctx, gw, dir, params)
	require.NoError(t, err)
	assert.Equal(t, "MultisigV1-mine", info)

	// Invocation 2: exchange-keys with both peers' initial blobs.
	state, err := LoadState(dir)
	require.NoError(t, err)
	result, err := RunExchangeRound(ctx, gw, state, []string{"MultisigV1-a", "MultisigV1-b"}, "pw")
	require.NoError(t, err)
	require.False(t, result.Complete())
	require.NoError(t, state.AdvanceExchange(result))
	require.NoError(t, SaveState(dir, state))

	state, err = LoadState(dir)
	require.NoError(t, err)
	assert.Equal(t, StateKeyExchange, state.Kind)
	assert.Equal(t, uint32(1), state.Round)

	// Invocation 3: exchange-keys with the updated blobs completes.
	result, err = RunExchangeRound(ctx, gw, state, []string{"MultisigxV2-a", "MultisigxV2-b"}, "pw")
	require.NoError(t, err)
	require.True(t, result.Complete())
	require.NoError(t, state.AdvanceExchange(result))
	require.NoError(t, SaveState(dir, state))

	state, err = LoadState(dir)
	require.NoError(t, err)
	assert.Equal(t, StateReady, state.Kind)
	assert.Equal(t, "4multisigaddr", state.Address)

	// Invocation 4: another exchange-keys must be rejected.
	_, err = RunExchangeRound(ctx, gw, state, []string{"blob"}, "pw")
	require.ErrorIs(t, err, ErrAlreadySetUp)
}
