package deso

import (
	"context"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/alexdcox/deso-go/rpcclient"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	mu        sync.Mutex
	builder   *Builder
	endpoints []string
	submitted []string
	submitErr error
	appState  rpcclient.AppState
}

var _ Node = &fakeNode{}

// Construct builds what the node would from the request body the client
// sends.
func (n *fakeNode) Construct(ctx context.Context, endpoint string, request any) (out *rpcclient.ConstructOut, err error) {
	n.mu.Lock()
	n.endpoints = append(n.endpoints, endpoint)
	n.mu.Unlock()

	spec, err := ConstructBurnNFT(request.(*BurnNFTRequest), Defaults{})
	if err != nil {
		return
	}
	txn, err := n.builder.Build(ctx, spec)
	if err != nil {
		return
	}
	txHex, err := txn.Hex()
	if err != nil {
		return
	}
	return &rpcclient.ConstructOut{TransactionHex: txHex, FeeNanos: txn.FeeNanos}, nil
}

func (n *fakeNode) SubmitTransaction(ctx context.Context, in *rpcclient.SubmitTransactionIn) (*rpcclient.SubmitTransactionOut, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.submitErr != nil {
		return nil, n.submitErr
	}
	n.submitted = append(n.submitted, in.TransactionHex)
	return &rpcclient.SubmitTransactionOut{TxnHashHex: "feed"}, nil
}

func (n *fakeNode) GetAppState(ctx context.Context) (*rpcclient.AppState, error) {
	state := n.appState
	return &state, nil
}

// signTransactionHex does what the custody context does with a sign
// request.
func signTransactionHex(t *testing.T, priv *btcec.PrivateKey, txHex string) string {
	txn, err := DecodeTransactionHex(txHex)
	require.Nil(t, err)
	body, err := unsignedBytes(txn)
	require.Nil(t, err)

	txn.Signature = ecdsa.Sign(priv, TransactionHash(body)).Serialize()
	signed, err := txn.Hex()
	require.Nil(t, err)
	return signed
}

// custody answers every sign request on surface until the test ends.
func custody(t *testing.T, surface *fakeSurface, priv *btcec.PrivateKey) {
	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })

	go func() {
		for {
			select {
			case msg := <-surface.posted:
				if msg.Method != MethodSign {
					continue
				}
				txHex := msg.Payload.(map[string]string)["transactionHex"]
				surface.reply(msg.ID, `{"signedTransactionHex":"`+signTransactionHex(t, priv, txHex)+`"}`)
			case <-stop:
				return
			}
		}
	}()
}

type clientFixture struct {
	client  *Client
	node    *fakeNode
	surface *fakeSurface
	user    testKey
}

func newClientFixture(t *testing.T, config *Config) *clientFixture {
	user := newTestKey(t, 0x41, NetworkMainNet)
	store := NewInMemorySessionStore()
	require.Nil(t, SaveSession(store, &Session{PublicKey: user.base58, SessionToken: "token", Network: NetworkMainNet}, testOrigin))

	state := StaticChainState(ChainState{BlockHeight: 500})
	partialID := func() (uint64, error) { return 9, nil }
	nodeBuilder, err := NewBuilder(&BuilderOptions{ChainState: state, PartialID: partialID})
	require.Nil(t, err)

	config.IdentityURI = testOrigin
	f := &clientFixture{
		node:    &fakeNode{builder: nodeBuilder},
		surface: newFakeSurface(),
		user:    user,
	}

	client, err := NewClient(&ClientOptions{
		Config:       config,
		Node:         f.node,
		ChainState:   state,
		Surface:      f.surface,
		Popups:       newFakePopups(),
		SessionStore: store,
		PartialID:    partialID,
	})
	require.Nil(t, err)
	t.Cleanup(func() { _ = client.Close() })
	f.client = client

	custody(t, f.surface, user.priv)

	return f
}

func burnRequest() *BurnNFTRequest {
	return &BurnNFTRequest{NFTPostHashHex: hex.EncodeToString(hash32(0x5a)), SerialNumber: 3}
}

func TestClient_SubmitBroadcasts(t *testing.T) {
	f := newClientFixture(t, &Config{})
	assert.Equal(t, Defaults{PublicKey: f.user.base58}, f.client.Defaults())

	result, err := f.client.BurnNFT(context.Background(), burnRequest(), nil)
	require.Nil(t, err)

	assert.Equal(t, TxnTypeBurnNFT, result.Type)
	assert.Equal(t, f.user.pub, result.Unsigned.PublicKey)
	assert.Empty(t, result.Unsigned.Signature)
	require.NotNil(t, result.Signed)
	assert.NotEmpty(t, result.Signed.Signature)
	assert.Equal(t, "feed", result.TxnHashHex)
	assert.Equal(t, []string{result.SignedHex}, f.node.submitted)
	assert.Empty(t, f.node.endpoints, "local construction does not ask the node")

	signature, err := ecdsa.ParseDERSignature(result.Signed.Signature)
	require.Nil(t, err)
	body, err := unsignedBytes(result.Signed)
	require.Nil(t, err)
	assert.True(t, signature.Verify(TransactionHash(body), f.user.priv.PubKey()))
}

func TestClient_SubmitWithoutBroadcast(t *testing.T) {
	f := newClientFixture(t, &Config{})
	broadcast := false

	result, err := f.client.BurnNFT(context.Background(), burnRequest(), &SubmitOptions{Broadcast: &broadcast})
	require.Nil(t, err)

	assert.NotEmpty(t, result.UnsignedHex)
	assert.Nil(t, result.Signed)
	assert.Empty(t, result.SignedHex)
	assert.Empty(t, result.TxnHashHex)
	assert.Empty(t, f.node.submitted)
}

func TestClient_ServerHostDefaultsToConstructOnly(t *testing.T) {
	f := newClientFixture(t, &Config{Host: HostServer})

	result, err := f.client.BurnNFT(context.Background(), burnRequest(), nil)
	require.Nil(t, err)
	assert.Nil(t, result.Signed)
	assert.Empty(t, f.node.submitted)

	broadcast := true
	_, err = f.client.BurnNFT(context.Background(), burnRequest(), &SubmitOptions{Broadcast: &broadcast})
	assert.True(t, errors.Is(err, ErrUnsupportedInHostMode))
}

func TestClient_NodeConstruction(t *testing.T) {
	local := false
	f := newClientFixture(t, &Config{LocalConstruction: &local})

	result, err := f.client.BurnNFT(context.Background(), burnRequest(), nil)
	require.Nil(t, err)

	assert.Equal(t, []string{"burn-nft"}, f.node.endpoints)
	assert.Equal(t, f.user.pub, result.Unsigned.PublicKey, "the session key is sent to the node")
	assert.Equal(t, "feed", result.TxnHashHex)

	localClient := newClientFixture(t, &Config{})
	broadcast := false
	localResult, err := localClient.client.BurnNFT(context.Background(), burnRequest(), &SubmitOptions{Broadcast: &broadcast})
	require.Nil(t, err)
	assert.Equal(t, localResult.UnsignedHex, result.UnsignedHex, "node and local construction agree")
}

func TestClient_SubmitFailure(t *testing.T) {
	f := newClientFixture(t, &Config{})
	f.node.submitErr = errors.WithStack(&rpcclient.NodeError{StatusCode: 400, Message: "bad nonce"})

	result, err := f.client.BurnNFT(context.Background(), burnRequest(), nil)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, rpcclient.ErrNodeRequest))
}

func TestClient_ConstructErrors(t *testing.T) {
	f := newClientFixture(t, &Config{})

	_, err := f.client.BurnNFT(context.Background(), &BurnNFTRequest{NFTPostHashHex: "zz", SerialNumber: 1}, nil)
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))

	local := false
	remote := newClientFixture(t, &Config{LocalConstruction: &local})
	_, _, err = remote.client.Construct(context.Background(), &TxnSpec{})
	assert.True(t, errors.Is(err, ErrMissingRequiredField))
}

func TestVerifySigned(t *testing.T) {
	user := newTestKey(t, 0x41, NetworkMainNet)
	builder := testBuilder(t, ChainState{BlockHeight: 10})

	spec, err := ConstructBurnNFT(burnRequest(), Defaults{PublicKey: user.base58})
	require.Nil(t, err)
	unsigned, err := builder.Build(context.Background(), spec)
	require.Nil(t, err)
	unsignedHex, err := unsigned.Hex()
	require.Nil(t, err)

	signedHex := signTransactionHex(t, user.priv, unsignedHex)
	signed, err := VerifySigned(unsigned, signedHex)
	require.Nil(t, err)
	assert.NotEmpty(t, signed.Signature)

	other := newTestKey(t, 0x42, NetworkMainNet)
	_, err = VerifySigned(unsigned, signTransactionHex(t, other.priv, unsignedHex))
	assert.Nil(t, err, "a derived key signature is accepted")

	tampered := *signed
	tampered.FeeNanos++
	tamperedHex, err := tampered.Hex()
	require.Nil(t, err)

	notDER := *unsigned
	notDER.Signature = []byte{1, 2, 3}
	notDERHex, err := notDER.Hex()
	require.Nil(t, err)

	for name, input := range map[string]string{
		"tampered":  tamperedHex,
		"not der":   notDERHex,
		"not hex":   "zz",
		"truncated": signedHex[:20],
	} {
		signed, err := VerifySigned(unsigned, input)
		assert.Nil(t, signed, name)
		assert.True(t, errors.Is(err, ErrSigningFailed), name)
	}
}

func TestNodeChainState(t *testing.T) {
	state, err := (&nodeChainState{node: &fakeNode{appState: rpcclient.AppState{BlockHeight: 12, MinFeeRateNanosPerKB: 1500}}}).ChainState(context.Background())
	require.Nil(t, err)
	assert.Equal(t, ChainState{BlockHeight: 12, MinFeeRateNanosPerKB: 1500}, state)
}
