package deso

import (
	"bytes"
	"context"
	"crypto/sha256"

	"github.com/alexdcox/deso-go/rpcclient"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Node is the part of the node api the client needs.
type Node interface {
	Construct(ctx context.Context, endpoint string, request any) (*rpcclient.ConstructOut, error)
	SubmitTransaction(ctx context.Context, in *rpcclient.SubmitTransactionIn) (*rpcclient.SubmitTransactionOut, error)
	GetAppState(ctx context.Context) (*rpcclient.AppState, error)
}

var _ Node = &rpcclient.RpcClient{}

type ClientOptions struct {
	Config *Config
	// Node overrides the node client built from Config.NodeURI.
	Node Node
	// ChainState overrides reading the chain state from Node.
	ChainState ChainStateSource
	// Surface and Popups override the custody transport.
	Surface      Surface
	Popups       PopupOpener
	SessionStore SessionStore
	PartialID    func() (uint64, error)
}

func (o *ClientOptions) setDefaults() (err error) {
	if o.Config == nil {
		o.Config = &Config{}
	}
	o.Config.setDefaults()
	if err = o.Config.Validate(); err != nil {
		return
	}

	if o.Node == nil {
		if o.Node, err = rpcclient.NewRpcClient(o.Config.NodeURI); err != nil {
			return
		}
	}

	if o.ChainState == nil {
		o.ChainState = &nodeChainState{node: o.Node}
	}

	if o.Surface == nil {
		o.Surface = NewHTTPSurface(&HTTPSurfaceOptions{HostPort: o.Config.CallbackHostPort})
	}

	if o.SessionStore == nil {
		o.SessionStore, err = o.Config.OpenSessionStore()
	}

	return
}

func NewClient(options *ClientOptions) (client *Client, err error) {
	if options == nil {
		options = &ClientOptions{}
	}
	if err = options.setDefaults(); err != nil {
		return
	}

	builder, err := NewBuilder(&BuilderOptions{
		ChainState:        options.ChainState,
		FeeRateNanosPerKB: options.Config.FeeRateNanosPerKB,
		PartialID:         options.PartialID,
	})
	if err != nil {
		return
	}

	bridge, err := NewBridge(&BridgeOptions{
		IdentityURI:     options.Config.IdentityURI,
		Network:         options.Config.Network,
		Host:            options.Config.Host,
		ApprovalTimeout: options.Config.Timeout(),
		Surface:         options.Surface,
		Popups:          options.Popups,
		SessionStore:    options.SessionStore,
	})
	if err != nil {
		return
	}

	client = &Client{
		options: options,
		builder: builder,
		bridge:  bridge,
		node:    options.Node,
		log:     Log(),
	}

	return
}

// Client builds transactions, has them signed by the custody context and
// submits them to the node.
type Client struct {
	options *ClientOptions
	builder *Builder
	bridge  *Bridge
	node    Node
	log     *zerolog.Logger
}

func (c *Client) Bridge() *Bridge {
	return c.bridge
}

func (c *Client) Config() *Config {
	return c.options.Config
}

// Defaults are the request defaults taken from the current session.
func (c *Client) Defaults() (defaults Defaults) {
	if session := c.bridge.Session(); session != nil {
		defaults.PublicKey = session.PublicKey
	}
	return
}

func (c *Client) Login(ctx context.Context, accessLevel int) (*Session, error) {
	return c.bridge.Login(ctx, accessLevel)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.bridge.Logout(ctx)
}

func (c *Client) Close() (err error) {
	err = c.bridge.Close()
	if closer, ok := c.options.SessionStore.(interface{ Close() error }); ok {
		if closeErr := closer.Close(); err == nil {
			err = closeErr
		}
	}
	return
}

type SubmitOptions struct {
	// Broadcast defaults to true in browser host mode and false in server
	// host mode.
	Broadcast *bool
}

func (o *SubmitOptions) broadcast(host HostMode) bool {
	if o == nil || o.Broadcast == nil {
		return host == HostBrowser
	}
	return *o.Broadcast
}

type SubmitResult struct {
	Type        TxnType
	UnsignedHex string
	Unsigned    *Transaction
	SignedHex   string
	Signed      *Transaction
	TxnHashHex  string
}

// Construct produces the unsigned transaction for spec, locally or through
// the node depending on Config.LocalConstruction.
func (c *Client) Construct(ctx context.Context, spec *TxnSpec) (txn *Transaction, txHex string, err error) {
	if c.options.Config.Local() {
		if txn, err = c.builder.Build(ctx, spec); err != nil {
			return
		}
		txHex, err = txn.Hex()
		return
	}

	if spec == nil || spec.Endpoint == "" {
		err = missingField("Endpoint")
		return
	}

	out, err := c.node.Construct(ctx, spec.Endpoint, spec.Request)
	if err != nil {
		err = errors.Wrapf(err, "unable to construct %s", spec.Type())
		return
	}
	txHex = out.TransactionHex

	if txn, err = DecodeTransactionHex(txHex); err != nil {
		err = errors.Wrap(err, "node returned an undecodable transaction")
	}
	return
}

// Submit constructs spec and, when broadcasting, signs it through the
// bridge and sends it to the node. Without broadcast the unsigned
// transaction is returned untouched.
func (c *Client) Submit(ctx context.Context, spec *TxnSpec, options *SubmitOptions) (result *SubmitResult, err error) {
	txn, txHex, err := c.Construct(ctx, spec)
	if err != nil {
		return
	}

	result = &SubmitResult{
		Type:        txn.Type(),
		UnsignedHex: txHex,
		Unsigned:    txn,
	}

	if !options.broadcast(c.options.Config.Host) {
		return
	}

	if result.SignedHex, err = c.bridge.Sign(ctx, txHex); err != nil {
		result = nil
		return
	}

	if result.Signed, err = VerifySigned(txn, result.SignedHex); err != nil {
		result = nil
		return
	}

	out, err := c.node.SubmitTransaction(ctx, &rpcclient.SubmitTransactionIn{TransactionHex: result.SignedHex})
	if err != nil {
		result = nil
		err = errors.Wrapf(err, "unable to submit %s", txn.Type())
		return
	}
	result.TxnHashHex = out.TxnHashHex

	c.log.Info().Msgf("submitted %s transaction %s", result.Type, result.TxnHashHex)

	return
}

// VerifySigned checks that signedHex is unsigned with a DER signature
// attached and nothing else changed. A signature that does not verify
// against the transactor key is only logged, since derived keys sign on
// the owner's behalf.
func VerifySigned(unsigned *Transaction, signedHex string) (signed *Transaction, err error) {
	if signed, err = DecodeTransactionHex(signedHex); err != nil {
		err = errors.Wrap(ErrSigningFailed, err.Error())
		return
	}

	body, err := unsignedBytes(signed)
	if err != nil {
		signed = nil
		return
	}
	want, err := unsignedBytes(unsigned)
	if err != nil {
		signed = nil
		return
	}
	if !bytes.Equal(body, want) {
		signed = nil
		err = errors.Wrap(ErrSigningFailed, "signed transaction differs from the one sent for signing")
		return
	}

	signature, err := ecdsa.ParseDERSignature(signed.Signature)
	if err != nil {
		signed = nil
		err = errors.Wrapf(ErrSigningFailed, "signature is not DER: %v", err)
		return
	}

	if key, keyErr := btcec.ParsePubKey(signed.PublicKey); keyErr == nil {
		if !signature.Verify(TransactionHash(body), key) {
			Log().Debug().Msg("signature was not made by the transactor key")
		}
	}

	return
}

// TransactionHash is the double sha256 of an unsigned transaction, the
// digest the custody context signs.
func TransactionHash(unsigned []byte) []byte {
	first := sha256.Sum256(unsigned)
	second := sha256.Sum256(first[:])
	return second[:]
}

func unsignedBytes(txn *Transaction) ([]byte, error) {
	copied := *txn
	copied.Signature = []byte{}
	return copied.ToBytes()
}

// nodeChainState reads the height and fee floor from the node.
type nodeChainState struct {
	node Node
}

func (s *nodeChainState) ChainState(ctx context.Context) (state ChainState, err error) {
	out, err := s.node.GetAppState(ctx)
	if err != nil {
		return
	}
	state = ChainState{
		BlockHeight:          out.BlockHeight,
		MinFeeRateNanosPerKB: out.MinFeeRateNanosPerKB,
	}
	return
}

var _ ChainStateSource = &nodeChainState{}
