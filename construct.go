package deso

import (
	"context"
	"crypto/rand"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// NonceExpiryBlocks is how far past the current height a nonce stays
	// valid.
	NonceExpiryBlocks = 288

	// SignatureReserveBytes covers the DER signature and its length prefix,
	// which are added after the fee is fixed.
	SignatureReserveBytes = 74

	DefaultFeeRateNanosPerKB = 1000

	maxFeeIterations = 16
)

type TransactionFee struct {
	PublicKeyBase58Check string `json:"PublicKeyBase58Check"`
	AmountNanos          uint64 `json:"AmountNanos"`
}

// TxOptions are the envelope options every construction request accepts.
type TxOptions struct {
	MinFeeRateNanosPerKB uint64            `json:"MinFeeRateNanosPerKB,omitempty"`
	TransactionFees      []TransactionFee  `json:"TransactionFees,omitempty"`
	ExtraData            map[string]string `json:"ExtraData,omitempty"`
}

// Defaults fill in request fields the caller left empty.
type Defaults struct {
	PublicKey string
}

// TxnSpec is everything the builder needs to produce an unsigned
// transaction, plus the node endpoint and body that construct the same
// transaction remotely.
type TxnSpec struct {
	Transactor         string
	Metadata           Variant
	ConsensusExtraData ExtraDataMap
	Options            TxOptions
	Endpoint           string
	Request            any
}

func (s *TxnSpec) Type() TxnType {
	if s.Metadata == nil {
		return 0
	}
	return TxnType(s.Metadata.VariantTag())
}

type ChainState struct {
	BlockHeight          uint64
	MinFeeRateNanosPerKB uint64
}

type ChainStateSource interface {
	ChainState(ctx context.Context) (ChainState, error)
}

// StaticChainState serves a fixed chain state.
type StaticChainState ChainState

func (s StaticChainState) ChainState(context.Context) (ChainState, error) {
	return ChainState(s), nil
}

var _ ChainStateSource = StaticChainState{}

type BuilderOptions struct {
	ChainState        ChainStateSource
	FeeRateNanosPerKB uint64
	PartialID         func() (uint64, error)
}

func (o *BuilderOptions) setDefaults() {
	if o.FeeRateNanosPerKB == 0 {
		o.FeeRateNanosPerKB = DefaultFeeRateNanosPerKB
	}

	if o.PartialID == nil {
		o.PartialID = randomPartialID
	}
}

func NewBuilder(options *BuilderOptions) (builder *Builder, err error) {
	if options == nil {
		options = &BuilderOptions{}
	}
	options.setDefaults()

	if options.ChainState == nil {
		err = errors.New("builder requires a chain state source")
		return
	}

	builder = &Builder{
		options: options,
		log:     Log(),
	}

	return
}

// Builder turns a TxnSpec into an unsigned balance model transaction.
type Builder struct {
	options *BuilderOptions
	log     *zerolog.Logger
}

func (b *Builder) Build(ctx context.Context, spec *TxnSpec) (txn *Transaction, err error) {
	if spec == nil || spec.Metadata == nil {
		err = missingField("Metadata")
		return
	}

	transactor, err := publicKeyField("TransactorPublicKeyBase58Check", spec.Transactor)
	if err != nil {
		return
	}

	outputs, err := feeOutputs(spec.Options.TransactionFees)
	if err != nil {
		return
	}

	extraData := make(ExtraDataMap)
	if err = extraData.Merge(spec.ConsensusExtraData); err != nil {
		return
	}
	if err = extraData.Merge(ExtraDataFromStrings(spec.Options.ExtraData)); err != nil {
		return
	}
	if len(extraData) == 0 {
		extraData = nil
	}

	state, err := b.options.ChainState.ChainState(ctx)
	if err != nil {
		err = errors.Wrap(err, "unable to read chain state")
		return
	}

	partialID, err := b.options.PartialID()
	if err != nil {
		err = errors.Wrap(err, "unable to generate nonce")
		return
	}

	txn = &Transaction{
		Inputs:    []Input{},
		Outputs:   outputs,
		Metadata:  spec.Metadata,
		PublicKey: transactor,
		ExtraData: extraData,
		Signature: []byte{},
		Version:   TransactionVersion,
		Nonce: &Nonce{
			ExpirationBlockHeight: state.BlockHeight + NonceExpiryBlocks,
			PartialID:             partialID,
		},
	}

	rate := b.feeRate(spec.Options.MinFeeRateNanosPerKB, state.MinFeeRateNanosPerKB)
	if err = settleFee(txn, rate); err != nil {
		txn = nil
		return
	}

	b.log.Debug().Msgf("built %s transaction (fee: %d nanos, rate: %d nanos/kb)", spec.Type(), txn.FeeNanos, rate)

	return
}

func (b *Builder) feeRate(requested, networkMin uint64) (rate uint64) {
	rate = requested
	if rate == 0 {
		rate = b.options.FeeRateNanosPerKB
	}
	if rate < networkMin {
		rate = networkMin
	}
	return
}

// settleFee searches for a fee that covers the signed size of txn at the
// given rate. Raising the fee can lengthen its varint, so the size is
// recomputed until the fee stops moving.
func settleFee(txn *Transaction, rateNanosPerKB uint64) (err error) {
	txn.FeeNanos = 0
	for i := 0; i < maxFeeIterations; i++ {
		var raw []byte
		raw, err = txn.ToBytes()
		if err != nil {
			return
		}
		required := RequiredFee(len(raw), rateNanosPerKB)
		if required <= txn.FeeNanos {
			return
		}
		txn.FeeNanos = required
	}
	return errors.Errorf("fee did not settle after %d iterations", maxFeeIterations)
}

// RequiredFee is the fee for an unsigned transaction of size bytes once
// its signature is attached, rounded up.
func RequiredFee(size int, rateNanosPerKB uint64) uint64 {
	signed := uint64(size + SignatureReserveBytes)
	return (signed*rateNanosPerKB + 999) / 1000
}

func feeOutputs(fees []TransactionFee) (outputs []Output, err error) {
	outputs = make([]Output, 0, len(fees))
	for i, fee := range fees {
		var key []byte
		key, err = publicKeyField("TransactionFees.PublicKeyBase58Check", fee.PublicKeyBase58Check)
		if err != nil {
			err = errors.Wrapf(err, "fee %d", i)
			return
		}
		outputs = append(outputs, Output{PublicKey: key, AmountNanos: fee.AmountNanos})
	}
	return
}

func randomPartialID() (id uint64, err error) {
	buf := make([]byte, 8)
	if _, err = rand.Read(buf); err != nil {
		err = errors.WithStack(err)
		return
	}
	id = binary.LittleEndian.Uint64(buf)
	return
}

// transactorOrDefault picks the explicit transactor, falling back to the
// session key.
func transactorOrDefault(name, explicit string, defaults Defaults) (key string, err error) {
	key = explicit
	if key == "" {
		key = defaults.PublicKey
	}
	if key == "" {
		err = missingField(name)
	}
	return
}
