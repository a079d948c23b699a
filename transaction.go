package deso

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type TxnType uint64

const (
	TxnTypeCreateNFT              TxnType = 15
	TxnTypeUpdateNFT              TxnType = 16
	TxnTypeAcceptNFTBid           TxnType = 17
	TxnTypeNFTBid                 TxnType = 18
	TxnTypeNFTTransfer            TxnType = 19
	TxnTypeAcceptNFTTransfer      TxnType = 20
	TxnTypeBurnNFT                TxnType = 21
	TxnTypeAuthorizeDerivedKey    TxnType = 22
	TxnTypeDAOCoin                TxnType = 24
	TxnTypeDAOCoinTransfer        TxnType = 25
	TxnTypeDAOCoinLimitOrder      TxnType = 26
	TxnTypeCreateUserAssociation  TxnType = 27
	TxnTypeDeleteUserAssociation  TxnType = 28
	TxnTypeCreatePostAssociation  TxnType = 29
	TxnTypeDeletePostAssociation  TxnType = 30
	TxnTypeAccessGroup            TxnType = 31
	TxnTypeAccessGroupMembers     TxnType = 32
	TxnTypeNewMessage             TxnType = 33
)

var txnTypeNames = map[TxnType]string{
	TxnTypeCreateNFT:             "CREATE_NFT",
	TxnTypeUpdateNFT:             "UPDATE_NFT",
	TxnTypeAcceptNFTBid:          "ACCEPT_NFT_BID",
	TxnTypeNFTBid:                "NFT_BID",
	TxnTypeNFTTransfer:           "NFT_TRANSFER",
	TxnTypeAcceptNFTTransfer:     "ACCEPT_NFT_TRANSFER",
	TxnTypeBurnNFT:               "BURN_NFT",
	TxnTypeAuthorizeDerivedKey:   "AUTHORIZE_DERIVED_KEY",
	TxnTypeDAOCoin:               "DAO_COIN",
	TxnTypeDAOCoinTransfer:       "DAO_COIN_TRANSFER",
	TxnTypeDAOCoinLimitOrder:     "DAO_COIN_LIMIT_ORDER",
	TxnTypeCreateUserAssociation: "CREATE_USER_ASSOCIATION",
	TxnTypeDeleteUserAssociation: "DELETE_USER_ASSOCIATION",
	TxnTypeCreatePostAssociation: "CREATE_POST_ASSOCIATION",
	TxnTypeDeletePostAssociation: "DELETE_POST_ASSOCIATION",
	TxnTypeAccessGroup:           "ACCESS_GROUP",
	TxnTypeAccessGroupMembers:    "ACCESS_GROUP_MEMBERS",
	TxnTypeNewMessage:            "NEW_MESSAGE",
}

func (t TxnType) String() string {
	if name, ok := txnTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TxnType(%d)", uint64(t))
}

// ParseTxnType accepts a type name such as NFT_BID (any case, dashes
// allowed) or its number.
func ParseTxnType(value string) (t TxnType, err error) {
	name := strings.ToUpper(strings.ReplaceAll(value, "-", "_"))
	for candidate, candidateName := range txnTypeNames {
		if candidateName == name {
			return candidate, nil
		}
	}
	if n, parseErr := strconv.ParseUint(value, 10, 64); parseErr == nil {
		if _, ok := txnTypeNames[TxnType(n)]; ok {
			return TxnType(n), nil
		}
	}
	err = errors.Wrapf(ErrUnknownVariant, "transaction type '%s'", value)
	return
}

// metadataVariants maps a transaction type to an empty metadata record.
var metadataVariants = map[uint64]func() Variant{
	uint64(TxnTypeCreateNFT):             func() Variant { return &CreateNFTMetadata{} },
	uint64(TxnTypeUpdateNFT):             func() Variant { return &UpdateNFTMetadata{} },
	uint64(TxnTypeAcceptNFTBid):          func() Variant { return &AcceptNFTBidMetadata{} },
	uint64(TxnTypeNFTBid):                func() Variant { return &NFTBidMetadata{} },
	uint64(TxnTypeNFTTransfer):           func() Variant { return &NFTTransferMetadata{} },
	uint64(TxnTypeAcceptNFTTransfer):     func() Variant { return &AcceptNFTTransferMetadata{} },
	uint64(TxnTypeBurnNFT):               func() Variant { return &BurnNFTMetadata{} },
	uint64(TxnTypeAuthorizeDerivedKey):   func() Variant { return &AuthorizeDerivedKeyMetadata{} },
	uint64(TxnTypeDAOCoin):               func() Variant { return &DAOCoinMetadata{} },
	uint64(TxnTypeDAOCoinTransfer):       func() Variant { return &DAOCoinTransferMetadata{} },
	uint64(TxnTypeDAOCoinLimitOrder):     func() Variant { return &DAOCoinLimitOrderMetadata{} },
	uint64(TxnTypeCreateUserAssociation): func() Variant { return &CreateUserAssociationMetadata{} },
	uint64(TxnTypeDeleteUserAssociation): func() Variant { return &DeleteUserAssociationMetadata{} },
	uint64(TxnTypeCreatePostAssociation): func() Variant { return &CreatePostAssociationMetadata{} },
	uint64(TxnTypeDeletePostAssociation): func() Variant { return &DeletePostAssociationMetadata{} },
	uint64(TxnTypeAccessGroup):           func() Variant { return &AccessGroupMetadata{} },
	uint64(TxnTypeAccessGroupMembers):    func() Variant { return &AccessGroupMembersMetadata{} },
	uint64(TxnTypeNewMessage):            func() Variant { return &NewMessageMetadata{} },
}

// NewMetadata returns an empty metadata record for t.
func NewMetadata(t TxnType) (m Variant, err error) {
	newVariant, ok := metadataVariants[uint64(t)]
	if !ok {
		err = errors.Wrapf(ErrUnknownVariant, "transaction type %d", uint64(t))
		return
	}
	return newVariant(), nil
}

// Input spends a previous transaction output. Balance model transactions
// carry none, but the field stays on the wire.
type Input struct {
	TxID  []byte
	Index uint64
}

var inputSchema = NewSchema("Input",
	Bind("TxID", FixedBuffer(HashLen), func(i *Input) *[]byte { return &i.TxID }),
	Bind("Index", Uvarint64, func(i *Input) *uint64 { return &i.Index }),
)

func (i *Input) ToBytes() ([]byte, error) {
	return inputSchema.Encode(i)
}

func (i *Input) FromBytes(data []byte) ([]byte, error) {
	return inputSchema.Decode(i, data)
}

type Output struct {
	PublicKey   []byte
	AmountNanos uint64
}

var outputSchema = NewSchema("Output",
	Bind("PublicKey", FixedBuffer(PublicKeyLen), func(o *Output) *[]byte { return &o.PublicKey }),
	Bind("AmountNanos", Uvarint64, func(o *Output) *uint64 { return &o.AmountNanos }),
)

func (o *Output) ToBytes() ([]byte, error) {
	return outputSchema.Encode(o)
}

func (o *Output) FromBytes(data []byte) ([]byte, error) {
	return outputSchema.Decode(o, data)
}

// Nonce makes otherwise identical balance model transactions distinct and
// bounds how long they stay valid.
type Nonce struct {
	ExpirationBlockHeight uint64
	PartialID             uint64
}

var nonceSchema = NewSchema("Nonce",
	Bind("ExpirationBlockHeight", Uvarint64, func(n *Nonce) *uint64 { return &n.ExpirationBlockHeight }),
	Bind("PartialID", Uvarint64, func(n *Nonce) *uint64 { return &n.PartialID }),
)

func (n *Nonce) ToBytes() ([]byte, error) {
	return nonceSchema.Encode(n)
}

func (n *Nonce) FromBytes(data []byte) ([]byte, error) {
	return nonceSchema.Decode(n, data)
}

const TransactionVersion = 1

type Transaction struct {
	Inputs    []Input
	Outputs   []Output
	Metadata  Variant
	PublicKey []byte
	ExtraData ExtraDataMap
	Signature []byte
	Version   uint64
	FeeNanos  uint64
	Nonce     *Nonce
}

var transactionSchema = NewSchema("Transaction",
	Bind("Inputs", ArrayOf[Input](), func(t *Transaction) *[]Input { return &t.Inputs }),
	Bind("Outputs", ArrayOf[Output](), func(t *Transaction) *[]Output { return &t.Outputs }),
	Bind("Metadata", Enum(metadataVariants), func(t *Transaction) *Variant { return &t.Metadata }),
	Bind("PublicKey", VarBuffer, func(t *Transaction) *[]byte { return &t.PublicKey }),
	Bind("ExtraData", RecordOf[ExtraDataMap](), func(t *Transaction) *ExtraDataMap { return &t.ExtraData }),
	Bind("Signature", VarBuffer, func(t *Transaction) *[]byte { return &t.Signature }),
	Bind("Version", Uvarint64, func(t *Transaction) *uint64 { return &t.Version }),
	Bind("FeeNanos", Uvarint64, func(t *Transaction) *uint64 { return &t.FeeNanos }),
	Bind("Nonce", Optional(RecordOf[Nonce]()), func(t *Transaction) **Nonce { return &t.Nonce }),
)

func (t *Transaction) ToBytes() ([]byte, error) {
	return transactionSchema.Encode(t)
}

func (t *Transaction) FromBytes(data []byte) ([]byte, error) {
	return transactionSchema.Decode(t, data)
}

func (t *Transaction) Type() TxnType {
	if t.Metadata == nil {
		return 0
	}
	return TxnType(t.Metadata.VariantTag())
}

func (t *Transaction) Hex() (encoded string, err error) {
	raw, err := t.ToBytes()
	if err != nil {
		return
	}
	return hex.EncodeToString(raw), nil
}

// DecodeTransaction decodes a whole transaction. Bytes after the envelope
// are an error.
func DecodeTransaction(data []byte) (txn *Transaction, err error) {
	txn = &Transaction{}
	if err = DecodeExact(txn, data); err != nil {
		txn = nil
	}
	return
}

func DecodeTransactionHex(encoded string) (txn *Transaction, err error) {
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		err = errors.Wrap(ErrInvalidFieldEncoding, err.Error())
		return
	}
	return DecodeTransaction(raw)
}
