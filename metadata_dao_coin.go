package deso

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

const (
	DAOCoinOperationMint                      uint8 = 0
	DAOCoinOperationBurn                      uint8 = 1
	DAOCoinOperationDisableMinting            uint8 = 2
	DAOCoinOperationUpdateTransferRestriction uint8 = 3
)

const (
	TransferRestrictionUnrestricted            uint8 = 0
	TransferRestrictionProfileOwnerOnly        uint8 = 1
	TransferRestrictionDAOMembersOnly          uint8 = 2
	TransferRestrictionPermanentlyUnrestricted uint8 = 3
)

var transferRestrictionNames = map[string]uint8{
	"unrestricted":             TransferRestrictionUnrestricted,
	"profile_owner_only":       TransferRestrictionProfileOwnerOnly,
	"dao_members_only":         TransferRestrictionDAOMembersOnly,
	"permanently_unrestricted": TransferRestrictionPermanentlyUnrestricted,
}

const (
	LimitOrderOperationAsk uint64 = 1
	LimitOrderOperationBid uint64 = 2
)

const (
	FillTypeGoodTillCancelled uint64 = 1
	FillTypeImmediateOrCancel uint64 = 2
	FillTypeFillOrKill        uint64 = 3
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ParseUint256 reads a 0x prefixed hex or plain decimal amount and returns
// its minimal big-endian bytes. Zero encodes as no bytes.
func ParseUint256(name, value string) (out []byte, err error) {
	if value == "" {
		err = missingField(name)
		return
	}
	n := new(big.Int)
	ok := false
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		_, ok = n.SetString(value[2:], 16)
	} else {
		_, ok = n.SetString(value, 10)
	}
	if !ok || n.Sign() < 0 {
		err = invalidField(name, "%q is not an unsigned integer", value)
		return
	}
	if n.Cmp(maxUint256) > 0 {
		err = invalidField(name, "%q does not fit in 256 bits", value)
		return
	}
	return n.Bytes(), nil
}

// FormatUint256 renders big-endian amount bytes as 0x hex.
func FormatUint256(value []byte) string {
	return "0x" + new(big.Int).SetBytes(value).Text(16)
}

type DAOCoinMetadata struct {
	ProfilePublicKey          []byte
	OperationType             uint8
	CoinsToMintNanos          []byte
	CoinsToBurnNanos          []byte
	TransferRestrictionStatus uint8
}

var daoCoinSchema = NewSchema("DAOCoinMetadata",
	Bind("ProfilePublicKey", VarBuffer, func(m *DAOCoinMetadata) *[]byte { return &m.ProfilePublicKey }),
	Bind("OperationType", Uint8, func(m *DAOCoinMetadata) *uint8 { return &m.OperationType }),
	Bind("CoinsToMintNanos", VarBuffer, func(m *DAOCoinMetadata) *[]byte { return &m.CoinsToMintNanos }),
	Bind("CoinsToBurnNanos", VarBuffer, func(m *DAOCoinMetadata) *[]byte { return &m.CoinsToBurnNanos }),
	Bind("TransferRestrictionStatus", Uint8, func(m *DAOCoinMetadata) *uint8 { return &m.TransferRestrictionStatus }),
)

func (m *DAOCoinMetadata) ToBytes() ([]byte, error) {
	return daoCoinSchema.Encode(m)
}

func (m *DAOCoinMetadata) FromBytes(data []byte) ([]byte, error) {
	return daoCoinSchema.Decode(m, data)
}

func (m *DAOCoinMetadata) VariantTag() uint64 {
	return uint64(TxnTypeDAOCoin)
}

type DAOCoinTransferMetadata struct {
	ProfilePublicKey       []byte
	DAOCoinToTransferNanos []byte
	ReceiverPublicKey      []byte
}

var daoCoinTransferSchema = NewSchema("DAOCoinTransferMetadata",
	Bind("ProfilePublicKey", VarBuffer, func(m *DAOCoinTransferMetadata) *[]byte { return &m.ProfilePublicKey }),
	Bind("DAOCoinToTransferNanos", VarBuffer, func(m *DAOCoinTransferMetadata) *[]byte { return &m.DAOCoinToTransferNanos }),
	Bind("ReceiverPublicKey", VarBuffer, func(m *DAOCoinTransferMetadata) *[]byte { return &m.ReceiverPublicKey }),
)

func (m *DAOCoinTransferMetadata) ToBytes() ([]byte, error) {
	return daoCoinTransferSchema.Encode(m)
}

func (m *DAOCoinTransferMetadata) FromBytes(data []byte) ([]byte, error) {
	return daoCoinTransferSchema.Decode(m, data)
}

func (m *DAOCoinTransferMetadata) VariantTag() uint64 {
	return uint64(TxnTypeDAOCoinTransfer)
}

// DAOCoinLimitOrderMetadata uses ZeroPublicKey for the native coin on
// either side of the order.
type DAOCoinLimitOrderMetadata struct {
	BuyingDAOCoinCreatorPublicKey             []byte
	SellingDAOCoinCreatorPublicKey            []byte
	ScaledExchangeRateCoinsToSellPerCoinToBuy []byte
	QuantityToFillInBaseUnits                 []byte
	OperationType                             uint64
	FillType                                  uint64
	CancelOrderID                             []byte
	FeeNanos                                  uint64
}

var daoCoinLimitOrderSchema = NewSchema("DAOCoinLimitOrderMetadata",
	Bind("BuyingDAOCoinCreatorPublicKey", VarBuffer, func(m *DAOCoinLimitOrderMetadata) *[]byte { return &m.BuyingDAOCoinCreatorPublicKey }),
	Bind("SellingDAOCoinCreatorPublicKey", VarBuffer, func(m *DAOCoinLimitOrderMetadata) *[]byte { return &m.SellingDAOCoinCreatorPublicKey }),
	Bind("ScaledExchangeRateCoinsToSellPerCoinToBuy", VarBuffer, func(m *DAOCoinLimitOrderMetadata) *[]byte { return &m.ScaledExchangeRateCoinsToSellPerCoinToBuy }),
	Bind("QuantityToFillInBaseUnits", VarBuffer, func(m *DAOCoinLimitOrderMetadata) *[]byte { return &m.QuantityToFillInBaseUnits }),
	Bind("OperationType", Uvarint64, func(m *DAOCoinLimitOrderMetadata) *uint64 { return &m.OperationType }),
	Bind("FillType", Uvarint64, func(m *DAOCoinLimitOrderMetadata) *uint64 { return &m.FillType }),
	Bind("CancelOrderID", VarBuffer, func(m *DAOCoinLimitOrderMetadata) *[]byte { return &m.CancelOrderID }),
	Bind("FeeNanos", Uvarint64, func(m *DAOCoinLimitOrderMetadata) *uint64 { return &m.FeeNanos }),
)

func (m *DAOCoinLimitOrderMetadata) ToBytes() ([]byte, error) {
	return daoCoinLimitOrderSchema.Encode(m)
}

func (m *DAOCoinLimitOrderMetadata) FromBytes(data []byte) ([]byte, error) {
	return daoCoinLimitOrderSchema.Decode(m, data)
}

func (m *DAOCoinLimitOrderMetadata) VariantTag() uint64 {
	return uint64(TxnTypeDAOCoinLimitOrder)
}

func parseTransferRestriction(status string) (value uint8, err error) {
	value, ok := transferRestrictionNames[strings.ToLower(status)]
	if !ok {
		err = errors.Wrapf(ErrInvalidFieldEncoding, "TransferRestrictionStatus: unknown status %q", status)
	}
	return
}
