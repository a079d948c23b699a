package deso

import (
	"strings"

	"github.com/pkg/errors"
)

var daoCoinOperationNames = map[string]uint8{
	"mint":                               DAOCoinOperationMint,
	"burn":                               DAOCoinOperationBurn,
	"disable_minting":                    DAOCoinOperationDisableMinting,
	"update_transfer_restriction_status": DAOCoinOperationUpdateTransferRestriction,
}

type DAOCoinRequest struct {
	UpdaterPublicKeyBase58Check string `json:"UpdaterPublicKeyBase58Check"`
	ProfilePublicKeyBase58Check string `json:"ProfilePublicKeyBase58CheckOrUsername"`
	OperationType               string `json:"OperationType"`
	CoinsToMintNanos            string `json:"CoinsToMintNanos,omitempty"`
	CoinsToBurnNanos            string `json:"CoinsToBurnNanos,omitempty"`
	TransferRestrictionStatus   string `json:"TransferRestrictionStatus,omitempty"`
	TxOptions
}

// ConstructDAOCoin covers mint, burn, disable minting and transfer
// restriction updates. Amounts are 0x hex or decimal base units.
func ConstructDAOCoin(req *DAOCoinRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.UpdaterPublicKeyBase58Check, err = transactorOrDefault("UpdaterPublicKeyBase58Check", r.UpdaterPublicKeyBase58Check, defaults); err != nil {
		return
	}
	if r.ProfilePublicKeyBase58Check == "" {
		r.ProfilePublicKeyBase58Check = r.UpdaterPublicKeyBase58Check
	}
	profile, err := publicKeyField("ProfilePublicKeyBase58Check", r.ProfilePublicKeyBase58Check)
	if err != nil {
		return
	}
	if r.OperationType == "" {
		err = missingField("OperationType")
		return
	}
	op, ok := daoCoinOperationNames[strings.ToLower(r.OperationType)]
	if !ok {
		err = invalidField("OperationType", "unknown operation %q", r.OperationType)
		return
	}

	metadata := &DAOCoinMetadata{
		ProfilePublicKey: profile,
		OperationType:    op,
		CoinsToMintNanos: []byte{},
		CoinsToBurnNanos: []byte{},
	}
	switch op {
	case DAOCoinOperationMint:
		metadata.CoinsToMintNanos, err = ParseUint256("CoinsToMintNanos", r.CoinsToMintNanos)
	case DAOCoinOperationBurn:
		metadata.CoinsToBurnNanos, err = ParseUint256("CoinsToBurnNanos", r.CoinsToBurnNanos)
	case DAOCoinOperationUpdateTransferRestriction:
		if r.TransferRestrictionStatus == "" {
			err = missingField("TransferRestrictionStatus")
			break
		}
		metadata.TransferRestrictionStatus, err = parseTransferRestriction(r.TransferRestrictionStatus)
	}
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.UpdaterPublicKeyBase58Check,
		Metadata:   metadata,
		Options:    r.TxOptions,
		Endpoint:   "dao-coin",
		Request:    &r,
	}
	return
}

type TransferDAOCoinRequest struct {
	SenderPublicKeyBase58Check   string `json:"SenderPublicKeyBase58Check"`
	ProfilePublicKeyBase58Check  string `json:"ProfilePublicKeyBase58CheckOrUsername"`
	ReceiverPublicKeyBase58Check string `json:"ReceiverPublicKeyBase58CheckOrUsername"`
	DAOCoinToTransferNanos       string `json:"DAOCoinToTransferNanos"`
	TxOptions
}

func ConstructTransferDAOCoin(req *TransferDAOCoinRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.SenderPublicKeyBase58Check, err = transactorOrDefault("SenderPublicKeyBase58Check", r.SenderPublicKeyBase58Check, defaults); err != nil {
		return
	}
	profile, err := publicKeyField("ProfilePublicKeyBase58Check", r.ProfilePublicKeyBase58Check)
	if err != nil {
		return
	}
	receiver, err := publicKeyField("ReceiverPublicKeyBase58Check", r.ReceiverPublicKeyBase58Check)
	if err != nil {
		return
	}
	amount, err := ParseUint256("DAOCoinToTransferNanos", r.DAOCoinToTransferNanos)
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.SenderPublicKeyBase58Check,
		Metadata: &DAOCoinTransferMetadata{
			ProfilePublicKey:       profile,
			DAOCoinToTransferNanos: amount,
			ReceiverPublicKey:      receiver,
		},
		Options:  r.TxOptions,
		Endpoint: "transfer-dao-coin",
		Request:  &r,
	}
	return
}

var limitOrderOperationNames = map[string]uint64{
	"ASK": LimitOrderOperationAsk,
	"BID": LimitOrderOperationBid,
}

var fillTypeNames = map[string]uint64{
	"GOOD_TILL_CANCELLED": FillTypeGoodTillCancelled,
	"IMMEDIATE_OR_CANCEL": FillTypeImmediateOrCancel,
	"FILL_OR_KILL":        FillTypeFillOrKill,
}

// DAOCoinLimitOrderRequest leaves a creator key empty to trade against the
// native coin. The exchange rate is already scaled by the node's fixed
// point factor; no floating point is accepted.
type DAOCoinLimitOrderRequest struct {
	TransactorPublicKeyBase58Check            string `json:"TransactorPublicKeyBase58Check"`
	BuyingDAOCoinCreatorPublicKeyBase58Check  string `json:"BuyingDAOCoinCreatorPublicKeyBase58Check"`
	SellingDAOCoinCreatorPublicKeyBase58Check string `json:"SellingDAOCoinCreatorPublicKeyBase58Check"`
	ScaledExchangeRateCoinsToSellPerCoinToBuy string `json:"ScaledExchangeRateCoinsToSellPerCoinToBuy"`
	QuantityToFillInBaseUnits                 string `json:"QuantityToFillInBaseUnits"`
	OperationType                             string `json:"OperationType"`
	FillType                                  string `json:"FillType,omitempty"`
	TxOptions
}

func ConstructDAOCoinLimitOrder(req *DAOCoinLimitOrderRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.TransactorPublicKeyBase58Check, err = transactorOrDefault("TransactorPublicKeyBase58Check", r.TransactorPublicKeyBase58Check, defaults); err != nil {
		return
	}
	if r.BuyingDAOCoinCreatorPublicKeyBase58Check == "" && r.SellingDAOCoinCreatorPublicKeyBase58Check == "" {
		err = errors.Wrap(ErrInvalidFieldEncoding, "an order cannot buy and sell the native coin")
		return
	}
	buying, err := publicKeyOrZero("BuyingDAOCoinCreatorPublicKeyBase58Check", r.BuyingDAOCoinCreatorPublicKeyBase58Check)
	if err != nil {
		return
	}
	selling, err := publicKeyOrZero("SellingDAOCoinCreatorPublicKeyBase58Check", r.SellingDAOCoinCreatorPublicKeyBase58Check)
	if err != nil {
		return
	}
	rate, err := ParseUint256("ScaledExchangeRateCoinsToSellPerCoinToBuy", r.ScaledExchangeRateCoinsToSellPerCoinToBuy)
	if err != nil {
		return
	}
	quantity, err := ParseUint256("QuantityToFillInBaseUnits", r.QuantityToFillInBaseUnits)
	if err != nil {
		return
	}
	if r.OperationType == "" {
		err = missingField("OperationType")
		return
	}
	op, ok := limitOrderOperationNames[strings.ToUpper(r.OperationType)]
	if !ok {
		err = invalidField("OperationType", "unknown operation %q", r.OperationType)
		return
	}
	if r.FillType == "" {
		r.FillType = "GOOD_TILL_CANCELLED"
	}
	fill, ok := fillTypeNames[strings.ToUpper(r.FillType)]
	if !ok {
		err = invalidField("FillType", "unknown fill type %q", r.FillType)
		return
	}

	spec = &TxnSpec{
		Transactor: r.TransactorPublicKeyBase58Check,
		Metadata: &DAOCoinLimitOrderMetadata{
			BuyingDAOCoinCreatorPublicKey:             buying,
			SellingDAOCoinCreatorPublicKey:            selling,
			ScaledExchangeRateCoinsToSellPerCoinToBuy: rate,
			QuantityToFillInBaseUnits:                 quantity,
			OperationType:                             op,
			FillType:                                  fill,
			CancelOrderID:                             []byte{},
		},
		Options:  r.TxOptions,
		Endpoint: "create-dao-coin-limit-order",
		Request:  &r,
	}
	return
}

type CancelDAOCoinLimitOrderRequest struct {
	TransactorPublicKeyBase58Check string `json:"TransactorPublicKeyBase58Check"`
	CancelOrderID                  string `json:"CancelOrderID"`
	TxOptions
}

func ConstructCancelDAOCoinLimitOrder(req *CancelDAOCoinLimitOrderRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.TransactorPublicKeyBase58Check, err = transactorOrDefault("TransactorPublicKeyBase58Check", r.TransactorPublicKeyBase58Check, defaults); err != nil {
		return
	}
	orderID, err := hashField("CancelOrderID", r.CancelOrderID)
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.TransactorPublicKeyBase58Check,
		Metadata: &DAOCoinLimitOrderMetadata{
			BuyingDAOCoinCreatorPublicKey:             []byte{},
			SellingDAOCoinCreatorPublicKey:            []byte{},
			ScaledExchangeRateCoinsToSellPerCoinToBuy: []byte{},
			QuantityToFillInBaseUnits:                 []byte{},
			CancelOrderID:                             orderID,
		},
		Options:  r.TxOptions,
		Endpoint: "cancel-dao-coin-limit-order",
		Request:  &r,
	}
	return
}
