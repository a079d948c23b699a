package deso

import "strings"

type CreateNFTRequest struct {
	UpdaterPublicKeyBase58Check    string            `json:"UpdaterPublicKeyBase58Check"`
	NFTPostHashHex                 string            `json:"NFTPostHashHex"`
	NumCopies                      uint64            `json:"NumCopies"`
	NFTRoyaltyToCreatorBasisPoints uint64            `json:"NFTRoyaltyToCreatorBasisPoints"`
	NFTRoyaltyToCoinBasisPoints    uint64            `json:"NFTRoyaltyToCoinBasisPoints"`
	HasUnlockable                  bool              `json:"HasUnlockable"`
	IsForSale                      bool              `json:"IsForSale"`
	MinBidAmountNanos              uint64            `json:"MinBidAmountNanos"`
	IsBuyNow                       bool              `json:"IsBuyNow,omitempty"`
	BuyNowPriceNanos               uint64            `json:"BuyNowPriceNanos,omitempty"`
	AdditionalDESORoyaltiesMap     map[string]uint64 `json:"AdditionalDESORoyaltiesMap,omitempty"`
	AdditionalCoinRoyaltiesMap     map[string]uint64 `json:"AdditionalCoinRoyaltiesMap,omitempty"`
	TxOptions
}

func ConstructCreateNFT(req *CreateNFTRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.UpdaterPublicKeyBase58Check, err = transactorOrDefault("UpdaterPublicKeyBase58Check", r.UpdaterPublicKeyBase58Check, defaults); err != nil {
		return
	}
	hash, err := hashField("NFTPostHashHex", r.NFTPostHashHex)
	if err != nil {
		return
	}
	if r.NumCopies == 0 {
		err = missingField("NumCopies")
		return
	}

	consensus := make(ExtraDataMap)
	if r.IsBuyNow {
		consensus[ExtraDataBuyNowPrice] = EncodeUvarint(r.BuyNowPriceNanos)
	}
	if len(r.AdditionalDESORoyaltiesMap) > 0 {
		if consensus[ExtraDataDESORoyalties], err = RoyaltyMap(r.AdditionalDESORoyaltiesMap).Encode(); err != nil {
			return
		}
	}
	if len(r.AdditionalCoinRoyaltiesMap) > 0 {
		if consensus[ExtraDataCoinRoyalties], err = RoyaltyMap(r.AdditionalCoinRoyaltiesMap).Encode(); err != nil {
			return
		}
	}

	spec = &TxnSpec{
		Transactor: r.UpdaterPublicKeyBase58Check,
		Metadata: &CreateNFTMetadata{
			NFTPostHash:                    hash,
			NumCopies:                      r.NumCopies,
			HasUnlockable:                  r.HasUnlockable,
			IsForSale:                      r.IsForSale,
			MinBidAmountNanos:              r.MinBidAmountNanos,
			NFTRoyaltyToCreatorBasisPoints: r.NFTRoyaltyToCreatorBasisPoints,
			NFTRoyaltyToCoinBasisPoints:    r.NFTRoyaltyToCoinBasisPoints,
		},
		ConsensusExtraData: consensus,
		Options:            r.TxOptions,
		Endpoint:           "create-nft",
		Request:            &r,
	}
	return
}

type UpdateNFTRequest struct {
	UpdaterPublicKeyBase58Check string `json:"UpdaterPublicKeyBase58Check"`
	NFTPostHashHex              string `json:"NFTPostHashHex"`
	SerialNumber                uint64 `json:"SerialNumber"`
	IsForSale                   bool   `json:"IsForSale"`
	MinBidAmountNanos           uint64 `json:"MinBidAmountNanos"`
	IsBuyNow                    bool   `json:"IsBuyNow,omitempty"`
	BuyNowPriceNanos            uint64 `json:"BuyNowPriceNanos,omitempty"`
	TxOptions
}

func ConstructUpdateNFT(req *UpdateNFTRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.UpdaterPublicKeyBase58Check, err = transactorOrDefault("UpdaterPublicKeyBase58Check", r.UpdaterPublicKeyBase58Check, defaults); err != nil {
		return
	}
	hash, err := hashField("NFTPostHashHex", r.NFTPostHashHex)
	if err != nil {
		return
	}
	if r.SerialNumber == 0 {
		err = missingField("SerialNumber")
		return
	}

	consensus := make(ExtraDataMap)
	if r.IsBuyNow {
		consensus[ExtraDataBuyNowPrice] = EncodeUvarint(r.BuyNowPriceNanos)
	}

	spec = &TxnSpec{
		Transactor: r.UpdaterPublicKeyBase58Check,
		Metadata: &UpdateNFTMetadata{
			NFTPostHash:       hash,
			SerialNumber:      r.SerialNumber,
			IsForSale:         r.IsForSale,
			MinBidAmountNanos: r.MinBidAmountNanos,
		},
		ConsensusExtraData: consensus,
		Options:            r.TxOptions,
		Endpoint:           "update-nft",
		Request:            &r,
	}
	return
}

type CreateNFTBidRequest struct {
	UpdaterPublicKeyBase58Check string `json:"UpdaterPublicKeyBase58Check"`
	NFTPostHashHex              string `json:"NFTPostHashHex"`
	SerialNumber                uint64 `json:"SerialNumber"`
	BidAmountNanos              uint64 `json:"BidAmountNanos"`
	TxOptions
}

func ConstructNFTBid(req *CreateNFTBidRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.UpdaterPublicKeyBase58Check, err = transactorOrDefault("UpdaterPublicKeyBase58Check", r.UpdaterPublicKeyBase58Check, defaults); err != nil {
		return
	}
	hash, err := hashField("NFTPostHashHex", r.NFTPostHashHex)
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.UpdaterPublicKeyBase58Check,
		Metadata: &NFTBidMetadata{
			BidAmountNanos: r.BidAmountNanos,
			NFTPostHash:    hash,
			SerialNumber:   r.SerialNumber,
		},
		Options:  r.TxOptions,
		Endpoint: "create-nft-bid",
		Request:  &r,
	}
	return
}

type AcceptNFTBidRequest struct {
	UpdaterPublicKeyBase58Check string `json:"UpdaterPublicKeyBase58Check"`
	NFTPostHashHex              string `json:"NFTPostHashHex"`
	SerialNumber                uint64 `json:"SerialNumber"`
	BidderPublicKeyBase58Check  string `json:"BidderPublicKeyBase58Check"`
	BidAmountNanos              uint64 `json:"BidAmountNanos"`
	EncryptedUnlockableText     string `json:"EncryptedUnlockableText,omitempty"`
	TxOptions
}

func ConstructAcceptNFTBid(req *AcceptNFTBidRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.UpdaterPublicKeyBase58Check, err = transactorOrDefault("UpdaterPublicKeyBase58Check", r.UpdaterPublicKeyBase58Check, defaults); err != nil {
		return
	}
	hash, err := hashField("NFTPostHashHex", r.NFTPostHashHex)
	if err != nil {
		return
	}
	if r.SerialNumber == 0 {
		err = missingField("SerialNumber")
		return
	}
	bidder, err := publicKeyField("BidderPublicKeyBase58Check", r.BidderPublicKeyBase58Check)
	if err != nil {
		return
	}
	unlockable, err := optionalHex("EncryptedUnlockableText", r.EncryptedUnlockableText)
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.UpdaterPublicKeyBase58Check,
		Metadata: &AcceptNFTBidMetadata{
			NFTPostHash:             hash,
			SerialNumber:            r.SerialNumber,
			BidderPKID:              bidder,
			BidAmountNanos:          r.BidAmountNanos,
			EncryptedUnlockableText: unlockable,
			BidderInputs:            []Input{},
		},
		Options:  r.TxOptions,
		Endpoint: "accept-nft-bid",
		Request:  &r,
	}
	return
}

type TransferNFTRequest struct {
	SenderPublicKeyBase58Check   string `json:"SenderPublicKeyBase58Check"`
	ReceiverPublicKeyBase58Check string `json:"ReceiverPublicKeyBase58Check"`
	NFTPostHashHex               string `json:"NFTPostHashHex"`
	SerialNumber                 uint64 `json:"SerialNumber"`
	EncryptedUnlockableText      string `json:"EncryptedUnlockableText,omitempty"`
	TxOptions
}

func ConstructTransferNFT(req *TransferNFTRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.SenderPublicKeyBase58Check, err = transactorOrDefault("SenderPublicKeyBase58Check", r.SenderPublicKeyBase58Check, defaults); err != nil {
		return
	}
	receiver, err := publicKeyField("ReceiverPublicKeyBase58Check", r.ReceiverPublicKeyBase58Check)
	if err != nil {
		return
	}
	hash, err := hashField("NFTPostHashHex", r.NFTPostHashHex)
	if err != nil {
		return
	}
	if r.SerialNumber == 0 {
		err = missingField("SerialNumber")
		return
	}
	unlockable, err := optionalHex("EncryptedUnlockableText", r.EncryptedUnlockableText)
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.SenderPublicKeyBase58Check,
		Metadata: &NFTTransferMetadata{
			NFTPostHash:             hash,
			SerialNumber:            r.SerialNumber,
			ReceiverPublicKey:       receiver,
			EncryptedUnlockableText: unlockable,
		},
		Options:  r.TxOptions,
		Endpoint: "transfer-nft",
		Request:  &r,
	}
	return
}

type AcceptNFTTransferRequest struct {
	UpdaterPublicKeyBase58Check string `json:"UpdaterPublicKeyBase58Check"`
	NFTPostHashHex              string `json:"NFTPostHashHex"`
	SerialNumber                uint64 `json:"SerialNumber"`
	TxOptions
}

func ConstructAcceptNFTTransfer(req *AcceptNFTTransferRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	hash, serial, err := nftTarget(&r.UpdaterPublicKeyBase58Check, r.NFTPostHashHex, r.SerialNumber, defaults)
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.UpdaterPublicKeyBase58Check,
		Metadata:   &AcceptNFTTransferMetadata{NFTPostHash: hash, SerialNumber: serial},
		Options:    r.TxOptions,
		Endpoint:   "accept-nft-transfer",
		Request:    &r,
	}
	return
}

type BurnNFTRequest struct {
	UpdaterPublicKeyBase58Check string `json:"UpdaterPublicKeyBase58Check"`
	NFTPostHashHex              string `json:"NFTPostHashHex"`
	SerialNumber                uint64 `json:"SerialNumber"`
	TxOptions
}

func ConstructBurnNFT(req *BurnNFTRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	hash, serial, err := nftTarget(&r.UpdaterPublicKeyBase58Check, r.NFTPostHashHex, r.SerialNumber, defaults)
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.UpdaterPublicKeyBase58Check,
		Metadata:   &BurnNFTMetadata{NFTPostHash: hash, SerialNumber: serial},
		Options:    r.TxOptions,
		Endpoint:   "burn-nft",
		Request:    &r,
	}
	return
}

func nftTarget(updater *string, hashHex string, serial uint64, defaults Defaults) (hash []byte, serialNumber uint64, err error) {
	if *updater, err = transactorOrDefault("UpdaterPublicKeyBase58Check", *updater, defaults); err != nil {
		return
	}
	if hash, err = hashField("NFTPostHashHex", hashHex); err != nil {
		return
	}
	if serial == 0 {
		err = missingField("SerialNumber")
		return
	}
	serialNumber = serial
	return
}

// optionalHex decodes a hex field that may be empty.
func optionalHex(name, value string) ([]byte, error) {
	if strings.TrimPrefix(value, "0x") == "" {
		return []byte{}, nil
	}
	return hexField(name, value)
}
