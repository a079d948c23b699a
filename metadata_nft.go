package deso

type CreateNFTMetadata struct {
	NFTPostHash                    []byte
	NumCopies                      uint64
	HasUnlockable                  bool
	IsForSale                      bool
	MinBidAmountNanos              uint64
	NFTRoyaltyToCreatorBasisPoints uint64
	NFTRoyaltyToCoinBasisPoints    uint64
}

var createNFTSchema = NewSchema("CreateNFTMetadata",
	Bind("NFTPostHash", FixedBuffer(HashLen), func(m *CreateNFTMetadata) *[]byte { return &m.NFTPostHash }),
	Bind("NumCopies", Uvarint64, func(m *CreateNFTMetadata) *uint64 { return &m.NumCopies }),
	Bind("HasUnlockable", Bool, func(m *CreateNFTMetadata) *bool { return &m.HasUnlockable }),
	Bind("IsForSale", Bool, func(m *CreateNFTMetadata) *bool { return &m.IsForSale }),
	Bind("MinBidAmountNanos", Uvarint64, func(m *CreateNFTMetadata) *uint64 { return &m.MinBidAmountNanos }),
	Bind("NFTRoyaltyToCreatorBasisPoints", Uvarint64, func(m *CreateNFTMetadata) *uint64 { return &m.NFTRoyaltyToCreatorBasisPoints }),
	Bind("NFTRoyaltyToCoinBasisPoints", Uvarint64, func(m *CreateNFTMetadata) *uint64 { return &m.NFTRoyaltyToCoinBasisPoints }),
)

func (m *CreateNFTMetadata) ToBytes() ([]byte, error) {
	return createNFTSchema.Encode(m)
}

func (m *CreateNFTMetadata) FromBytes(data []byte) ([]byte, error) {
	return createNFTSchema.Decode(m, data)
}

func (m *CreateNFTMetadata) VariantTag() uint64 {
	return uint64(TxnTypeCreateNFT)
}

type UpdateNFTMetadata struct {
	NFTPostHash       []byte
	SerialNumber      uint64
	IsForSale         bool
	MinBidAmountNanos uint64
}

var updateNFTSchema = NewSchema("UpdateNFTMetadata",
	Bind("NFTPostHash", FixedBuffer(HashLen), func(m *UpdateNFTMetadata) *[]byte { return &m.NFTPostHash }),
	Bind("SerialNumber", Uvarint64, func(m *UpdateNFTMetadata) *uint64 { return &m.SerialNumber }),
	Bind("IsForSale", Bool, func(m *UpdateNFTMetadata) *bool { return &m.IsForSale }),
	Bind("MinBidAmountNanos", Uvarint64, func(m *UpdateNFTMetadata) *uint64 { return &m.MinBidAmountNanos }),
)

func (m *UpdateNFTMetadata) ToBytes() ([]byte, error) {
	return updateNFTSchema.Encode(m)
}

func (m *UpdateNFTMetadata) FromBytes(data []byte) ([]byte, error) {
	return updateNFTSchema.Decode(m, data)
}

func (m *UpdateNFTMetadata) VariantTag() uint64 {
	return uint64(TxnTypeUpdateNFT)
}

type AcceptNFTBidMetadata struct {
	NFTPostHash             []byte
	SerialNumber            uint64
	BidderPKID              []byte
	BidAmountNanos          uint64
	EncryptedUnlockableText []byte
	BidderInputs            []Input
}

var acceptNFTBidSchema = NewSchema("AcceptNFTBidMetadata",
	Bind("NFTPostHash", FixedBuffer(HashLen), func(m *AcceptNFTBidMetadata) *[]byte { return &m.NFTPostHash }),
	Bind("SerialNumber", Uvarint64, func(m *AcceptNFTBidMetadata) *uint64 { return &m.SerialNumber }),
	Bind("BidderPKID", VarBuffer, func(m *AcceptNFTBidMetadata) *[]byte { return &m.BidderPKID }),
	Bind("BidAmountNanos", Uvarint64, func(m *AcceptNFTBidMetadata) *uint64 { return &m.BidAmountNanos }),
	Bind("EncryptedUnlockableText", VarBuffer, func(m *AcceptNFTBidMetadata) *[]byte { return &m.EncryptedUnlockableText }),
	Bind("BidderInputs", ArrayOf[Input](), func(m *AcceptNFTBidMetadata) *[]Input { return &m.BidderInputs }),
)

func (m *AcceptNFTBidMetadata) ToBytes() ([]byte, error) {
	return acceptNFTBidSchema.Encode(m)
}

func (m *AcceptNFTBidMetadata) FromBytes(data []byte) ([]byte, error) {
	return acceptNFTBidSchema.Decode(m, data)
}

func (m *AcceptNFTBidMetadata) VariantTag() uint64 {
	return uint64(TxnTypeAcceptNFTBid)
}

// NFTBidMetadata leads with the bid amount, ahead of the post hash.
type NFTBidMetadata struct {
	BidAmountNanos uint64
	NFTPostHash    []byte
	SerialNumber   uint64
}

var nftBidSchema = NewSchema("NFTBidMetadata",
	Bind("BidAmountNanos", Uvarint64, func(m *NFTBidMetadata) *uint64 { return &m.BidAmountNanos }),
	Bind("NFTPostHash", FixedBuffer(HashLen), func(m *NFTBidMetadata) *[]byte { return &m.NFTPostHash }),
	Bind("SerialNumber", Uvarint64, func(m *NFTBidMetadata) *uint64 { return &m.SerialNumber }),
)

func (m *NFTBidMetadata) ToBytes() ([]byte, error) {
	return nftBidSchema.Encode(m)
}

func (m *NFTBidMetadata) FromBytes(data []byte) ([]byte, error) {
	return nftBidSchema.Decode(m, data)
}

func (m *NFTBidMetadata) VariantTag() uint64 {
	return uint64(TxnTypeNFTBid)
}

type NFTTransferMetadata struct {
	NFTPostHash             []byte
	SerialNumber            uint64
	ReceiverPublicKey       []byte
	EncryptedUnlockableText []byte
}

var nftTransferSchema = NewSchema("NFTTransferMetadata",
	Bind("NFTPostHash", FixedBuffer(HashLen), func(m *NFTTransferMetadata) *[]byte { return &m.NFTPostHash }),
	Bind("SerialNumber", Uvarint64, func(m *NFTTransferMetadata) *uint64 { return &m.SerialNumber }),
	Bind("ReceiverPublicKey", VarBuffer, func(m *NFTTransferMetadata) *[]byte { return &m.ReceiverPublicKey }),
	Bind("EncryptedUnlockableText", VarBuffer, func(m *NFTTransferMetadata) *[]byte { return &m.EncryptedUnlockableText }),
)

func (m *NFTTransferMetadata) ToBytes() ([]byte, error) {
	return nftTransferSchema.Encode(m)
}

func (m *NFTTransferMetadata) FromBytes(data []byte) ([]byte, error) {
	return nftTransferSchema.Decode(m, data)
}

func (m *NFTTransferMetadata) VariantTag() uint64 {
	return uint64(TxnTypeNFTTransfer)
}

type AcceptNFTTransferMetadata struct {
	NFTPostHash  []byte
	SerialNumber uint64
}

var acceptNFTTransferSchema = NewSchema("AcceptNFTTransferMetadata",
	Bind("NFTPostHash", FixedBuffer(HashLen), func(m *AcceptNFTTransferMetadata) *[]byte { return &m.NFTPostHash }),
	Bind("SerialNumber", Uvarint64, func(m *AcceptNFTTransferMetadata) *uint64 { return &m.SerialNumber }),
)

func (m *AcceptNFTTransferMetadata) ToBytes() ([]byte, error) {
	return acceptNFTTransferSchema.Encode(m)
}

func (m *AcceptNFTTransferMetadata) FromBytes(data []byte) ([]byte, error) {
	return acceptNFTTransferSchema.Decode(m, data)
}

func (m *AcceptNFTTransferMetadata) VariantTag() uint64 {
	return uint64(TxnTypeAcceptNFTTransfer)
}

type BurnNFTMetadata struct {
	NFTPostHash  []byte
	SerialNumber uint64
}

var burnNFTSchema = NewSchema("BurnNFTMetadata",
	Bind("NFTPostHash", FixedBuffer(HashLen), func(m *BurnNFTMetadata) *[]byte { return &m.NFTPostHash }),
	Bind("SerialNumber", Uvarint64, func(m *BurnNFTMetadata) *uint64 { return &m.SerialNumber }),
)

func (m *BurnNFTMetadata) ToBytes() ([]byte, error) {
	return burnNFTSchema.Encode(m)
}

func (m *BurnNFTMetadata) FromBytes(data []byte) ([]byte, error) {
	return burnNFTSchema.Decode(m, data)
}

func (m *BurnNFTMetadata) VariantTag() uint64 {
	return uint64(TxnTypeBurnNFT)
}

