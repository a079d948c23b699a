package deso

const (
	NewMessageTypeDM        uint8 = 0
	NewMessageTypeGroupChat uint8 = 1
)

const (
	NewMessageOperationCreate uint8 = 0
	NewMessageOperationUpdate uint8 = 1
)

// NewMessageMetadata carries an already encrypted message between two
// access groups.
type NewMessageMetadata struct {
	SenderAccessGroupOwnerPublicKey    []byte
	SenderAccessGroupKeyName           []byte
	SenderAccessGroupPublicKey         []byte
	RecipientAccessGroupOwnerPublicKey []byte
	RecipientAccessGroupKeyName        []byte
	RecipientAccessGroupPublicKey      []byte
	EncryptedText                      []byte
	TimestampNanos                     uint64
	NewMessageType                     uint8
	NewMessageOperation                uint8
}

var newMessageSchema = NewSchema("NewMessageMetadata",
	Bind("SenderAccessGroupOwnerPublicKey", VarBuffer, func(m *NewMessageMetadata) *[]byte { return &m.SenderAccessGroupOwnerPublicKey }),
	Bind("SenderAccessGroupKeyName", VarBuffer, func(m *NewMessageMetadata) *[]byte { return &m.SenderAccessGroupKeyName }),
	Bind("SenderAccessGroupPublicKey", VarBuffer, func(m *NewMessageMetadata) *[]byte { return &m.SenderAccessGroupPublicKey }),
	Bind("RecipientAccessGroupOwnerPublicKey", VarBuffer, func(m *NewMessageMetadata) *[]byte { return &m.RecipientAccessGroupOwnerPublicKey }),
	Bind("RecipientAccessGroupKeyName", VarBuffer, func(m *NewMessageMetadata) *[]byte { return &m.RecipientAccessGroupKeyName }),
	Bind("RecipientAccessGroupPublicKey", VarBuffer, func(m *NewMessageMetadata) *[]byte { return &m.RecipientAccessGroupPublicKey }),
	Bind("EncryptedText", VarBuffer, func(m *NewMessageMetadata) *[]byte { return &m.EncryptedText }),
	Bind("TimestampNanos", Uvarint64, func(m *NewMessageMetadata) *uint64 { return &m.TimestampNanos }),
	Bind("NewMessageType", Uint8, func(m *NewMessageMetadata) *uint8 { return &m.NewMessageType }),
	Bind("NewMessageOperation", Uint8, func(m *NewMessageMetadata) *uint8 { return &m.NewMessageOperation }),
)

func (m *NewMessageMetadata) ToBytes() ([]byte, error) {
	return newMessageSchema.Encode(m)
}

func (m *NewMessageMetadata) FromBytes(data []byte) ([]byte, error) {
	return newMessageSchema.Decode(m, data)
}

func (m *NewMessageMetadata) VariantTag() uint64 {
	return uint64(TxnTypeNewMessage)
}

