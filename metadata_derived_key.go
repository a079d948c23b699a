package deso

const (
	AuthorizeDerivedKeyOperationNotValid uint8 = 0
	AuthorizeDerivedKeyOperationValid    uint8 = 1
)

type AuthorizeDerivedKeyMetadata struct {
	DerivedPublicKey []byte
	ExpirationBlock  uint64
	OperationType    uint8
	AccessSignature  []byte
}

var authorizeDerivedKeySchema = NewSchema("AuthorizeDerivedKeyMetadata",
	Bind("DerivedPublicKey", VarBuffer, func(m *AuthorizeDerivedKeyMetadata) *[]byte { return &m.DerivedPublicKey }),
	Bind("ExpirationBlock", Uvarint64, func(m *AuthorizeDerivedKeyMetadata) *uint64 { return &m.ExpirationBlock }),
	Bind("OperationType", Uint8, func(m *AuthorizeDerivedKeyMetadata) *uint8 { return &m.OperationType }),
	Bind("AccessSignature", VarBuffer, func(m *AuthorizeDerivedKeyMetadata) *[]byte { return &m.AccessSignature }),
)

func (m *AuthorizeDerivedKeyMetadata) ToBytes() ([]byte, error) {
	return authorizeDerivedKeySchema.Encode(m)
}

func (m *AuthorizeDerivedKeyMetadata) FromBytes(data []byte) ([]byte, error) {
	return authorizeDerivedKeySchema.Decode(m, data)
}

func (m *AuthorizeDerivedKeyMetadata) VariantTag() uint64 {
	return uint64(TxnTypeAuthorizeDerivedKey)
}

