package deso

type CreateUserAssociationMetadata struct {
	TargetUserPublicKey []byte
	AppPublicKey        []byte
	AssociationType     []byte
	AssociationValue    []byte
}

var createUserAssociationSchema = NewSchema("CreateUserAssociationMetadata",
	Bind("TargetUserPublicKey", VarBuffer, func(m *CreateUserAssociationMetadata) *[]byte { return &m.TargetUserPublicKey }),
	Bind("AppPublicKey", VarBuffer, func(m *CreateUserAssociationMetadata) *[]byte { return &m.AppPublicKey }),
	Bind("AssociationType", VarBuffer, func(m *CreateUserAssociationMetadata) *[]byte { return &m.AssociationType }),
	Bind("AssociationValue", VarBuffer, func(m *CreateUserAssociationMetadata) *[]byte { return &m.AssociationValue }),
)

func (m *CreateUserAssociationMetadata) ToBytes() ([]byte, error) {
	return createUserAssociationSchema.Encode(m)
}

func (m *CreateUserAssociationMetadata) FromBytes(data []byte) ([]byte, error) {
	return createUserAssociationSchema.Decode(m, data)
}

func (m *CreateUserAssociationMetadata) VariantTag() uint64 {
	return uint64(TxnTypeCreateUserAssociation)
}

type DeleteUserAssociationMetadata struct {
	AssociationID []byte
}

var deleteUserAssociationSchema = NewSchema("DeleteUserAssociationMetadata",
	Bind("AssociationID", VarBuffer, func(m *DeleteUserAssociationMetadata) *[]byte { return &m.AssociationID }),
)

func (m *DeleteUserAssociationMetadata) ToBytes() ([]byte, error) {
	return deleteUserAssociationSchema.Encode(m)
}

func (m *DeleteUserAssociationMetadata) FromBytes(data []byte) ([]byte, error) {
	return deleteUserAssociationSchema.Decode(m, data)
}

func (m *DeleteUserAssociationMetadata) VariantTag() uint64 {
	return uint64(TxnTypeDeleteUserAssociation)
}

type CreatePostAssociationMetadata struct {
	PostHash         []byte
	AppPublicKey     []byte
	AssociationType  []byte
	AssociationValue []byte
}

var createPostAssociationSchema = NewSchema("CreatePostAssociationMetadata",
	Bind("PostHash", FixedBuffer(HashLen), func(m *CreatePostAssociationMetadata) *[]byte { return &m.PostHash }),
	Bind("AppPublicKey", VarBuffer, func(m *CreatePostAssociationMetadata) *[]byte { return &m.AppPublicKey }),
	Bind("AssociationType", VarBuffer, func(m *CreatePostAssociationMetadata) *[]byte { return &m.AssociationType }),
	Bind("AssociationValue", VarBuffer, func(m *CreatePostAssociationMetadata) *[]byte { return &m.AssociationValue }),
)

func (m *CreatePostAssociationMetadata) ToBytes() ([]byte, error) {
	return createPostAssociationSchema.Encode(m)
}

func (m *CreatePostAssociationMetadata) FromBytes(data []byte) ([]byte, error) {
	return createPostAssociationSchema.Decode(m, data)
}

func (m *CreatePostAssociationMetadata) VariantTag() uint64 {
	return uint64(TxnTypeCreatePostAssociation)
}

type DeletePostAssociationMetadata struct {
	AssociationID []byte
}

var deletePostAssociationSchema = NewSchema("DeletePostAssociationMetadata",
	Bind("AssociationID", VarBuffer, func(m *DeletePostAssociationMetadata) *[]byte { return &m.AssociationID }),
)

func (m *DeletePostAssociationMetadata) ToBytes() ([]byte, error) {
	return deletePostAssociationSchema.Encode(m)
}

func (m *DeletePostAssociationMetadata) FromBytes(data []byte) ([]byte, error) {
	return deletePostAssociationSchema.Decode(m, data)
}

func (m *DeletePostAssociationMetadata) VariantTag() uint64 {
	return uint64(TxnTypeDeletePostAssociation)
}

