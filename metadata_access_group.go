package deso

const (
	AccessGroupOperationCreate uint8 = 2
	AccessGroupOperationUpdate uint8 = 3
)

const (
	AccessGroupMemberOperationAdd    uint8 = 2
	AccessGroupMemberOperationRemove uint8 = 3
	AccessGroupMemberOperationUpdate uint8 = 4
)

type AccessGroupMetadata struct {
	AccessGroupOwnerPublicKey []byte
	AccessGroupPublicKey      []byte
	AccessGroupKeyName        []byte
	AccessGroupOperationType  uint8
}

var accessGroupSchema = NewSchema("AccessGroupMetadata",
	Bind("AccessGroupOwnerPublicKey", VarBuffer, func(m *AccessGroupMetadata) *[]byte { return &m.AccessGroupOwnerPublicKey }),
	Bind("AccessGroupPublicKey", VarBuffer, func(m *AccessGroupMetadata) *[]byte { return &m.AccessGroupPublicKey }),
	Bind("AccessGroupKeyName", VarBuffer, func(m *AccessGroupMetadata) *[]byte { return &m.AccessGroupKeyName }),
	Bind("AccessGroupOperationType", Uint8, func(m *AccessGroupMetadata) *uint8 { return &m.AccessGroupOperationType }),
)

func (m *AccessGroupMetadata) ToBytes() ([]byte, error) {
	return accessGroupSchema.Encode(m)
}

func (m *AccessGroupMetadata) FromBytes(data []byte) ([]byte, error) {
	return accessGroupSchema.Decode(m, data)
}

func (m *AccessGroupMetadata) VariantTag() uint64 {
	return uint64(TxnTypeAccessGroup)
}

type AccessGroupMemberRecord struct {
	AccessGroupMemberPublicKey []byte
	AccessGroupMemberKeyName   []byte
	EncryptedKey               []byte
	ExtraData                  ExtraDataMap
}

var accessGroupMemberSchema = NewSchema("AccessGroupMemberRecord",
	Bind("AccessGroupMemberPublicKey", VarBuffer, func(m *AccessGroupMemberRecord) *[]byte { return &m.AccessGroupMemberPublicKey }),
	Bind("AccessGroupMemberKeyName", VarBuffer, func(m *AccessGroupMemberRecord) *[]byte { return &m.AccessGroupMemberKeyName }),
	Bind("EncryptedKey", VarBuffer, func(m *AccessGroupMemberRecord) *[]byte { return &m.EncryptedKey }),
	Bind("ExtraData", RecordOf[ExtraDataMap](), func(m *AccessGroupMemberRecord) *ExtraDataMap { return &m.ExtraData }),
)

func (m *AccessGroupMemberRecord) ToBytes() ([]byte, error) {
	return accessGroupMemberSchema.Encode(m)
}

func (m *AccessGroupMemberRecord) FromBytes(data []byte) ([]byte, error) {
	return accessGroupMemberSchema.Decode(m, data)
}

type AccessGroupMembersMetadata struct {
	AccessGroupOwnerPublicKey      []byte
	AccessGroupKeyName             []byte
	AccessGroupMembersList         []AccessGroupMemberRecord
	AccessGroupMemberOperationType uint8
}

var accessGroupMembersSchema = NewSchema("AccessGroupMembersMetadata",
	Bind("AccessGroupOwnerPublicKey", VarBuffer, func(m *AccessGroupMembersMetadata) *[]byte { return &m.AccessGroupOwnerPublicKey }),
	Bind("AccessGroupKeyName", VarBuffer, func(m *AccessGroupMembersMetadata) *[]byte { return &m.AccessGroupKeyName }),
	Bind("AccessGroupMembersList", ArrayOf[AccessGroupMemberRecord](), func(m *AccessGroupMembersMetadata) *[]AccessGroupMemberRecord { return &m.AccessGroupMembersList }),
	Bind("AccessGroupMemberOperationType", Uint8, func(m *AccessGroupMembersMetadata) *uint8 { return &m.AccessGroupMemberOperationType }),
)

func (m *AccessGroupMembersMetadata) ToBytes() ([]byte, error) {
	return accessGroupMembersSchema.Encode(m)
}

func (m *AccessGroupMembersMetadata) FromBytes(data []byte) ([]byte, error) {
	return accessGroupMembersSchema.Decode(m, data)
}

func (m *AccessGroupMembersMetadata) VariantTag() uint64 {
	return uint64(TxnTypeAccessGroupMembers)
}

