package deso

type AccessGroupRequest struct {
	AccessGroupOwnerPublicKeyBase58Check string `json:"AccessGroupOwnerPublicKeyBase58Check"`
	AccessGroupPublicKeyBase58Check      string `json:"AccessGroupPublicKeyBase58Check"`
	AccessGroupKeyName                   string `json:"AccessGroupKeyName"`
	TxOptions
}

func ConstructCreateAccessGroup(req *AccessGroupRequest, defaults Defaults) (*TxnSpec, error) {
	return constructAccessGroup(req, defaults, AccessGroupOperationCreate, "create-access-group")
}

func ConstructUpdateAccessGroup(req *AccessGroupRequest, defaults Defaults) (*TxnSpec, error) {
	return constructAccessGroup(req, defaults, AccessGroupOperationUpdate, "update-access-group")
}

func constructAccessGroup(req *AccessGroupRequest, defaults Defaults, op uint8, endpoint string) (spec *TxnSpec, err error) {
	r := *req
	if r.AccessGroupOwnerPublicKeyBase58Check, err = transactorOrDefault("AccessGroupOwnerPublicKeyBase58Check", r.AccessGroupOwnerPublicKeyBase58Check, defaults); err != nil {
		return
	}
	owner, err := publicKeyField("AccessGroupOwnerPublicKeyBase58Check", r.AccessGroupOwnerPublicKeyBase58Check)
	if err != nil {
		return
	}
	group, err := publicKeyField("AccessGroupPublicKeyBase58Check", r.AccessGroupPublicKeyBase58Check)
	if err != nil {
		return
	}
	if r.AccessGroupKeyName == "" {
		err = missingField("AccessGroupKeyName")
		return
	}

	spec = &TxnSpec{
		Transactor: r.AccessGroupOwnerPublicKeyBase58Check,
		Metadata: &AccessGroupMetadata{
			AccessGroupOwnerPublicKey: owner,
			AccessGroupPublicKey:      group,
			AccessGroupKeyName:        []byte(r.AccessGroupKeyName),
			AccessGroupOperationType:  op,
		},
		Options:  r.TxOptions,
		Endpoint: endpoint,
		Request:  &r,
	}
	return
}

type AccessGroupMember struct {
	AccessGroupMemberPublicKeyBase58Check string            `json:"AccessGroupMemberPublicKeyBase58Check"`
	AccessGroupMemberKeyName              string            `json:"AccessGroupMemberKeyName"`
	EncryptedKey                          string            `json:"EncryptedKey"`
	ExtraData                             map[string]string `json:"ExtraData,omitempty"`
}

type AccessGroupMembersRequest struct {
	AccessGroupOwnerPublicKeyBase58Check string              `json:"AccessGroupOwnerPublicKeyBase58Check"`
	AccessGroupKeyName                   string              `json:"AccessGroupKeyName"`
	AccessGroupMemberList                []AccessGroupMember `json:"AccessGroupMemberList"`
	TxOptions
}

func ConstructAddAccessGroupMembers(req *AccessGroupMembersRequest, defaults Defaults) (*TxnSpec, error) {
	return constructAccessGroupMembers(req, defaults, AccessGroupMemberOperationAdd, "add-access-group-members")
}

// ConstructRemoveAccessGroupMembers ignores each member's key name and
// encrypted key; removal only names the group.
func ConstructRemoveAccessGroupMembers(req *AccessGroupMembersRequest, defaults Defaults) (*TxnSpec, error) {
	return constructAccessGroupMembers(req, defaults, AccessGroupMemberOperationRemove, "remove-access-group-members")
}

func ConstructUpdateAccessGroupMembers(req *AccessGroupMembersRequest, defaults Defaults) (*TxnSpec, error) {
	return constructAccessGroupMembers(req, defaults, AccessGroupMemberOperationUpdate, "update-access-group-members")
}

func constructAccessGroupMembers(req *AccessGroupMembersRequest, defaults Defaults, op uint8, endpoint string) (spec *TxnSpec, err error) {
	r := *req
	if r.AccessGroupOwnerPublicKeyBase58Check, err = transactorOrDefault("AccessGroupOwnerPublicKeyBase58Check", r.AccessGroupOwnerPublicKeyBase58Check, defaults); err != nil {
		return
	}
	owner, err := publicKeyField("AccessGroupOwnerPublicKeyBase58Check", r.AccessGroupOwnerPublicKeyBase58Check)
	if err != nil {
		return
	}
	if r.AccessGroupKeyName == "" {
		err = missingField("AccessGroupKeyName")
		return
	}
	if len(r.AccessGroupMemberList) == 0 {
		err = missingField("AccessGroupMemberList")
		return
	}

	members := make([]AccessGroupMemberRecord, 0, len(r.AccessGroupMemberList))
	for _, m := range r.AccessGroupMemberList {
		var key []byte
		if key, err = publicKeyField("AccessGroupMemberPublicKeyBase58Check", m.AccessGroupMemberPublicKeyBase58Check); err != nil {
			return
		}
		record := AccessGroupMemberRecord{
			AccessGroupMemberPublicKey: key,
			AccessGroupMemberKeyName:   []byte(r.AccessGroupKeyName),
			EncryptedKey:               []byte{},
		}
		if op != AccessGroupMemberOperationRemove {
			if m.AccessGroupMemberKeyName == "" {
				err = missingField("AccessGroupMemberKeyName")
				return
			}
			record.AccessGroupMemberKeyName = []byte(m.AccessGroupMemberKeyName)
			if record.EncryptedKey, err = optionalHex("EncryptedKey", m.EncryptedKey); err != nil {
				return
			}
			if len(m.ExtraData) > 0 {
				record.ExtraData = ExtraDataFromStrings(m.ExtraData)
			}
		}
		members = append(members, record)
	}

	spec = &TxnSpec{
		Transactor: r.AccessGroupOwnerPublicKeyBase58Check,
		Metadata: &AccessGroupMembersMetadata{
			AccessGroupOwnerPublicKey:      owner,
			AccessGroupKeyName:             []byte(r.AccessGroupKeyName),
			AccessGroupMembersList:         members,
			AccessGroupMemberOperationType: op,
		},
		Options:  r.TxOptions,
		Endpoint: endpoint,
		Request:  &r,
	}
	return
}
