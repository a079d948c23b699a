package deso

type CreateUserAssociationRequest struct {
	TransactorPublicKeyBase58Check string `json:"TransactorPublicKeyBase58Check"`
	TargetUserPublicKeyBase58Check string `json:"TargetUserPublicKeyBase58Check"`
	AppPublicKeyBase58Check        string `json:"AppPublicKeyBase58Check,omitempty"`
	AssociationType                string `json:"AssociationType"`
	AssociationValue               string `json:"AssociationValue"`
	TxOptions
}

func ConstructCreateUserAssociation(req *CreateUserAssociationRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.TransactorPublicKeyBase58Check, err = transactorOrDefault("TransactorPublicKeyBase58Check", r.TransactorPublicKeyBase58Check, defaults); err != nil {
		return
	}
	target, err := publicKeyField("TargetUserPublicKeyBase58Check", r.TargetUserPublicKeyBase58Check)
	if err != nil {
		return
	}
	app, err := publicKeyOrZero("AppPublicKeyBase58Check", r.AppPublicKeyBase58Check)
	if err != nil {
		return
	}
	if err = associationTypeAndValue(r.AssociationType, r.AssociationValue); err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.TransactorPublicKeyBase58Check,
		Metadata: &CreateUserAssociationMetadata{
			TargetUserPublicKey: target,
			AppPublicKey:        app,
			AssociationType:     []byte(r.AssociationType),
			AssociationValue:    []byte(r.AssociationValue),
		},
		Options:  r.TxOptions,
		Endpoint: "user-associations/create",
		Request:  &r,
	}
	return
}

type DeleteAssociationRequest struct {
	TransactorPublicKeyBase58Check string `json:"TransactorPublicKeyBase58Check"`
	AssociationID                  string `json:"AssociationID"`
	TxOptions
}

func ConstructDeleteUserAssociation(req *DeleteAssociationRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	id, err := deleteAssociation(&r, defaults)
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.TransactorPublicKeyBase58Check,
		Metadata:   &DeleteUserAssociationMetadata{AssociationID: id},
		Options:    r.TxOptions,
		Endpoint:   "user-associations/delete",
		Request:    &r,
	}
	return
}

type CreatePostAssociationRequest struct {
	TransactorPublicKeyBase58Check string `json:"TransactorPublicKeyBase58Check"`
	PostHashHex                    string `json:"PostHashHex"`
	AppPublicKeyBase58Check        string `json:"AppPublicKeyBase58Check,omitempty"`
	AssociationType                string `json:"AssociationType"`
	AssociationValue               string `json:"AssociationValue"`
	TxOptions
}

func ConstructCreatePostAssociation(req *CreatePostAssociationRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.TransactorPublicKeyBase58Check, err = transactorOrDefault("TransactorPublicKeyBase58Check", r.TransactorPublicKeyBase58Check, defaults); err != nil {
		return
	}
	post, err := hashField("PostHashHex", r.PostHashHex)
	if err != nil {
		return
	}
	app, err := publicKeyOrZero("AppPublicKeyBase58Check", r.AppPublicKeyBase58Check)
	if err != nil {
		return
	}
	if err = associationTypeAndValue(r.AssociationType, r.AssociationValue); err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.TransactorPublicKeyBase58Check,
		Metadata: &CreatePostAssociationMetadata{
			PostHash:         post,
			AppPublicKey:     app,
			AssociationType:  []byte(r.AssociationType),
			AssociationValue: []byte(r.AssociationValue),
		},
		Options:  r.TxOptions,
		Endpoint: "post-associations/create",
		Request:  &r,
	}
	return
}

func ConstructDeletePostAssociation(req *DeleteAssociationRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	id, err := deleteAssociation(&r, defaults)
	if err != nil {
		return
	}

	spec = &TxnSpec{
		Transactor: r.TransactorPublicKeyBase58Check,
		Metadata:   &DeletePostAssociationMetadata{AssociationID: id},
		Options:    r.TxOptions,
		Endpoint:   "post-associations/delete",
		Request:    &r,
	}
	return
}

func associationTypeAndValue(associationType, associationValue string) error {
	if associationType == "" {
		return missingField("AssociationType")
	}
	if associationValue == "" {
		return missingField("AssociationValue")
	}
	return nil
}

func deleteAssociation(r *DeleteAssociationRequest, defaults Defaults) (id []byte, err error) {
	if r.TransactorPublicKeyBase58Check, err = transactorOrDefault("TransactorPublicKeyBase58Check", r.TransactorPublicKeyBase58Check, defaults); err != nil {
		return
	}
	return hashField("AssociationID", r.AssociationID)
}
