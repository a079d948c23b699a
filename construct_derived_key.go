package deso

import "encoding/hex"

type AuthorizeDerivedKeyRequest struct {
	OwnerPublicKeyBase58Check   string `json:"OwnerPublicKeyBase58Check"`
	DerivedPublicKeyBase58Check string `json:"DerivedPublicKeyBase58Check"`
	ExpirationBlock             uint64 `json:"ExpirationBlock"`
	AccessSignature             string `json:"AccessSignature,omitempty"`
	DeleteKey                   bool   `json:"DeleteKey"`
	DerivedKeySignature         bool   `json:"DerivedKeySignature,omitempty"`
	TransactionSpendingLimitHex string `json:"TransactionSpendingLimitHex,omitempty"`
	Memo                        string `json:"Memo,omitempty"`
	AppName                     string `json:"AppName,omitempty"`
	TxOptions
}

// ConstructAuthorizeDerivedKey authorizes, or with DeleteKey revokes, a
// derived key. When DerivedKeySignature is set the transaction will be
// signed by the derived key itself, so its public key travels in extra
// data.
func ConstructAuthorizeDerivedKey(req *AuthorizeDerivedKeyRequest, defaults Defaults) (spec *TxnSpec, err error) {
	r := *req
	if r.OwnerPublicKeyBase58Check, err = transactorOrDefault("OwnerPublicKeyBase58Check", r.OwnerPublicKeyBase58Check, defaults); err != nil {
		return
	}
	derived, err := publicKeyField("DerivedPublicKeyBase58Check", r.DerivedPublicKeyBase58Check)
	if err != nil {
		return
	}
	if r.ExpirationBlock == 0 && !r.DeleteKey {
		err = missingField("ExpirationBlock")
		return
	}
	signature, err := optionalHex("AccessSignature", r.AccessSignature)
	if err != nil {
		return
	}

	op := AuthorizeDerivedKeyOperationValid
	if r.DeleteKey {
		op = AuthorizeDerivedKeyOperationNotValid
	}

	consensus := make(ExtraDataMap)
	if r.DerivedKeySignature {
		consensus[ExtraDataDerivedPublicKey] = derived
	}
	if r.TransactionSpendingLimitHex != "" {
		var limit []byte
		if limit, err = hexField("TransactionSpendingLimitHex", r.TransactionSpendingLimitHex); err != nil {
			return
		}
		if len(limit) > 0 {
			consensus[ExtraDataTransactionSpendingLimit] = limit
		}
	}
	memo := r.Memo
	if memo == "" {
		memo = r.AppName
	}
	if memo != "" {
		consensus[ExtraDataDerivedKeyMemo] = []byte(hex.EncodeToString([]byte(memo)))
	}

	spec = &TxnSpec{
		Transactor: r.OwnerPublicKeyBase58Check,
		Metadata: &AuthorizeDerivedKeyMetadata{
			DerivedPublicKey: derived,
			ExpirationBlock:  r.ExpirationBlock,
			OperationType:    op,
			AccessSignature:  signature,
		},
		ConsensusExtraData: consensus,
		Options:            r.TxOptions,
		Endpoint:           "authorize-derived-key",
		Request:            &r,
	}
	return
}
