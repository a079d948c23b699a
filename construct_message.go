package deso

import "time"

// DefaultAccessGroupKeyName is the base group every user owns for direct
// messages.
const DefaultAccessGroupKeyName = "default-key"

type NewMessageRequest struct {
	SenderAccessGroupOwnerPublicKeyBase58Check    string `json:"SenderAccessGroupOwnerPublicKeyBase58Check"`
	SenderAccessGroupPublicKeyBase58Check         string `json:"SenderAccessGroupPublicKeyBase58Check"`
	SenderAccessGroupKeyName                      string `json:"SenderAccessGroupKeyName"`
	RecipientAccessGroupOwnerPublicKeyBase58Check string `json:"RecipientAccessGroupOwnerPublicKeyBase58Check"`
	RecipientAccessGroupPublicKeyBase58Check      string `json:"RecipientAccessGroupPublicKeyBase58Check"`
	RecipientAccessGroupKeyName                   string `json:"RecipientAccessGroupKeyName"`
	EncryptedMessageText                          string `json:"EncryptedMessageText"`
	TimestampNanos                                uint64 `json:"TimestampNanosString,string,omitempty"`
	TxOptions
}

func ConstructSendDMMessage(req *NewMessageRequest, defaults Defaults) (*TxnSpec, error) {
	return constructNewMessage(req, defaults, NewMessageTypeDM, NewMessageOperationCreate, "send-dm-message")
}

func ConstructUpdateDMMessage(req *NewMessageRequest, defaults Defaults) (*TxnSpec, error) {
	return constructNewMessage(req, defaults, NewMessageTypeDM, NewMessageOperationUpdate, "update-dm-message")
}

func ConstructSendGroupChatMessage(req *NewMessageRequest, defaults Defaults) (*TxnSpec, error) {
	return constructNewMessage(req, defaults, NewMessageTypeGroupChat, NewMessageOperationCreate, "send-group-chat-message")
}

func ConstructUpdateGroupChatMessage(req *NewMessageRequest, defaults Defaults) (*TxnSpec, error) {
	return constructNewMessage(req, defaults, NewMessageTypeGroupChat, NewMessageOperationUpdate, "update-group-chat-message")
}

// constructNewMessage takes ciphertext as hex. An update must name the
// timestamp of the message it replaces; a new message defaults to now.
func constructNewMessage(req *NewMessageRequest, defaults Defaults, messageType, operation uint8, endpoint string) (spec *TxnSpec, err error) {
	r := *req
	if r.SenderAccessGroupOwnerPublicKeyBase58Check, err = transactorOrDefault("SenderAccessGroupOwnerPublicKeyBase58Check", r.SenderAccessGroupOwnerPublicKeyBase58Check, defaults); err != nil {
		return
	}
	if r.SenderAccessGroupKeyName == "" {
		r.SenderAccessGroupKeyName = DefaultAccessGroupKeyName
	}
	if r.RecipientAccessGroupKeyName == "" && messageType == NewMessageTypeDM {
		r.RecipientAccessGroupKeyName = DefaultAccessGroupKeyName
	}
	if r.RecipientAccessGroupKeyName == "" {
		err = missingField("RecipientAccessGroupKeyName")
		return
	}

	senderOwner, err := publicKeyField("SenderAccessGroupOwnerPublicKeyBase58Check", r.SenderAccessGroupOwnerPublicKeyBase58Check)
	if err != nil {
		return
	}
	senderGroup, err := publicKeyField("SenderAccessGroupPublicKeyBase58Check", r.SenderAccessGroupPublicKeyBase58Check)
	if err != nil {
		return
	}
	recipientOwner, err := publicKeyField("RecipientAccessGroupOwnerPublicKeyBase58Check", r.RecipientAccessGroupOwnerPublicKeyBase58Check)
	if err != nil {
		return
	}
	recipientGroup, err := publicKeyField("RecipientAccessGroupPublicKeyBase58Check", r.RecipientAccessGroupPublicKeyBase58Check)
	if err != nil {
		return
	}
	text, err := hexField("EncryptedMessageText", r.EncryptedMessageText)
	if err != nil {
		return
	}

	if r.TimestampNanos == 0 {
		if operation == NewMessageOperationUpdate {
			err = missingField("TimestampNanos")
			return
		}
		r.TimestampNanos = uint64(time.Now().UnixNano())
	}

	spec = &TxnSpec{
		Transactor: r.SenderAccessGroupOwnerPublicKeyBase58Check,
		Metadata: &NewMessageMetadata{
			SenderAccessGroupOwnerPublicKey:    senderOwner,
			SenderAccessGroupKeyName:           []byte(r.SenderAccessGroupKeyName),
			SenderAccessGroupPublicKey:         senderGroup,
			RecipientAccessGroupOwnerPublicKey: recipientOwner,
			RecipientAccessGroupKeyName:        []byte(r.RecipientAccessGroupKeyName),
			RecipientAccessGroupPublicKey:      recipientGroup,
			EncryptedText:                      text,
			TimestampNanos:                     r.TimestampNanos,
			NewMessageType:                     messageType,
			NewMessageOperation:                operation,
		},
		Options:  r.TxOptions,
		Endpoint: endpoint,
		Request:  &r,
	}
	return
}
