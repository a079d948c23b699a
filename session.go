package deso

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Persisted session keys.
const (
	SessionKeyUser        = "deso_user"
	SessionKeyUserKey     = "deso_user_key"
	SessionKeyIdentityURI = "deso_identity_uri"
)

// Session is the logged in user as far as the custody context is
// concerned. It is written by login and cleared by logout.
type Session struct {
	PublicKey    string  `cbor:"1,keyasint" json:"publicKey"`
	SessionToken string  `cbor:"2,keyasint" json:"sessionToken"`
	Network      Network `cbor:"3,keyasint" json:"network"`
}

var sessionEncoding cbor.EncMode

func init() {
	var err error
	sessionEncoding, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

func (s *Session) MarshalCBOR() ([]byte, error) {
	type plain Session
	out, err := sessionEncoding.Marshal((*plain)(s))
	return out, errors.WithStack(err)
}

// LoadSession reads the session record. A store with no record returns a
// nil session and no error.
func LoadSession(store SessionStore) (session *Session, err error) {
	raw, ok, err := store.Get(SessionKeyUser)
	if err != nil || !ok {
		return
	}
	session = &Session{}
	if err = cbor.Unmarshal(raw, session); err != nil {
		session = nil
		err = errors.Wrap(err, "unable to decode session record")
	}
	return
}

func SaveSession(store SessionStore, session *Session, identityURI string) (err error) {
	raw, err := session.MarshalCBOR()
	if err != nil {
		return
	}
	if err = store.Set(SessionKeyUser, raw); err != nil {
		return
	}
	if err = store.Set(SessionKeyUserKey, []byte(session.PublicKey)); err != nil {
		return
	}
	return store.Set(SessionKeyIdentityURI, []byte(identityURI))
}

func ClearSession(store SessionStore) (err error) {
	for _, key := range []string{SessionKeyUser, SessionKeyUserKey} {
		if err = store.Delete(key); err != nil {
			return
		}
	}
	return
}
