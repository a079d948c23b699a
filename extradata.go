package deso

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
)

// Consensus extra data keys understood by the node.
const (
	ExtraDataBuyNowPrice              = "BuyNowPriceNanos"
	ExtraDataDESORoyalties            = "DESORoyaltiesMap"
	ExtraDataCoinRoyalties            = "CoinRoyaltiesMap"
	ExtraDataDerivedPublicKey         = "DerivedPublicKey"
	ExtraDataTransactionSpendingLimit = "TransactionSpendingLimit"
	ExtraDataDerivedKeyMemo           = "DerivedKeyMemo"
)

// KV is one extra data entry on the wire.
type KV struct {
	Key   []byte
	Value []byte
}

var kvSchema = NewSchema("KV",
	Bind("Key", VarBuffer, func(kv *KV) *[]byte { return &kv.Key }),
	Bind("Value", VarBuffer, func(kv *KV) *[]byte { return &kv.Value }),
)

func (kv *KV) ToBytes() ([]byte, error) {
	return kvSchema.Encode(kv)
}

func (kv *KV) FromBytes(data []byte) ([]byte, error) {
	return kvSchema.Decode(kv, data)
}

var kvArray = ArrayOf[KV]()

// ExtraDataMap holds extra data by key. It is always written with keys in
// byte order, so equal maps produce equal bytes.
type ExtraDataMap map[string][]byte

// ExtraDataFromStrings converts caller supplied string values to their
// UTF-8 bytes.
func ExtraDataFromStrings(values map[string]string) ExtraDataMap {
	m := make(ExtraDataMap, len(values))
	for k, v := range values {
		m[k] = []byte(v)
	}
	return m
}

func (m ExtraDataMap) Keys() (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

// Merge copies other into m. A key present in both is an error and leaves
// m untouched.
func (m ExtraDataMap) Merge(other ExtraDataMap) (err error) {
	for k := range other {
		if _, exists := m[k]; exists {
			err = errors.Wrapf(ErrInvalidFieldEncoding, "extra data key %q set twice", k)
			return
		}
	}
	for k, v := range other {
		m[k] = bytes.Clone(v)
	}
	return
}

func (m ExtraDataMap) KVs() []KV {
	kvs := make([]KV, 0, len(m))
	for _, k := range m.Keys() {
		kvs = append(kvs, KV{Key: []byte(k), Value: m[k]})
	}
	return kvs
}

func (m ExtraDataMap) ToBytes() ([]byte, error) {
	return kvArray.Write(m.KVs())
}

func (m *ExtraDataMap) FromBytes(data []byte) (rest []byte, err error) {
	kvs, rest, err := kvArray.Read(data)
	if err != nil {
		return
	}
	if len(kvs) == 0 {
		*m = nil
		return
	}
	out := make(ExtraDataMap, len(kvs))
	for _, kv := range kvs {
		if _, exists := out[string(kv.Key)]; exists {
			err = errors.Wrapf(ErrInvalidFieldEncoding, "extra data key %q repeated", kv.Key)
			return
		}
		out[string(kv.Key)] = kv.Value
	}
	*m = out
	return
}

// RoyaltyMap is basis points by base58check public key.
type RoyaltyMap map[string]uint64

// Encode writes a uvarint count then each compressed key and its basis
// points, ordered by the base58 key.
func (r RoyaltyMap) Encode() (out []byte, err error) {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out = EncodeUvarint(uint64(len(keys)))
	for _, k := range keys {
		var key []byte
		key, _, err = DecodePublicKey(k)
		if err != nil {
			err = errors.Wrap(err, "royalty map")
			return
		}
		out = append(out, key...)
		out = AppendUvarint(out, r[k])
	}
	return
}

// DecodeRoyaltyMap reads the Encode form back, rendering keys for network.
func DecodeRoyaltyMap(data []byte, network Network) (r RoyaltyMap, err error) {
	count, rest, err := DecodeUvarint(data)
	if err != nil {
		return
	}
	keyBuffer := FixedBuffer(PublicKeyLen)
	r = make(RoyaltyMap)
	for i := uint64(0); i < count; i++ {
		var key []byte
		key, rest, err = keyBuffer.Read(rest)
		if err != nil {
			return
		}
		var bps uint64
		bps, rest, err = DecodeUvarint(rest)
		if err != nil {
			return
		}
		var encoded string
		encoded, err = EncodePublicKey(key, network)
		if err != nil {
			return
		}
		r[encoded] = bps
	}
	if len(rest) > 0 {
		err = errors.Wrapf(ErrTrailingBytes, "royalty map left %d bytes", len(rest))
	}
	return
}

func (r RoyaltyMap) Total() (total uint64) {
	for _, bps := range r {
		total += bps
	}
	return
}
