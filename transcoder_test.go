package deso

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedBuffer(t *testing.T) {
	fixed := FixedBuffer(3)

	out, err := fixed.Write([]byte{1, 2, 3})
	require.Nil(t, err)
	assert.Equal(t, []byte{1, 2, 3}, out)

	_, err = fixed.Write([]byte{1, 2})
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))

	v, rest, err := fixed.Read([]byte{1, 2, 3, 4})
	require.Nil(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v)
	assert.Equal(t, []byte{4}, rest)

	_, _, err = fixed.Read([]byte{1, 2})
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}

func TestVarBuffer(t *testing.T) {
	out, err := VarBuffer.Write([]byte("abc"))
	require.Nil(t, err)
	assert.Equal(t, []byte{0x03, 'a', 'b', 'c'}, out)

	v, rest, err := VarBuffer.Read([]byte{0x00, 0x09})
	require.Nil(t, err)
	assert.Equal(t, []byte{}, v)
	assert.Equal(t, []byte{0x09}, rest)

	_, _, err = VarBuffer.Read([]byte{0x05, 'a'})
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}

func TestOptional(t *testing.T) {
	optional := Optional(Uvarint64)

	out, err := optional.Write(nil)
	require.Nil(t, err)
	assert.Empty(t, out)

	v, rest, err := optional.Read([]byte{})
	require.Nil(t, err)
	assert.Nil(t, v)
	assert.Empty(t, rest)

	n := uint64(300)
	out, err = optional.Write(&n)
	require.Nil(t, err)
	assert.Equal(t, []byte{0xac, 0x02}, out)

	v, _, err = optional.Read(out)
	require.Nil(t, err)
	require.NotNil(t, v)
	assert.Equal(t, n, *v)
}

func TestFlagged(t *testing.T) {
	flagged := Flagged(Uvarint64)

	out, err := flagged.Write(nil)
	require.Nil(t, err)
	assert.Equal(t, []byte{0x00}, out)

	n := uint64(5)
	out, err = flagged.Write(&n)
	require.Nil(t, err)
	assert.Equal(t, []byte{0x01, 0x05}, out)

	v, rest, err := flagged.Read([]byte{0x00, 0x07})
	require.Nil(t, err)
	assert.Nil(t, v)
	assert.Equal(t, []byte{0x07}, rest, "absent value is followed by the next field")

	v, rest, err = flagged.Read([]byte{0x01, 0x05, 0x07})
	require.Nil(t, err)
	require.NotNil(t, v)
	assert.Equal(t, n, *v)
	assert.Equal(t, []byte{0x07}, rest)

	_, _, err = flagged.Read([]byte{0x01})
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}

func TestChunkBuffer(t *testing.T) {
	chunks := ChunkBuffer(2)

	out, err := chunks.Write([][]byte{{1, 2}, {3, 4}})
	require.Nil(t, err)
	assert.Equal(t, []byte{0x02, 1, 2, 3, 4}, out)

	_, err = chunks.Write([][]byte{{1}})
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))

	v, rest, err := chunks.Read([]byte{0x01, 9, 8, 7})
	require.Nil(t, err)
	assert.Equal(t, [][]byte{{9, 8}}, v)
	assert.Equal(t, []byte{7}, rest)

	_, _, err = chunks.Read([]byte{0x02, 9, 8, 7})
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}

func TestArrayOf(t *testing.T) {
	inputs := ArrayOf[Input]()

	values := []Input{
		{TxID: hash32(0x01), Index: 0},
		{TxID: hash32(0x02), Index: 300},
	}
	out, err := inputs.Write(values)
	require.Nil(t, err)
	assert.Equal(t, 1+2*HashLen+1+2, len(out))

	decoded, rest, err := inputs.Read(out)
	require.Nil(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, values, decoded)

	_, _, err = inputs.Read([]byte{0x7f, 0x00})
	assert.True(t, errors.Is(err, ErrTruncatedInput), "count larger than the remaining bytes")

	_, _, err = inputs.Read(out[:len(out)-1])
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}

func TestEnum(t *testing.T) {
	enum := Enum(metadataVariants)

	bid := &NFTBidMetadata{BidAmountNanos: 1, NFTPostHash: hash32(0xaa), SerialNumber: 2}
	out, err := enum.Write(bid)
	require.Nil(t, err)
	assert.Equal(t, []byte{byte(TxnTypeNFTBid), 34}, out[:2])

	v, rest, err := enum.Read(append(out, 0x99))
	require.Nil(t, err)
	assert.Equal(t, bid, v)
	assert.Equal(t, []byte{0x99}, rest)

	t.Run("unknown tag", func(t *testing.T) {
		_, _, err := enum.Read([]byte{0x63, 0x00})
		assert.True(t, errors.Is(err, ErrUnknownVariant))
	})

	t.Run("declared length overruns input", func(t *testing.T) {
		_, _, err := enum.Read([]byte{byte(TxnTypeBurnNFT), 0x40, 0x01})
		assert.True(t, errors.Is(err, ErrTruncatedInput))
	})

	t.Run("payload shorter than declared", func(t *testing.T) {
		payload, err := (&BurnNFTMetadata{NFTPostHash: hash32(1), SerialNumber: 1}).ToBytes()
		require.Nil(t, err)
		data := append([]byte{byte(TxnTypeBurnNFT), byte(len(payload) + 1)}, payload...)
		_, _, err = enum.Read(append(data, 0x00))
		assert.True(t, errors.Is(err, ErrTrailingBytes))
	})

	t.Run("nil value", func(t *testing.T) {
		_, err := enum.Write(nil)
		assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))
	})
}

func TestSchema_FieldErrorsNameTheField(t *testing.T) {
	_, err := (&NFTBidMetadata{NFTPostHash: []byte{1}}).ToBytes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NFTBidMetadata.NFTPostHash")

	err = DecodeExact(&BurnNFTMetadata{}, hash32(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BurnNFTMetadata.SerialNumber")
}

func TestSchema_DuplicateFieldPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema("Dup",
			Bind("A", Uvarint64, func(n *Nonce) *uint64 { return &n.PartialID }),
			Bind("A", Uvarint64, func(n *Nonce) *uint64 { return &n.ExpirationBlockHeight }),
		)
	})
	assert.Equal(t, []string{"ExpirationBlockHeight", "PartialID"}, nonceSchema.FieldNames())
}

func TestDecodeExact_TrailingBytes(t *testing.T) {
	raw, err := (&AcceptNFTTransferMetadata{NFTPostHash: hash32(3), SerialNumber: 9}).ToBytes()
	require.Nil(t, err)

	err = DecodeExact(&AcceptNFTTransferMetadata{}, append(raw, 0x00))
	assert.True(t, errors.Is(err, ErrTrailingBytes))
}
