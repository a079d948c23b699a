package deso

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder(t *testing.T, state ChainState) *Builder {
	builder, err := NewBuilder(&BuilderOptions{
		ChainState: StaticChainState(state),
		PartialID:  func() (uint64, error) { return 7, nil },
	})
	require.Nil(t, err)
	return builder
}

func TestBuilder_RequiresChainState(t *testing.T) {
	_, err := NewBuilder(nil)
	assert.Error(t, err)
}

func TestBuilder_Build(t *testing.T) {
	key := newTestKey(t, 0x11, NetworkMainNet)
	feeTaker := newTestKey(t, 0x12, NetworkMainNet)

	spec, err := ConstructNFTBid(&CreateNFTBidRequest{
		NFTPostHashHex: hex.EncodeToString(hash32(0xab)),
		SerialNumber:   1,
		BidAmountNanos: 300,
		TxOptions: TxOptions{
			TransactionFees: []TransactionFee{{PublicKeyBase58Check: feeTaker.base58, AmountNanos: 10}},
			ExtraData:       map[string]string{"app": "deso-go"},
		},
	}, Defaults{PublicKey: key.base58})
	require.Nil(t, err)
	assert.Equal(t, TxnTypeNFTBid, spec.Type())
	assert.Equal(t, key.base58, spec.Transactor, "the session key fills an empty transactor")

	txn, err := testBuilder(t, ChainState{BlockHeight: 1000}).Build(context.Background(), spec)
	require.Nil(t, err)

	assert.Equal(t, key.pub, txn.PublicKey)
	assert.Equal(t, []Output{{PublicKey: feeTaker.pub, AmountNanos: 10}}, txn.Outputs)
	assert.Equal(t, ExtraDataMap{"app": []byte("deso-go")}, txn.ExtraData)
	assert.Equal(t, &Nonce{ExpirationBlockHeight: 1000 + NonceExpiryBlocks, PartialID: 7}, txn.Nonce)
	assert.Empty(t, txn.Signature)

	raw, err := txn.ToBytes()
	require.Nil(t, err)
	assert.Equal(t, RequiredFee(len(raw), DefaultFeeRateNanosPerKB), txn.FeeNanos, "fee covers the final size")

	decoded, err := DecodeTransaction(raw)
	require.Nil(t, err)
	assert.Equal(t, txn, decoded)
}

func TestBuilder_FeeRate(t *testing.T) {
	key := newTestKey(t, 0x11, NetworkMainNet)
	spec, err := ConstructBurnNFT(&BurnNFTRequest{
		UpdaterPublicKeyBase58Check: key.base58,
		NFTPostHashHex:              hex.EncodeToString(hash32(1)),
		SerialNumber:                1,
	}, Defaults{})
	require.Nil(t, err)

	testCases := []struct {
		name      string
		requested uint64
		floor     uint64
		rate      uint64
	}{
		{"default", 0, 0, DefaultFeeRateNanosPerKB},
		{"requested", 5000, 0, 5000},
		{"network floor wins", 2000, 9000, 9000},
		{"requested above floor", 20000, 9000, 20000},
	}

	for _, tc := range testCases {
		spec.Options.MinFeeRateNanosPerKB = tc.requested
		txn, err := testBuilder(t, ChainState{BlockHeight: 1, MinFeeRateNanosPerKB: tc.floor}).Build(context.Background(), spec)
		require.Nil(t, err, tc.name)

		raw, err := txn.ToBytes()
		require.Nil(t, err, tc.name)
		assert.Equal(t, RequiredFee(len(raw), tc.rate), txn.FeeNanos, tc.name)
	}
}

func TestBuilder_ExtraDataCollision(t *testing.T) {
	key := newTestKey(t, 0x11, NetworkMainNet)
	spec, err := ConstructCreateNFT(&CreateNFTRequest{
		UpdaterPublicKeyBase58Check: key.base58,
		NFTPostHashHex:              hex.EncodeToString(hash32(1)),
		NumCopies:                   1,
		IsBuyNow:                    true,
		BuyNowPriceNanos:            5,
		TxOptions:                   TxOptions{ExtraData: map[string]string{ExtraDataBuyNowPrice: "1"}},
	}, Defaults{})
	require.Nil(t, err)

	_, err = testBuilder(t, ChainState{}).Build(context.Background(), spec)
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))
}

func TestRequiredFee(t *testing.T) {
	assert.Equal(t, uint64(0), RequiredFee(0, 0))
	assert.Equal(t, uint64(74), RequiredFee(0, 1000))
	assert.Equal(t, uint64(174), RequiredFee(100, 1000))
	assert.Equal(t, uint64(1), RequiredFee(1, 1), "rounds up")
}

func TestConstruct_MissingFields(t *testing.T) {
	key := newTestKey(t, 0x11, NetworkMainNet)
	post := hex.EncodeToString(hash32(1))

	testCases := map[string]func() error{
		"no transactor and no session": func() error {
			_, err := ConstructNFTBid(&CreateNFTBidRequest{NFTPostHashHex: post}, Defaults{})
			return err
		},
		"no post hash": func() error {
			_, err := ConstructCreateNFT(&CreateNFTRequest{NumCopies: 1}, Defaults{PublicKey: key.base58})
			return err
		},
		"no copies": func() error {
			_, err := ConstructCreateNFT(&CreateNFTRequest{NFTPostHashHex: post}, Defaults{PublicKey: key.base58})
			return err
		},
		"no serial number": func() error {
			_, err := ConstructUpdateNFT(&UpdateNFTRequest{NFTPostHashHex: post}, Defaults{PublicKey: key.base58})
			return err
		},
		"no access group key name": func() error {
			_, err := ConstructCreateAccessGroup(&AccessGroupRequest{AccessGroupPublicKeyBase58Check: key.base58}, Defaults{PublicKey: key.base58})
			return err
		},
		"no expiration block": func() error {
			_, err := ConstructAuthorizeDerivedKey(&AuthorizeDerivedKeyRequest{DerivedPublicKeyBase58Check: key.base58}, Defaults{PublicKey: key.base58})
			return err
		},
		"update without timestamp": func() error {
			_, err := ConstructUpdateDMMessage(&NewMessageRequest{
				SenderAccessGroupPublicKeyBase58Check:         key.base58,
				RecipientAccessGroupOwnerPublicKeyBase58Check: key.base58,
				RecipientAccessGroupPublicKeyBase58Check:      key.base58,
				EncryptedMessageText:                          "00",
			}, Defaults{PublicKey: key.base58})
			return err
		},
		"no limit order operation": func() error {
			_, err := ConstructDAOCoinLimitOrder(&DAOCoinLimitOrderRequest{
				BuyingDAOCoinCreatorPublicKeyBase58Check:  key.base58,
				ScaledExchangeRateCoinsToSellPerCoinToBuy: "1",
				QuantityToFillInBaseUnits:                 "1",
			}, Defaults{PublicKey: key.base58})
			return err
		},
	}

	for name, fn := range testCases {
		assert.True(t, errors.Is(fn(), ErrMissingRequiredField), name)
	}
}

func TestConstruct_InvalidFields(t *testing.T) {
	key := newTestKey(t, 0x11, NetworkMainNet)

	_, err := ConstructNFTBid(&CreateNFTBidRequest{NFTPostHashHex: "abcd"}, Defaults{PublicKey: key.base58})
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding), "short post hash")

	_, err = ConstructNFTBid(&CreateNFTBidRequest{UpdaterPublicKeyBase58Check: "BC1YLnope", NFTPostHashHex: hex.EncodeToString(hash32(1))}, Defaults{})
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding), "bad transactor key")

	_, err = ConstructDAOCoinLimitOrder(&DAOCoinLimitOrderRequest{
		ScaledExchangeRateCoinsToSellPerCoinToBuy: "1",
		QuantityToFillInBaseUnits:                 "1",
		OperationType:                             "BID",
	}, Defaults{PublicKey: key.base58})
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding), "both sides native")

	_, err = ConstructDAOCoin(&DAOCoinRequest{
		ProfilePublicKeyBase58Check: key.base58,
		OperationType:               "melt",
	}, Defaults{PublicKey: key.base58})
	assert.Error(t, err, "unknown dao coin operation")
}

func TestConstructDAOCoinLimitOrder_NativeSide(t *testing.T) {
	key := newTestKey(t, 0x11, NetworkMainNet)
	creator := newTestKey(t, 0x13, NetworkMainNet)

	spec, err := ConstructDAOCoinLimitOrder(&DAOCoinLimitOrderRequest{
		BuyingDAOCoinCreatorPublicKeyBase58Check:  creator.base58,
		ScaledExchangeRateCoinsToSellPerCoinToBuy: "0x0100",
		QuantityToFillInBaseUnits:                 "1000",
		OperationType:                             "bid",
	}, Defaults{PublicKey: key.base58})
	require.Nil(t, err)

	m := spec.Metadata.(*DAOCoinLimitOrderMetadata)
	assert.Equal(t, creator.pub, m.BuyingDAOCoinCreatorPublicKey)
	assert.Equal(t, ZeroPublicKey, m.SellingDAOCoinCreatorPublicKey)
	assert.Equal(t, []byte{0x01, 0x00}, m.ScaledExchangeRateCoinsToSellPerCoinToBuy)
	assert.Equal(t, []byte{0x03, 0xe8}, m.QuantityToFillInBaseUnits)
	assert.Equal(t, LimitOrderOperationBid, m.OperationType)
	assert.Equal(t, FillTypeGoodTillCancelled, m.FillType)
}

func TestConstructAuthorizeDerivedKey_ExtraData(t *testing.T) {
	owner := newTestKey(t, 0x11, NetworkMainNet)
	derived := newTestKey(t, 0x14, NetworkMainNet)

	spec, err := ConstructAuthorizeDerivedKey(&AuthorizeDerivedKeyRequest{
		DerivedPublicKeyBase58Check: derived.base58,
		ExpirationBlock:             5000,
		DerivedKeySignature:         true,
		TransactionSpendingLimitHex: "0102",
		AppName:                     "app",
	}, Defaults{PublicKey: owner.base58})
	require.Nil(t, err)

	assert.Equal(t, owner.base58, spec.Transactor)
	assert.Equal(t, ExtraDataMap{
		ExtraDataDerivedPublicKey:         derived.pub,
		ExtraDataTransactionSpendingLimit: []byte{0x01, 0x02},
		ExtraDataDerivedKeyMemo:           []byte(hex.EncodeToString([]byte("app"))),
	}, spec.ConsensusExtraData)

	m := spec.Metadata.(*AuthorizeDerivedKeyMetadata)
	assert.Equal(t, AuthorizeDerivedKeyOperationValid, m.OperationType)

	spec, err = ConstructAuthorizeDerivedKey(&AuthorizeDerivedKeyRequest{
		DerivedPublicKeyBase58Check: derived.base58,
		DeleteKey:                   true,
	}, Defaults{PublicKey: owner.base58})
	require.Nil(t, err)
	assert.Equal(t, AuthorizeDerivedKeyOperationNotValid, spec.Metadata.(*AuthorizeDerivedKeyMetadata).OperationType)
}

func TestConstructCreateNFT_Royalties(t *testing.T) {
	creator := newTestKey(t, 0x11, NetworkMainNet)
	royalty := newTestKey(t, 0x15, NetworkMainNet)

	spec, err := ConstructCreateNFT(&CreateNFTRequest{
		NFTPostHashHex:             hex.EncodeToString(hash32(2)),
		NumCopies:                  3,
		IsBuyNow:                   true,
		BuyNowPriceNanos:           300,
		AdditionalDESORoyaltiesMap: map[string]uint64{royalty.base58: 100},
	}, Defaults{PublicKey: creator.base58})
	require.Nil(t, err)

	assert.Equal(t, []byte{0xac, 0x02}, spec.ConsensusExtraData[ExtraDataBuyNowPrice])

	royalties, err := DecodeRoyaltyMap(spec.ConsensusExtraData[ExtraDataDESORoyalties], NetworkMainNet)
	require.Nil(t, err)
	assert.Equal(t, RoyaltyMap{royalty.base58: 100}, royalties)
	assert.NotContains(t, spec.ConsensusExtraData, ExtraDataCoinRoyalties)
}

func TestConstructMessage_Defaults(t *testing.T) {
	sender := newTestKey(t, 0x11, NetworkMainNet)
	recipient := newTestKey(t, 0x16, NetworkMainNet)

	spec, err := ConstructSendDMMessage(&NewMessageRequest{
		SenderAccessGroupPublicKeyBase58Check:         sender.base58,
		RecipientAccessGroupOwnerPublicKeyBase58Check: recipient.base58,
		RecipientAccessGroupPublicKeyBase58Check:      recipient.base58,
		EncryptedMessageText:                          "cafe",
	}, Defaults{PublicKey: sender.base58})
	require.Nil(t, err)

	m := spec.Metadata.(*NewMessageMetadata)
	assert.Equal(t, []byte(DefaultAccessGroupKeyName), m.SenderAccessGroupKeyName)
	assert.Equal(t, []byte(DefaultAccessGroupKeyName), m.RecipientAccessGroupKeyName)
	assert.Equal(t, []byte{0xca, 0xfe}, m.EncryptedText)
	assert.NotZero(t, m.TimestampNanos)
	assert.Equal(t, NewMessageTypeDM, m.NewMessageType)
	assert.Equal(t, "send-dm-message", spec.Endpoint)

	_, err = ConstructSendGroupChatMessage(&NewMessageRequest{
		SenderAccessGroupPublicKeyBase58Check:         sender.base58,
		RecipientAccessGroupOwnerPublicKeyBase58Check: recipient.base58,
		RecipientAccessGroupPublicKeyBase58Check:      recipient.base58,
		EncryptedMessageText:                          "cafe",
	}, Defaults{PublicKey: sender.base58})
	assert.True(t, errors.Is(err, ErrMissingRequiredField), "group chats name their group")
}

func TestConstructAccessGroupMembers(t *testing.T) {
	owner := newTestKey(t, 0x11, NetworkMainNet)
	member := newTestKey(t, 0x17, NetworkMainNet)

	req := &AccessGroupMembersRequest{
		AccessGroupKeyName: "friends",
		AccessGroupMemberList: []AccessGroupMember{{
			AccessGroupMemberPublicKeyBase58Check: member.base58,
			AccessGroupMemberKeyName:              DefaultAccessGroupKeyName,
			EncryptedKey:                          "beef",
			ExtraData:                             map[string]string{"role": "admin"},
		}},
	}

	spec, err := ConstructAddAccessGroupMembers(req, Defaults{PublicKey: owner.base58})
	require.Nil(t, err)
	m := spec.Metadata.(*AccessGroupMembersMetadata)
	assert.Equal(t, AccessGroupMemberOperationAdd, m.AccessGroupMemberOperationType)
	require.Len(t, m.AccessGroupMembersList, 1)
	assert.Equal(t, member.pub, m.AccessGroupMembersList[0].AccessGroupMemberPublicKey)
	assert.Equal(t, []byte{0xbe, 0xef}, m.AccessGroupMembersList[0].EncryptedKey)
	assert.Equal(t, ExtraDataMap{"role": []byte("admin")}, m.AccessGroupMembersList[0].ExtraData)

	spec, err = ConstructRemoveAccessGroupMembers(req, Defaults{PublicKey: owner.base58})
	require.Nil(t, err)
	m = spec.Metadata.(*AccessGroupMembersMetadata)
	assert.Equal(t, AccessGroupMemberOperationRemove, m.AccessGroupMemberOperationType)
	assert.Empty(t, m.AccessGroupMembersList[0].EncryptedKey)
}

func TestConstructDAOCoin_Operations(t *testing.T) {
	key := newTestKey(t, 0x11, NetworkMainNet)
	defaults := Defaults{PublicKey: key.base58}

	spec, err := ConstructDAOCoin(&DAOCoinRequest{OperationType: "DISABLE_MINTING"}, defaults)
	require.Nil(t, err)
	assert.Equal(t, &DAOCoinMetadata{
		ProfilePublicKey: key.pub,
		OperationType:    DAOCoinOperationDisableMinting,
		CoinsToMintNanos: []byte{},
		CoinsToBurnNanos: []byte{},
	}, spec.Metadata)

	spec, err = ConstructDAOCoin(&DAOCoinRequest{
		OperationType:             "update_transfer_restriction_status",
		TransferRestrictionStatus: "dao_members_only",
	}, defaults)
	require.Nil(t, err)
	assert.Equal(t, TransferRestrictionDAOMembersOnly, spec.Metadata.(*DAOCoinMetadata).TransferRestrictionStatus)

	_, err = ConstructDAOCoin(&DAOCoinRequest{OperationType: "update_transfer_restriction_status"}, defaults)
	assert.True(t, errors.Is(err, ErrMissingRequiredField))

	_, err = ConstructDAOCoin(&DAOCoinRequest{OperationType: "update_transfer_restriction_status", TransferRestrictionStatus: "nobody"}, defaults)
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))

	_, err = ConstructDAOCoin(&DAOCoinRequest{OperationType: "melt"}, defaults)
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))

	spec, err = ConstructDAOCoin(&DAOCoinRequest{OperationType: "mint", CoinsToMintNanos: "1000000"}, defaults)
	require.Nil(t, err)
	assert.Equal(t, []byte{0x0f, 0x42, 0x40}, spec.Metadata.(*DAOCoinMetadata).CoinsToMintNanos)
	assert.Equal(t, "dao-coin", spec.Endpoint)
}
