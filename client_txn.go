package deso

import "context"

type constructor[R any] func(req *R, defaults Defaults) (*TxnSpec, error)

func submitWith[R any](ctx context.Context, c *Client, construct constructor[R], req *R, options *SubmitOptions) (result *SubmitResult, err error) {
	spec, err := construct(req, c.Defaults())
	if err != nil {
		return
	}
	return c.Submit(ctx, spec, options)
}

func (c *Client) CreateNFT(ctx context.Context, req *CreateNFTRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructCreateNFT, req, options)
}

func (c *Client) UpdateNFT(ctx context.Context, req *UpdateNFTRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructUpdateNFT, req, options)
}

func (c *Client) CreateNFTBid(ctx context.Context, req *CreateNFTBidRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructNFTBid, req, options)
}

func (c *Client) AcceptNFTBid(ctx context.Context, req *AcceptNFTBidRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructAcceptNFTBid, req, options)
}

func (c *Client) TransferNFT(ctx context.Context, req *TransferNFTRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructTransferNFT, req, options)
}

func (c *Client) AcceptNFTTransfer(ctx context.Context, req *AcceptNFTTransferRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructAcceptNFTTransfer, req, options)
}

func (c *Client) BurnNFT(ctx context.Context, req *BurnNFTRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructBurnNFT, req, options)
}

func (c *Client) CreateAccessGroup(ctx context.Context, req *AccessGroupRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructCreateAccessGroup, req, options)
}

func (c *Client) UpdateAccessGroup(ctx context.Context, req *AccessGroupRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructUpdateAccessGroup, req, options)
}

func (c *Client) AddAccessGroupMembers(ctx context.Context, req *AccessGroupMembersRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructAddAccessGroupMembers, req, options)
}

func (c *Client) RemoveAccessGroupMembers(ctx context.Context, req *AccessGroupMembersRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructRemoveAccessGroupMembers, req, options)
}

func (c *Client) UpdateAccessGroupMembers(ctx context.Context, req *AccessGroupMembersRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructUpdateAccessGroupMembers, req, options)
}

func (c *Client) DAOCoin(ctx context.Context, req *DAOCoinRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructDAOCoin, req, options)
}

func (c *Client) TransferDAOCoin(ctx context.Context, req *TransferDAOCoinRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructTransferDAOCoin, req, options)
}

func (c *Client) DAOCoinLimitOrder(ctx context.Context, req *DAOCoinLimitOrderRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructDAOCoinLimitOrder, req, options)
}

func (c *Client) CancelDAOCoinLimitOrder(ctx context.Context, req *CancelDAOCoinLimitOrderRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructCancelDAOCoinLimitOrder, req, options)
}

func (c *Client) AuthorizeDerivedKey(ctx context.Context, req *AuthorizeDerivedKeyRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructAuthorizeDerivedKey, req, options)
}

func (c *Client) CreateUserAssociation(ctx context.Context, req *CreateUserAssociationRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructCreateUserAssociation, req, options)
}

func (c *Client) DeleteUserAssociation(ctx context.Context, req *DeleteAssociationRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructDeleteUserAssociation, req, options)
}

func (c *Client) CreatePostAssociation(ctx context.Context, req *CreatePostAssociationRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructCreatePostAssociation, req, options)
}

func (c *Client) DeletePostAssociation(ctx context.Context, req *DeleteAssociationRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructDeletePostAssociation, req, options)
}

func (c *Client) SendDMMessage(ctx context.Context, req *NewMessageRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructSendDMMessage, req, options)
}

func (c *Client) UpdateDMMessage(ctx context.Context, req *NewMessageRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructUpdateDMMessage, req, options)
}

func (c *Client) SendGroupChatMessage(ctx context.Context, req *NewMessageRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructSendGroupChatMessage, req, options)
}

func (c *Client) UpdateGroupChatMessage(ctx context.Context, req *NewMessageRequest, options *SubmitOptions) (*SubmitResult, error) {
	return submitWith(ctx, c, ConstructUpdateGroupChatMessage, req, options)
}
