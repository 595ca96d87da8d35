package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// GliphicClient is the client API for the gliphic service.
type GliphicClient interface {
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error)

	ListContacts(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListContactsResponse, error)
	AddContact(ctx context.Context, in *AddContactRequest, opts ...grpc.CallOption) (*AddContactResponse, error)
	ListGroups(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListGroupsResponse, error)
	CreateGroup(ctx context.Context, in *CreateGroupRequest, opts ...grpc.CallOption) (*GroupResponse, error)
	GetGroupKey(ctx context.Context, in *GroupNumberRequest, opts ...grpc.CallOption) (*GroupKeyResponse, error)

	ShareGroup(ctx context.Context, in *ShareGroupRequest, opts ...grpc.CallOption) (*ShareGroupResponse, error)
	ListShares(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSharesResponse, error)
	AcceptShare(ctx context.Context, in *AcceptShareRequest, opts ...grpc.CallOption) (*GroupResponse, error)
	SetMemberPermissions(ctx context.Context, in *SetMemberPermissionsRequest, opts ...grpc.CallOption) (*Empty, error)

	WrapMessage(ctx context.Context, in *WrapMessageRequest, opts ...grpc.CallOption) (*WrapMessageResponse, error)
	RevealMessages(ctx context.Context, in *RevealMessagesRequest, opts ...grpc.CallOption) (*RevealMessagesResponse, error)

	GetImageUploadURL(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ImageUploadURLResponse, error)
	SetGroupImage(ctx context.Context, in *SetGroupImageRequest, opts ...grpc.CallOption) (*Empty, error)
	GetImageDownloadURL(ctx context.Context, in *ImageDownloadURLRequest, opts ...grpc.CallOption) (*ImageDownloadURLResponse, error)
}

type gliphicClient struct {
	cc grpc.ClientConnInterface
}

func NewGliphicClient(cc grpc.ClientConnInterface) GliphicClient {
	return &gliphicClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gliphicClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, MethodRegisterUser, in, opts)
}

func (c *gliphicClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MethodGetSalt, in, opts)
}

func (c *gliphicClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *gliphicClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *gliphicClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *gliphicClient) ListContacts(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListContactsResponse, error) {
	return invoke[ListContactsResponse](ctx, c.cc, MethodListContacts, in, opts)
}

func (c *gliphicClient) AddContact(ctx context.Context, in *AddContactRequest, opts ...grpc.CallOption) (*AddContactResponse, error) {
	return invoke[AddContactResponse](ctx, c.cc, MethodAddContact, in, opts)
}

func (c *gliphicClient) ListGroups(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListGroupsResponse, error) {
	return invoke[ListGroupsResponse](ctx, c.cc, MethodListGroups, in, opts)
}

func (c *gliphicClient) CreateGroup(ctx context.Context, in *CreateGroupRequest, opts ...grpc.CallOption) (*GroupResponse, error) {
	return invoke[GroupResponse](ctx, c.cc, MethodCreateGroup, in, opts)
}

func (c *gliphicClient) GetGroupKey(ctx context.Context, in *GroupNumberRequest, opts ...grpc.CallOption) (*GroupKeyResponse, error) {
	return invoke[GroupKeyResponse](ctx, c.cc, MethodGetGroupKey, in, opts)
}

func (c *gliphicClient) ShareGroup(ctx context.Context, in *ShareGroupRequest, opts ...grpc.CallOption) (*ShareGroupResponse, error) {
	return invoke[ShareGroupResponse](ctx, c.cc, MethodShareGroup, in, opts)
}

func (c *gliphicClient) ListShares(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSharesResponse, error) {
	return invoke[ListSharesResponse](ctx, c.cc, MethodListShares, in, opts)
}

func (c *gliphicClient) AcceptShare(ctx context.Context, in *AcceptShareRequest, opts ...grpc.CallOption) (*GroupResponse, error) {
	return invoke[GroupResponse](ctx, c.cc, MethodAcceptShare, in, opts)
}

func (c *gliphicClient) SetMemberPermissions(ctx context.Context, in *SetMemberPermissionsRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodSetMemberPermissions, in, opts)
}

func (c *gliphicClient) WrapMessage(ctx context.Context, in *WrapMessageRequest, opts ...grpc.CallOption) (*WrapMessageResponse, error) {
	return invoke[WrapMessageResponse](ctx, c.cc, MethodWrapMessage, in, opts)
}

func (c *gliphicClient) RevealMessages(ctx context.Context, in *RevealMessagesRequest, opts ...grpc.CallOption) (*RevealMessagesResponse, error) {
	return invoke[RevealMessagesResponse](ctx, c.cc, MethodRevealMessages, in, opts)
}

func (c *gliphicClient) GetImageUploadURL(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ImageUploadURLResponse, error) {
	return invoke[ImageUploadURLResponse](ctx, c.cc, MethodGetImageUploadURL, in, opts)
}

func (c *gliphicClient) SetGroupImage(ctx context.Context, in *SetGroupImageRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodSetGroupImage, in, opts)
}

func (c *gliphicClient) GetImageDownloadURL(ctx context.Context, in *ImageDownloadURLRequest, opts ...grpc.CallOption) (*ImageDownloadURLResponse, error) {
	return invoke[ImageDownloadURLResponse](ctx, c.cc, MethodGetImageDownloadURL, in, opts)
}
