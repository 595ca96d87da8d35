package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gliphic.v1.Gliphic"

const (
	MethodRegisterUser         = "/" + ServiceName + "/RegisterUser"
	MethodGetSalt              = "/" + ServiceName + "/GetSalt"
	MethodLogin                = "/" + ServiceName + "/Login"
	MethodRefreshToken         = "/" + ServiceName + "/RefreshToken"
	MethodPing                 = "/" + ServiceName + "/Ping"
	MethodListContacts         = "/" + ServiceName + "/ListContacts"
	MethodAddContact           = "/" + ServiceName + "/AddContact"
	MethodListGroups           = "/" + ServiceName + "/ListGroups"
	MethodCreateGroup          = "/" + ServiceName + "/CreateGroup"
	MethodGetGroupKey          = "/" + ServiceName + "/GetGroupKey"
	MethodShareGroup           = "/" + ServiceName + "/ShareGroup"
	MethodListShares           = "/" + ServiceName + "/ListShares"
	MethodAcceptShare          = "/" + ServiceName + "/AcceptShare"
	MethodSetMemberPermissions = "/" + ServiceName + "/SetMemberPermissions"
	MethodWrapMessage          = "/" + ServiceName + "/WrapMessage"
	MethodRevealMessages       = "/" + ServiceName + "/RevealMessages"
	MethodGetImageUploadURL    = "/" + ServiceName + "/GetImageUploadURL"
	MethodSetGroupImage        = "/" + ServiceName + "/SetGroupImage"
	MethodGetImageDownloadURL  = "/" + ServiceName + "/GetImageDownloadURL"
)

// PublicMethods can be called without an access token.
var PublicMethods = map[string]bool{
	MethodRegisterUser: true,
	MethodGetSalt:      true,
	MethodLogin:        true,
	MethodRefreshToken: true,
	MethodPing:         true,
}

// GliphicServer is the server API for the gliphic service.
type GliphicServer interface {
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*LoginResponse, error)
	Ping(context.Context, *Empty) (*PingResponse, error)

	ListContacts(context.Context, *Empty) (*ListContactsResponse, error)
	AddContact(context.Context, *AddContactRequest) (*AddContactResponse, error)
	ListGroups(context.Context, *Empty) (*ListGroupsResponse, error)
	CreateGroup(context.Context, *CreateGroupRequest) (*GroupResponse, error)
	GetGroupKey(context.Context, *GroupNumberRequest) (*GroupKeyResponse, error)

	ShareGroup(context.Context, *ShareGroupRequest) (*ShareGroupResponse, error)
	ListShares(context.Context, *Empty) (*ListSharesResponse, error)
	AcceptShare(context.Context, *AcceptShareRequest) (*GroupResponse, error)
	SetMemberPermissions(context.Context, *SetMemberPermissionsRequest) (*Empty, error)

	WrapMessage(context.Context, *WrapMessageRequest) (*WrapMessageResponse, error)
	RevealMessages(context.Context, *RevealMessagesRequest) (*RevealMessagesResponse, error)

	GetImageUploadURL(context.Context, *Empty) (*ImageUploadURLResponse, error)
	SetGroupImage(context.Context, *SetGroupImageRequest) (*Empty, error)
	GetImageDownloadURL(context.Context, *ImageDownloadURLRequest) (*ImageDownloadURLResponse, error)
}

// UnimplementedGliphicServer answers every call with codes.Unimplemented.
// Embed it to implement a subset of the service.
type UnimplementedGliphicServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedGliphicServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, unimplemented("RegisterUser")
}
func (UnimplementedGliphicServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, unimplemented("GetSalt")
}
func (UnimplementedGliphicServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedGliphicServer) RefreshToken(context.Context, *RefreshTokenRequest) (*LoginResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedGliphicServer) Ping(context.Context, *Empty) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedGliphicServer) ListContacts(context.Context, *Empty) (*ListContactsResponse, error) {
	return nil, unimplemented("ListContacts")
}
func (UnimplementedGliphicServer) AddContact(context.Context, *AddContactRequest) (*AddContactResponse, error) {
	return nil, unimplemented("AddContact")
}
func (UnimplementedGliphicServer) ListGroups(context.Context, *Empty) (*ListGroupsResponse, error) {
	return nil, unimplemented("ListGroups")
}
func (UnimplementedGliphicServer) CreateGroup(context.Context, *CreateGroupRequest) (*GroupResponse, error) {
	return nil, unimplemented("CreateGroup")
}
func (UnimplementedGliphicServer) GetGroupKey(context.Context, *GroupNumberRequest) (*GroupKeyResponse, error) {
	return nil, unimplemented("GetGroupKey")
}
func (UnimplementedGliphicServer) ShareGroup(context.Context, *ShareGroupRequest) (*ShareGroupResponse, error) {
	return nil, unimplemented("ShareGroup")
}
func (UnimplementedGliphicServer) ListShares(context.Context, *Empty) (*ListSharesResponse, error) {
	return nil, unimplemented("ListShares")
}
func (UnimplementedGliphicServer) AcceptShare(context.Context, *AcceptShareRequest) (*GroupResponse, error) {
	return nil, unimplemented("AcceptShare")
}
func (UnimplementedGliphicServer) SetMemberPermissions(context.Context, *SetMemberPermissionsRequest) (*Empty, error) {
	return nil, unimplemented("SetMemberPermissions")
}
func (UnimplementedGliphicServer) WrapMessage(context.Context, *WrapMessageRequest) (*WrapMessageResponse, error) {
	return nil, unimplemented("WrapMessage")
}
func (UnimplementedGliphicServer) RevealMessages(context.Context, *RevealMessagesRequest) (*RevealMessagesResponse, error) {
	return nil, unimplemented("RevealMessages")
}
func (UnimplementedGliphicServer) GetImageUploadURL(context.Context, *Empty) (*ImageUploadURLResponse, error) {
	return nil, unimplemented("GetImageUploadURL")
}
func (UnimplementedGliphicServer) SetGroupImage(context.Context, *SetGroupImageRequest) (*Empty, error) {
	return nil, unimplemented("SetGroupImage")
}
func (UnimplementedGliphicServer) GetImageDownloadURL(context.Context, *ImageDownloadURLRequest) (*ImageDownloadURLResponse, error) {
	return nil, unimplemented("GetImageDownloadURL")
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(GliphicServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GliphicServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GliphicServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the gliphic service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GliphicServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterUser", Handler: unary(MethodRegisterUser, GliphicServer.RegisterUser)},
		{MethodName: "GetSalt", Handler: unary(MethodGetSalt, GliphicServer.GetSalt)},
		{MethodName: "Login", Handler: unary(MethodLogin, GliphicServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(MethodRefreshToken, GliphicServer.RefreshToken)},
		{MethodName: "Ping", Handler: unary(MethodPing, GliphicServer.Ping)},
		{MethodName: "ListContacts", Handler: unary(MethodListContacts, GliphicServer.ListContacts)},
		{MethodName: "AddContact", Handler: unary(MethodAddContact, GliphicServer.AddContact)},
		{MethodName: "ListGroups", Handler: unary(MethodListGroups, GliphicServer.ListGroups)},
		{MethodName: "CreateGroup", Handler: unary(MethodCreateGroup, GliphicServer.CreateGroup)},
		{MethodName: "GetGroupKey", Handler: unary(MethodGetGroupKey, GliphicServer.GetGroupKey)},
		{MethodName: "ShareGroup", Handler: unary(MethodShareGroup, GliphicServer.ShareGroup)},
		{MethodName: "ListShares", Handler: unary(MethodListShares, GliphicServer.ListShares)},
		{MethodName: "AcceptShare", Handler: unary(MethodAcceptShare, GliphicServer.AcceptShare)},
		{MethodName: "SetMemberPermissions", Handler: unary(MethodSetMemberPermissions, GliphicServer.SetMemberPermissions)},
		{MethodName: "WrapMessage", Handler: unary(MethodWrapMessage, GliphicServer.WrapMessage)},
		{MethodName: "RevealMessages", Handler: unary(MethodRevealMessages, GliphicServer.RevealMessages)},
		{MethodName: "GetImageUploadURL", Handler: unary(MethodGetImageUploadURL, GliphicServer.GetImageUploadURL)},
		{MethodName: "SetGroupImage", Handler: unary(MethodSetGroupImage, GliphicServer.SetGroupImage)},
		{MethodName: "GetImageDownloadURL", Handler: unary(MethodGetImageDownloadURL, GliphicServer.GetImageDownloadURL)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gliphic/v1/gliphic",
}

func RegisterGliphicServer(s grpc.ServiceRegistrar, srv GliphicServer) {
	s.RegisterService(&ServiceDesc, srv)
}
