package grpc

import (
	"context"

	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/server/services"
)

func (s *GRPCServer) ListContacts(ctx context.Context, _ *rpc.Empty) (*rpc.ListContactsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contacts.ListContacts(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "ListContacts", err)
	}
	return &rpc.ListContactsResponse{Contacts: contacts}, nil
}

func (s *GRPCServer) AddContact(ctx context.Context, req *rpc.AddContactRequest) (*rpc.AddContactResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	contact, err := s.contacts.AddContact(ctx, userID, req.ContactID)
	if err != nil {
		return nil, s.toStatus(ctx, "AddContact", err)
	}
	return &rpc.AddContactResponse{Contact: *contact}, nil
}

func (s *GRPCServer) ListGroups(ctx context.Context, _ *rpc.Empty) (*rpc.ListGroupsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.ListGroups(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "ListGroups", err)
	}
	return &rpc.ListGroupsResponse{Groups: groups}, nil
}

func (s *GRPCServer) CreateGroup(ctx context.Context, req *rpc.CreateGroupRequest) (*rpc.GroupResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	group, err := s.groups.CreateGroup(ctx, userID, services.NewGroupInput{
		Name:              req.Name,
		Description:       req.Description,
		ImageBase64:       req.ImageBase64,
		Open:              req.Open,
		EncryptedGroupKey: req.EncryptedGroupKey,
		GroupKeyIV:        req.GroupKeyIV,
	})
	if err != nil {
		return nil, s.toStatus(ctx, "CreateGroup", err)
	}
	s.logger.Info(ctx, "Group created", "user", userID, "group", group.Number)
	return &rpc.GroupResponse{Group: *group}, nil
}

func (s *GRPCServer) GetGroupKey(ctx context.Context, req *rpc.GroupNumberRequest) (*rpc.GroupKeyResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	key, iv, err := s.groups.GetGroupKey(ctx, userID, req.GroupNumber)
	if err != nil {
		return nil, s.toStatus(ctx, "GetGroupKey", err)
	}
	return &rpc.GroupKeyResponse{EncryptedGroupKey: key, GroupKeyIV: iv}, nil
}

func (s *GRPCServer) ShareGroup(ctx context.Context, req *rpc.ShareGroupRequest) (*rpc.ShareGroupResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.groups.ShareGroup(ctx, userID, req.GroupNumber, req.ContactNumber, req.SealedKey, req.SealNonce)
	if err != nil {
		return nil, s.toStatus(ctx, "ShareGroup", err)
	}
	return &rpc.ShareGroupResponse{ShareID: id}, nil
}

func (s *GRPCServer) ListShares(ctx context.Context, _ *rpc.Empty) (*rpc.ListSharesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.groups.ListShares(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "ListShares", err)
	}
	out := make([]rpc.Share, 0, len(pending))
	for _, p := range pending {
		out = append(out, rpc.Share{
			ID:                p.ID,
			GroupIDBase64:     p.GroupIDBase64,
			GroupName:         p.GroupName,
			FromContactNumber: p.FromContactNumber,
			FromName:          p.FromName,
			SealedKey:         p.SealedKey,
			SealNonce:         p.SealNonce,
		})
	}
	return &rpc.ListSharesResponse{Shares: out}, nil
}

func (s *GRPCServer) AcceptShare(ctx context.Context, req *rpc.AcceptShareRequest) (*rpc.GroupResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	group, err := s.groups.AcceptShare(ctx, userID, req.ShareID, req.EncryptedGroupKey, req.GroupKeyIV)
	if err != nil {
		return nil, s.toStatus(ctx, "AcceptShare", err)
	}
	return &rpc.GroupResponse{Group: *group}, nil
}

func (s *GRPCServer) SetMemberPermissions(ctx context.Context, req *rpc.SetMemberPermissionsRequest) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.groups.SetMemberPermissions(ctx, userID, req.GroupNumber, req.ContactNumber, req.Permissions); err != nil {
		return nil, s.toStatus(ctx, "SetMemberPermissions", err)
	}
	s.logger.Info(ctx, "Permissions changed", "user", userID, "group", req.GroupNumber,
		"contact", req.ContactNumber, "permissions", req.Permissions)
	return &rpc.Empty{}, nil
}
