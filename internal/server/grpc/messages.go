package grpc

import (
	"context"

	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/server/services"
)

func (s *GRPCServer) WrapMessage(ctx context.Context, req *rpc.WrapMessageRequest) (*rpc.WrapMessageResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	blob, err := s.messages.Wrap(ctx, userID, req.GroupNumber, req.IV, req.RawCipherText, req.TimeOut)
	if err != nil {
		return nil, s.toStatus(ctx, "WrapMessage", err)
	}
	return &rpc.WrapMessageResponse{Blob: blob}, nil
}

func (s *GRPCServer) RevealMessages(ctx context.Context, req *rpc.RevealMessagesRequest) (*rpc.RevealMessagesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]services.RevealItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = services.RevealItem{GroupNumber: it.GroupNumber, IV: it.IV, Blob: it.Blob}
	}
	reveals, err := s.messages.Reveal(ctx, userID, items)
	if err != nil {
		return nil, s.toStatus(ctx, "RevealMessages", err)
	}
	out := make([]rpc.RevealResult, len(reveals))
	for i, r := range reveals {
		out[i] = rpc.RevealResult{
			Status:            int(r.Status),
			RawCipherText:     r.RawCipherText,
			EncryptedGroupKey: r.EncryptedGroupKey,
			GroupKeyIV:        r.GroupKeyIV,
			TimeOut:           r.TimeOut,
		}
	}
	return &rpc.RevealMessagesResponse{Results: out}, nil
}

func (s *GRPCServer) GetImageUploadURL(ctx context.Context, _ *rpc.Empty) (*rpc.ImageUploadURLResponse, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}
	key, url, err := s.images.GetUploadURL(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "GetImageUploadURL", err)
	}
	return &rpc.ImageUploadURLResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) SetGroupImage(ctx context.Context, req *rpc.SetGroupImageRequest) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.images.SetGroupImage(ctx, userID, req.GroupNumber, req.ImageKey); err != nil {
		return nil, s.toStatus(ctx, "SetGroupImage", err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) GetImageDownloadURL(ctx context.Context, req *rpc.ImageDownloadURLRequest) (*rpc.ImageDownloadURLResponse, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}
	url, err := s.images.GetDownloadURL(ctx, req.Key)
	if err != nil {
		return nil, s.toStatus(ctx, "GetImageDownloadURL", err)
	}
	return &rpc.ImageDownloadURLResponse{URL: url}, nil
}
