package grpc

import (
	"context"

	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/server/services"
)

func loginResponse(p *services.TokenPair) *rpc.LoginResponse {
	return &rpc.LoginResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}

// RegisterUser creates the account together with its contact entry and
// default group.
func (s *GRPCServer) RegisterUser(ctx context.Context, req *rpc.RegisterUserRequest) (*rpc.RegisterUserResponse, error) {
	user, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier, req.DefaultGroupKey, req.DefaultGroupKeyIV)
	if err != nil {
		return nil, s.toStatus(ctx, "RegisterUser", err)
	}
	s.logger.Info(ctx, "user registered", "request_id", requestIDFromContext(ctx),
		"username", req.Username, "contact", user.ContactNumber)
	return &rpc.RegisterUserResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *rpc.GetSaltRequest) (*rpc.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, "GetSalt", err)
	}
	return &rpc.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	pair, err := s.users.Login(ctx, req.Username, req.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, "Login", err)
	}
	s.logger.Debug(ctx, "user logged in", "request_id", requestIDFromContext(ctx), "username", req.Username)
	return loginResponse(pair), nil
}

// RefreshToken trades a refresh token for a new pair. The old refresh token
// stops working.
func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.LoginResponse, error) {
	pair, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "RefreshToken", err)
	}
	return loginResponse(pair), nil
}

func (s *GRPCServer) Ping(context.Context, *rpc.Empty) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}
