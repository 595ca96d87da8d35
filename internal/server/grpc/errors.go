package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/server/services"
	"github.com/dmitrijs2005/gliphic/internal/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus converts a service error into a gRPC status. Internal failures
// are logged and hidden from the caller.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	var fieldErr *validation.FieldError
	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.As(err, &fieldErr):
		return status.Error(codes.InvalidArgument, fieldErr.Msg)
	case errors.Is(err, common.ErrorInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	}
	if number, ok := services.IsUnknownGroup(err); ok {
		return rpc.UnknownGroupError(number)
	}
	if errors.Is(err, common.ErrorNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}

	s.logger.Error(ctx, "internal error", "method", method, "request_id", requestIDFromContext(ctx), "error", err)
	return status.Error(codes.Internal, "internal error")
}
