// Package grpc exposes the gliphic services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/logging"
	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/dmitrijs2005/gliphic/internal/server/services"
	"github.com/dmitrijs2005/gliphic/internal/token"
	"google.golang.org/grpc"
)

type userSvc interface {
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Register(ctx context.Context, username string, salt, verifier, defaultGroupKey, defaultGroupKeyIV []byte) (*models.User, error)
	GetSalt(ctx context.Context, userName string) ([]byte, error)
	Login(ctx context.Context, userName string, verifierCandidate []byte) (*services.TokenPair, error)
}

type contactSvc interface {
	ListContacts(ctx context.Context, userID string) ([]directory.ContactRecord, error)
	AddContact(ctx context.Context, userID, contactID string) (*directory.ContactRecord, error)
}

type groupSvc interface {
	ListGroups(ctx context.Context, userID string) ([]directory.GroupRecord, error)
	CreateGroup(ctx context.Context, userID string, in services.NewGroupInput) (*directory.GroupRecord, error)
	GetGroupKey(ctx context.Context, userID string, number int64) ([]byte, []byte, error)
	ShareGroup(ctx context.Context, userID string, groupNumber, contactNumber int64, sealedKey, sealNonce []byte) (string, error)
	ListShares(ctx context.Context, userID string) ([]services.PendingShare, error)
	AcceptShare(ctx context.Context, userID, shareID string, encryptedKey, iv []byte) (*directory.GroupRecord, error)
	SetMemberPermissions(ctx context.Context, userID string, groupNumber, contactNumber int64, code int) error
}

type messageSvc interface {
	Wrap(ctx context.Context, userID string, groupNumber int64, iv, rawCipherText []byte, timeOut int64) ([]byte, error)
	Reveal(ctx context.Context, userID string, items []services.RevealItem) ([]token.Reveal, error)
}

type imageSvc interface {
	GetUploadURL(ctx context.Context) (string, string, error)
	GetDownloadURL(ctx context.Context, key string) (string, error)
	SetGroupImage(ctx context.Context, userID string, groupNumber int64, key string) error
}

// Services bundles the business logic the server dispatches to.
type Services struct {
	Users    userSvc
	Contacts contactSvc
	Groups   groupSvc
	Messages messageSvc
	Images   imageSvc
}

type GRPCServer struct {
	rpc.UnimplementedGliphicServer
	address   string
	users     userSvc
	contacts  contactSvc
	groups    groupSvc
	messages  messageSvc
	images    imageSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     svc.Users,
		contacts:  svc.Contacts,
		groups:    svc.Groups,
		messages:  svc.Messages,
		images:    svc.Images,
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.accessTokenInterceptor))

	rpc.RegisterGliphicServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
