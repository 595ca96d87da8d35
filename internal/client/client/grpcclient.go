package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/token"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const saltTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.GliphicClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

// accessTokenInterceptor attaches the access token to every call. When the
// server reports the token as expired it trades the refresh token for a new
// pair and retries the call once.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	accessToken, refreshToken := s.tokens()
	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refreshToken})
	if rerr != nil {
		return rerr
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient connects to endpointURL without transport security. opts
// are appended to the default dial options.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewGliphicClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, userName string, salt, verifier, defaultGroupKey, defaultGroupKeyIV []byte) error {
	req := &rpc.RegisterUserRequest{
		Username:          userName,
		Salt:              salt,
		Verifier:          verifier,
		DefaultGroupKey:   defaultGroupKey,
		DefaultGroupKeyIV: defaultGroupKeyIV,
	}
	if _, err := s.client.RegisterUser(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, saltTimeout)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &rpc.GetSaltRequest{Username: userName})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Salt, nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, verifier []byte) error {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Username: userName, Verifier: verifier})
	if err != nil {
		return s.mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) ListContacts(ctx context.Context) ([]directory.ContactRecord, error) {
	resp, err := s.client.ListContacts(ctx, &rpc.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Contacts, nil
}

func (s *GRPCClient) AddContact(ctx context.Context, contactID string) (directory.ContactRecord, error) {
	resp, err := s.client.AddContact(ctx, &rpc.AddContactRequest{ContactID: contactID})
	if err != nil {
		return directory.ContactRecord{}, s.mapError(err)
	}
	return resp.Contact, nil
}

func (s *GRPCClient) ListGroups(ctx context.Context) ([]directory.GroupRecord, error) {
	resp, err := s.client.ListGroups(ctx, &rpc.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Groups, nil
}

func (s *GRPCClient) CreateGroup(ctx context.Context, g NewGroup) (directory.GroupRecord, error) {
	resp, err := s.client.CreateGroup(ctx, &rpc.CreateGroupRequest{
		Name:              g.Name,
		Description:       g.Description,
		ImageBase64:       g.ImageBase64,
		Open:              g.Open,
		EncryptedGroupKey: g.EncryptedGroupKey,
		GroupKeyIV:        g.GroupKeyIV,
	})
	if err != nil {
		return directory.GroupRecord{}, s.mapError(err)
	}
	return resp.Group, nil
}

func (s *GRPCClient) GetGroupKey(ctx context.Context, groupNumber int64) ([]byte, []byte, error) {
	resp, err := s.client.GetGroupKey(ctx, &rpc.GroupNumberRequest{GroupNumber: groupNumber})
	if err != nil {
		return nil, nil, s.mapError(err)
	}
	return resp.EncryptedGroupKey, resp.GroupKeyIV, nil
}

func (s *GRPCClient) ShareGroup(ctx context.Context, groupNumber, contactNumber int64, sealedKey, sealNonce []byte) (string, error) {
	resp, err := s.client.ShareGroup(ctx, &rpc.ShareGroupRequest{
		GroupNumber:   groupNumber,
		ContactNumber: contactNumber,
		SealedKey:     sealedKey,
		SealNonce:     sealNonce,
	})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.ShareID, nil
}

func (s *GRPCClient) ListShares(ctx context.Context) ([]rpc.Share, error) {
	resp, err := s.client.ListShares(ctx, &rpc.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Shares, nil
}

func (s *GRPCClient) AcceptShare(ctx context.Context, shareID string, encryptedGroupKey, groupKeyIV []byte) (directory.GroupRecord, error) {
	resp, err := s.client.AcceptShare(ctx, &rpc.AcceptShareRequest{
		ShareID:           shareID,
		EncryptedGroupKey: encryptedGroupKey,
		GroupKeyIV:        groupKeyIV,
	})
	if err != nil {
		return directory.GroupRecord{}, s.mapError(err)
	}
	return resp.Group, nil
}

func (s *GRPCClient) SetMemberPermissions(ctx context.Context, groupNumber, contactNumber int64, code int) error {
	_, err := s.client.SetMemberPermissions(ctx, &rpc.SetMemberPermissionsRequest{
		GroupNumber:   groupNumber,
		ContactNumber: contactNumber,
		Permissions:   code,
	})
	return s.mapError(err)
}

func (s *GRPCClient) WrapMessage(ctx context.Context, groupNumber int64, iv, rawCipherText []byte, timeOut int64) ([]byte, error) {
	resp, err := s.client.WrapMessage(ctx, &rpc.WrapMessageRequest{
		GroupNumber:   groupNumber,
		IV:            iv,
		RawCipherText: rawCipherText,
		TimeOut:       timeOut,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Blob, nil
}

// RevealMessages asks the server to validate and reveal items. The answer is
// aligned with items; an unknown status code is reported as malformed.
func (s *GRPCClient) RevealMessages(ctx context.Context, items []rpc.RevealItem) ([]token.Reveal, error) {
	resp, err := s.client.RevealMessages(ctx, &rpc.RevealMessagesRequest{Items: items})
	if err != nil {
		return nil, s.mapError(err)
	}
	if len(resp.Results) != len(items) {
		return nil, fmt.Errorf("%w: %d results for %d messages", ErrRejected, len(resp.Results), len(items))
	}

	out := make([]token.Reveal, len(resp.Results))
	for i, r := range resp.Results {
		st, err := token.MessageStatusFromCode(r.Status)
		if err != nil {
			st = token.StatusMalformed
		}
		out[i] = token.Reveal{
			Status:            st,
			TimeOut:           r.TimeOut,
			RawCipherText:     r.RawCipherText,
			EncryptedGroupKey: r.EncryptedGroupKey,
			GroupKeyIV:        r.GroupKeyIV,
		}
	}
	return out, nil
}

func (s *GRPCClient) GetImageUploadURL(ctx context.Context) (string, string, error) {
	resp, err := s.client.GetImageUploadURL(ctx, &rpc.Empty{})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.Key, resp.URL, nil
}

func (s *GRPCClient) SetGroupImage(ctx context.Context, groupNumber int64, imageKey string) error {
	_, err := s.client.SetGroupImage(ctx, &rpc.SetGroupImageRequest{GroupNumber: groupNumber, ImageKey: imageKey})
	return s.mapError(err)
}

func (s *GRPCClient) GetImageDownloadURL(ctx context.Context, key string) (string, error) {
	resp, err := s.client.GetImageDownloadURL(ctx, &rpc.ImageDownloadURLRequest{Key: key})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if n, ok := rpc.UnknownGroupNumber(err); ok {
		return &UnknownGroupError{Number: n}
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrForbidden, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument, codes.AlreadyExists, codes.NotFound, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
