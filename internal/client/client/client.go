package client

import (
	"context"

	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/token"
)

// NewGroup describes a group to create. The key is already encrypted under
// the creator's data encryption key.
type NewGroup struct {
	Name              string
	Description       string
	ImageBase64       string
	Open              bool
	EncryptedGroupKey []byte
	GroupKeyIV        []byte
}

type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt, verifier, defaultGroupKey, defaultGroupKeyIV []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) error
	Ping(ctx context.Context) error

	ListContacts(ctx context.Context) ([]directory.ContactRecord, error)
	AddContact(ctx context.Context, contactID string) (directory.ContactRecord, error)
	ListGroups(ctx context.Context) ([]directory.GroupRecord, error)
	CreateGroup(ctx context.Context, g NewGroup) (directory.GroupRecord, error)
	GetGroupKey(ctx context.Context, groupNumber int64) (encryptedKey, iv []byte, err error)

	ShareGroup(ctx context.Context, groupNumber, contactNumber int64, sealedKey, sealNonce []byte) (string, error)
	ListShares(ctx context.Context) ([]rpc.Share, error)
	AcceptShare(ctx context.Context, shareID string, encryptedGroupKey, groupKeyIV []byte) (directory.GroupRecord, error)
	SetMemberPermissions(ctx context.Context, groupNumber, contactNumber int64, code int) error

	WrapMessage(ctx context.Context, groupNumber int64, iv, rawCipherText []byte, timeOut int64) ([]byte, error)
	RevealMessages(ctx context.Context, items []rpc.RevealItem) ([]token.Reveal, error)

	GetImageUploadURL(ctx context.Context) (key, url string, err error)
	SetGroupImage(ctx context.Context, groupNumber int64, imageKey string) error
	GetImageDownloadURL(ctx context.Context, key string) (string, error)
}
