package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/dmitrijs2005/gliphic/internal/base256"
	"github.com/dmitrijs2005/gliphic/internal/client/client"
	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/filex"
	"github.com/dmitrijs2005/gliphic/internal/netx"
	"github.com/dmitrijs2005/gliphic/internal/permissions"
	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/validation"
)

// GroupService creates groups and hands their keys to other members.
type GroupService interface {
	Create(ctx context.Context, name, description string, open bool, dataKey []byte) (*directory.Group, error)
	// Share seals the key of group number under a key derived from
	// passphrase and offers it to contact number.
	Share(ctx context.Context, groupNumber, contactNumber int64, passphrase, dataKey []byte) (string, error)
	Shares(ctx context.Context) ([]rpc.Share, error)
	// Accept unseals a share with passphrase, stores the group key under
	// dataKey and joins the group.
	Accept(ctx context.Context, shareID string, passphrase, dataKey []byte) (*directory.Group, error)
	SetPermissions(ctx context.Context, groupNumber, contactNumber int64, state permissions.State) error
	// SetImage uploads image as the custom image of the group.
	SetImage(ctx context.Context, groupNumber int64, image []byte) error
	// FetchImage downloads the custom image of the group and returns the
	// path it was saved to.
	FetchImage(ctx context.Context, groupNumber int64) (string, error)
}

type groupService struct {
	client   client.Client
	dirs     DirectoryService
	imageDir string
}

func NewGroupService(c client.Client, dirs DirectoryService, imageDir string) GroupService {
	return &groupService{client: c, dirs: dirs, imageDir: imageDir}
}

func (s *groupService) Create(ctx context.Context, name, description string, open bool, dataKey []byte) (*directory.Group, error) {
	if err := validation.CheckName(validation.Group, name); err != nil {
		return nil, err
	}
	if err := validation.CheckDescription(description); err != nil {
		return nil, err
	}
	dir := s.dirs.Directory()
	if err := dir.CheckDescriptionAvailable(description); err != nil {
		return nil, err
	}

	key := cryptox.NewKey()
	defer common.WipeByteArray(key)
	encrypted, iv, err := cryptox.Encrypt(dataKey, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting group key: %w", err)
	}

	rec, err := s.client.CreateGroup(ctx, client.NewGroup{
		Name:              name,
		Description:       description,
		Open:              open,
		EncryptedGroupKey: encrypted,
		GroupKeyIV:        iv,
	})
	if err != nil {
		return nil, err
	}
	stored, err := dir.CreateAndStoreGroups([]directory.GroupRecord{rec})
	if err != nil {
		return nil, err
	}
	return stored[0], nil
}

func rawGroupID(g *directory.Group) ([]byte, error) {
	return base256.Decode(g.ID())
}

func (s *groupService) Share(ctx context.Context, groupNumber, contactNumber int64, passphrase, dataKey []byte) (string, error) {
	if len(passphrase) == 0 {
		return "", fmt.Errorf("%w: empty passphrase", common.ErrorInvalidArgument)
	}
	dir := s.dirs.Directory()
	g, err := dir.GroupByNumber(groupNumber)
	if err != nil {
		return "", err
	}
	if _, err := dir.ContactByNumber(contactNumber); err != nil {
		return "", err
	}
	salt, err := rawGroupID(g)
	if err != nil {
		return "", err
	}

	key, err := groupKey(ctx, s.client, groupNumber, dataKey)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)

	shareKey := cryptox.DeriveShareKey(passphrase, salt)
	defer common.WipeByteArray(shareKey)
	sealed, nonce, err := cryptox.Encrypt(shareKey, key)
	if err != nil {
		return "", fmt.Errorf("sealing group key: %w", err)
	}

	return s.client.ShareGroup(ctx, groupNumber, contactNumber, sealed, nonce)
}

func (s *groupService) Shares(ctx context.Context) ([]rpc.Share, error) {
	return s.client.ListShares(ctx)
}

func (s *groupService) Accept(ctx context.Context, shareID string, passphrase, dataKey []byte) (*directory.Group, error) {
	shares, err := s.client.ListShares(ctx)
	if err != nil {
		return nil, err
	}
	var share *rpc.Share
	for i := range shares {
		if shares[i].ID == shareID {
			share = &shares[i]
			break
		}
	}
	if share == nil {
		return nil, fmt.Errorf("%w: %s", ErrShareNotFound, shareID)
	}

	salt, err := base64.StdEncoding.DecodeString(share.GroupIDBase64)
	if err != nil {
		return nil, fmt.Errorf("share group id: %w", err)
	}
	shareKey := cryptox.DeriveShareKey(passphrase, salt)
	defer common.WipeByteArray(shareKey)

	key, err := cryptox.Open(shareKey, share.SealNonce, share.SealedKey, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	defer common.WipeByteArray(key)

	encrypted, iv, err := cryptox.Encrypt(dataKey, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting group key: %w", err)
	}
	rec, err := s.client.AcceptShare(ctx, shareID, encrypted, iv)
	if err != nil {
		return nil, err
	}

	// Joining can bring in new extended contacts, so reload everything.
	if err := s.dirs.Sync(ctx); err != nil {
		var bulk *directory.BulkError
		if !errors.As(err, &bulk) {
			return nil, err
		}
	}
	return s.dirs.Directory().GroupByNumber(rec.Number)
}

func (s *groupService) SetPermissions(ctx context.Context, groupNumber, contactNumber int64, state permissions.State) error {
	if _, err := permissions.FromCode(state.Code()); err != nil {
		return err
	}
	if err := s.client.SetMemberPermissions(ctx, groupNumber, contactNumber, state.Code()); err != nil {
		return err
	}
	return s.dirs.Sync(ctx)
}

func (s *groupService) SetImage(ctx context.Context, groupNumber int64, image []byte) error {
	if len(image) == 0 {
		return fmt.Errorf("%w: empty image", common.ErrorInvalidArgument)
	}
	if len(image) > netx.MaxDownloadSize {
		return fmt.Errorf("%w: image larger than %d bytes", common.ErrorInvalidArgument, netx.MaxDownloadSize)
	}

	key, url, err := s.client.GetImageUploadURL(ctx)
	if err != nil {
		return err
	}
	if err := netx.UploadToPresignedURL(ctx, url, image, http.DetectContentType(image)); err != nil {
		return fmt.Errorf("uploading image: %w", err)
	}
	if err := s.client.SetGroupImage(ctx, groupNumber, key); err != nil {
		return err
	}
	return s.dirs.SyncGroups(ctx)
}

func (s *groupService) FetchImage(ctx context.Context, groupNumber int64) (string, error) {
	g, err := s.dirs.Directory().GroupByNumber(groupNumber)
	if err != nil {
		return "", err
	}
	key := g.ImageKey()
	if key == "" {
		return "", ErrNoImage
	}

	url, err := s.client.GetImageDownloadURL(ctx, key)
	if err != nil {
		return "", err
	}
	data, err := netx.DownloadFromPresignedURL(ctx, url)
	if err != nil {
		return "", fmt.Errorf("downloading image: %w", err)
	}

	target := filepath.Join(s.imageDir, fmt.Sprintf("group-%d-%s", groupNumber, path.Base(key)))
	if err := filex.EnsureParentDir(target); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return "", err
	}
	return target, nil
}
