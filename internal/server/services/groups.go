package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/dbx"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/permissions"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gliphic/internal/validation"
)

// GroupService manages groups, the hand-over of group keys and member
// permissions.
type GroupService struct {
	repomanager repomanager.RepositoryManager
}

func NewGroupService(m repomanager.RepositoryManager) *GroupService {
	return &GroupService{repomanager: m}
}

// NewGroupInput carries what the client supplies to create a group.
type NewGroupInput struct {
	Name              string
	Description       string
	ImageBase64       string
	Open              bool
	EncryptedGroupKey []byte
	GroupKeyIV        []byte
}

// PendingShare is a share addressed to the caller together with what the
// caller needs to recognise it.
type PendingShare struct {
	ID                string
	GroupIDBase64     string
	GroupName         string
	FromContactNumber int64
	FromName          string
	SealedKey         []byte
	SealNonce         []byte
}

// createGroup stores g under a fresh random raw id.
func createGroup(ctx context.Context, m repomanager.RepositoryManager, tx dbx.DBTX, g *models.Group) (*models.Group, error) {
	g.RawID = common.GenerateRandByteArray(validation.GroupIDLen)
	return m.Groups(tx).Create(ctx, g)
}

// membershipByNumber resolves the caller's group number.
func membershipByNumber(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, userID string, number int64) (*models.Membership, error) {
	if err := validation.CheckGroupNumber(number); err != nil {
		return nil, err
	}
	ms, err := m.Memberships(db).GetByNumber(ctx, userID, number)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, &UnknownGroupError{Number: number}
		}
		return nil, err
	}
	return ms, nil
}

func membershipState(ms *models.Membership) (permissions.State, error) {
	state, err := permissions.FromCode(ms.Permissions)
	if err != nil {
		return 0, fmt.Errorf("stored membership: %w", err)
	}
	return state, nil
}

// groupRecord builds the record a member sees for one of its groups.
func (s *GroupService) groupRecord(ctx context.Context, db dbx.DBTX, ms *models.Membership) (*directory.GroupRecord, error) {
	g, err := s.repomanager.Groups(db).GetByID(ctx, ms.GroupID)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", ms.GroupID, err)
	}
	members, err := s.repomanager.Memberships(db).ListByGroup(ctx, ms.GroupID)
	if err != nil {
		return nil, err
	}
	var numbers []int64
	for _, other := range members {
		if other.UserID == ms.UserID {
			continue
		}
		u, err := s.repomanager.Users(db).GetByID(ctx, other.UserID)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", other.UserID, err)
		}
		numbers = append(numbers, u.ContactNumber)
	}
	return &directory.GroupRecord{
		Number:      ms.Number,
		IDBase64:    base64.StdEncoding.EncodeToString(g.RawID),
		Name:        g.Name,
		Description: g.Description,
		ImageBase64: g.ImageBase64,
		Permissions: ms.Permissions,
		Open:        g.Open,
		ImageKey:    g.ImageKey,
		Members:     numbers,
	}, nil
}

// ListGroups returns every group of the caller ordered by group number.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]directory.GroupRecord, error) {
	db := s.repomanager.Conn()
	mine, err := s.repomanager.Memberships(db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]directory.GroupRecord, 0, len(mine))
	for _, ms := range mine {
		rec, err := s.groupRecord(ctx, db, ms)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (s *GroupService) checkDescriptionFree(ctx context.Context, db dbx.DBTX, userID, description string) error {
	mine, err := s.repomanager.Memberships(db).ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, ms := range mine {
		g, err := s.repomanager.Groups(db).GetByID(ctx, ms.GroupID)
		if err != nil {
			return err
		}
		if g.Description == description {
			return fmt.Errorf("group description %q: %w", description, common.ErrorAlreadyExists)
		}
	}
	return nil
}

// CreateGroup creates a group owned by the caller under its next group
// number.
func (s *GroupService) CreateGroup(ctx context.Context, userID string, in NewGroupInput) (*directory.GroupRecord, error) {
	if err := validation.CheckName(validation.Group, in.Name); err != nil {
		return nil, err
	}
	if err := validation.CheckDescription(in.Description); err != nil {
		return nil, err
	}
	if _, err := validation.DecodeImage(in.ImageBase64); err != nil {
		return nil, err
	}
	if len(in.EncryptedGroupKey) == 0 || len(in.GroupKeyIV) != cryptox.NonceLen {
		return nil, invalidArgument("the group key is missing or malformed")
	}

	var rec *directory.GroupRecord
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkDescriptionFree(ctx, tx, userID, in.Description); err != nil {
			return err
		}
		g, err := createGroup(ctx, s.repomanager, tx, &models.Group{
			Name:        in.Name,
			Description: in.Description,
			ImageBase64: in.ImageBase64,
			Open:        in.Open,
		})
		if err != nil {
			return err
		}
		repo := s.repomanager.Memberships(tx)
		number, err := repo.NextNumber(ctx, userID)
		if err != nil {
			return err
		}
		ms := &models.Membership{
			UserID:            userID,
			GroupID:           g.ID,
			Number:            number,
			Permissions:       permissions.ActiveOwner.Code(),
			EncryptedGroupKey: in.EncryptedGroupKey,
			GroupKeyIV:        in.GroupKeyIV,
		}
		if err := repo.Create(ctx, ms); err != nil {
			return err
		}
		rec, err = s.groupRecord(ctx, tx, ms)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetGroupKey returns the caller's encrypted copy of a group key.
func (s *GroupService) GetGroupKey(ctx context.Context, userID string, number int64) (encryptedKey, iv []byte, err error) {
	ms, err := membershipByNumber(ctx, s.repomanager, s.repomanager.Conn(), userID, number)
	if err != nil {
		return nil, nil, err
	}
	return ms.EncryptedGroupKey, ms.GroupKeyIV, nil
}

// ShareGroup offers the group key, sealed by the caller, to one of the
// caller's contacts. Only active owners and distributors may share.
func (s *GroupService) ShareGroup(ctx context.Context, userID string, groupNumber, contactNumber int64, sealedKey, sealNonce []byte) (string, error) {
	if err := validation.CheckContactNumber(contactNumber); err != nil {
		return "", err
	}
	if len(sealedKey) == 0 || len(sealNonce) != cryptox.NonceLen {
		return "", invalidArgument("the sealed group key is missing or malformed")
	}

	db := s.repomanager.Conn()
	ms, err := membershipByNumber(ctx, s.repomanager, db, userID, groupNumber)
	if err != nil {
		return "", err
	}
	state, err := membershipState(ms)
	if err != nil {
		return "", err
	}
	if !state.IsActive() || state.IsDenied() ||
		(state != permissions.ActiveOwner && state != permissions.ActiveDistributor) {
		return "", forbidden("%s members cannot share group %d", state, groupNumber)
	}

	target, err := s.repomanager.Users(db).GetByContactNumber(ctx, contactNumber)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("contact %d: %w", contactNumber, common.ErrorNotFound)
		}
		return "", err
	}
	if target.ID == userID {
		return "", invalidArgument("you cannot share a group with yourself")
	}
	if _, err := s.repomanager.Memberships(db).GetByGroup(ctx, target.ID, ms.GroupID); err == nil {
		return "", fmt.Errorf("contact %d is a member of group %d: %w", contactNumber, groupNumber, common.ErrorAlreadyExists)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", err
	}

	share, err := s.repomanager.Shares(db).Create(ctx, &models.Share{
		GroupID:    ms.GroupID,
		FromUserID: userID,
		ToUserID:   target.ID,
		SealedKey:  sealedKey,
		SealNonce:  sealNonce,
	})
	if err != nil {
		return "", err
	}
	return share.ID, nil
}

// ListShares returns the shares waiting for the caller, oldest first.
func (s *GroupService) ListShares(ctx context.Context, userID string) ([]PendingShare, error) {
	db := s.repomanager.Conn()
	list, err := s.repomanager.Shares(db).ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PendingShare, 0, len(list))
	for _, sh := range list {
		g, err := s.repomanager.Groups(db).GetByID(ctx, sh.GroupID)
		if err != nil {
			return nil, fmt.Errorf("share %s group: %w", sh.ID, err)
		}
		from, err := s.repomanager.Users(db).GetByID(ctx, sh.FromUserID)
		if err != nil {
			return nil, fmt.Errorf("share %s sender: %w", sh.ID, err)
		}
		out = append(out, PendingShare{
			ID:                sh.ID,
			GroupIDBase64:     base64.StdEncoding.EncodeToString(g.RawID),
			GroupName:         g.Name,
			FromContactNumber: from.ContactNumber,
			FromName:          from.UserName,
			SealedKey:         sh.SealedKey,
			SealNonce:         sh.SealNonce,
		})
	}
	return out, nil
}

// AcceptShare joins the caller to the shared group as an active member,
// storing the group key the caller re-encrypted under its own key, and
// consumes the share.
func (s *GroupService) AcceptShare(ctx context.Context, userID, shareID string, encryptedKey, iv []byte) (*directory.GroupRecord, error) {
	if len(encryptedKey) == 0 || len(iv) != cryptox.NonceLen {
		return nil, invalidArgument("the group key is missing or malformed")
	}

	var rec *directory.GroupRecord
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		sharesRepo := s.repomanager.Shares(tx)
		sh, err := sharesRepo.Get(ctx, shareID)
		if err != nil {
			return fmt.Errorf("share %s: %w", shareID, err)
		}
		if sh.ToUserID != userID {
			return fmt.Errorf("share %s: %w", shareID, common.ErrorNotFound)
		}

		repo := s.repomanager.Memberships(tx)
		if _, err := repo.GetByGroup(ctx, userID, sh.GroupID); err == nil {
			return fmt.Errorf("group of share %s: %w", shareID, common.ErrorAlreadyExists)
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		number, err := repo.NextNumber(ctx, userID)
		if err != nil {
			return err
		}
		ms := &models.Membership{
			UserID:            userID,
			GroupID:           sh.GroupID,
			Number:            number,
			Permissions:       permissions.ActiveMember.Code(),
			EncryptedGroupKey: encryptedKey,
			GroupKeyIV:        iv,
		}
		if err := repo.Create(ctx, ms); err != nil {
			return err
		}
		if err := sharesRepo.Delete(ctx, shareID); err != nil {
			return err
		}
		rec, err = s.groupRecord(ctx, tx, ms)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// SetMemberPermissions changes the permissions of another member of a
// group. Active owners may change anyone, active revokers anyone but owners.
func (s *GroupService) SetMemberPermissions(ctx context.Context, userID string, groupNumber, contactNumber int64, code int) error {
	newState, err := permissions.FromCode(code)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
	}
	if err := validation.CheckContactNumber(contactNumber); err != nil {
		return err
	}

	return s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		ms, err := membershipByNumber(ctx, s.repomanager, tx, userID, groupNumber)
		if err != nil {
			return err
		}
		state, err := membershipState(ms)
		if err != nil {
			return err
		}
		if state != permissions.ActiveOwner && state != permissions.ActiveRevoker {
			return forbidden("%s members cannot change permissions in group %d", state, groupNumber)
		}

		target, err := s.repomanager.Users(tx).GetByContactNumber(ctx, contactNumber)
		if err != nil {
			return fmt.Errorf("contact %d: %w", contactNumber, err)
		}
		if target.ID == userID {
			return invalidArgument("you cannot change your own permissions")
		}
		repo := s.repomanager.Memberships(tx)
		targetMs, err := repo.GetByGroup(ctx, target.ID, ms.GroupID)
		if err != nil {
			return fmt.Errorf("contact %d in group %d: %w", contactNumber, groupNumber, err)
		}
		targetState, err := membershipState(targetMs)
		if err != nil {
			return err
		}
		if state == permissions.ActiveRevoker &&
			(targetState.Activate() == permissions.ActiveOwner || newState.Activate() == permissions.ActiveOwner) {
			return forbidden("revokers cannot change owners")
		}
		return repo.UpdatePermissions(ctx, target.ID, ms.GroupID, newState.Code())
	})
}
