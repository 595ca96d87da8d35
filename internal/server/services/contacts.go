package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gliphic/internal/validation"
)

// ContactService answers contact queries. The contact list of a user is
// derived from three sources: the user itself, the users it added by
// contact id and everybody it shares a group with.
type ContactService struct {
	repomanager repomanager.RepositoryManager
}

func NewContactService(m repomanager.RepositoryManager) *ContactService {
	return &ContactService{repomanager: m}
}

func contactRecord(u *models.User, typ directory.ContactType) directory.ContactRecord {
	return directory.ContactRecord{
		Number: u.ContactNumber,
		ID:     u.ContactID,
		Name:   u.UserName,
		Type:   int(typ),
	}
}

// ListContacts returns the caller as the current contact, followed by its
// known and extended contacts sorted by number.
func (s *ContactService) ListContacts(ctx context.Context, userID string) ([]directory.ContactRecord, error) {
	db := s.repomanager.Conn()
	usersRepo := s.repomanager.Users(db)

	me, err := usersRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	known, err := s.repomanager.Contacts(db).ListKnown(ctx, userID)
	if err != nil {
		return nil, err
	}
	types := make(map[string]directory.ContactType, len(known))
	for _, id := range known {
		types[id] = directory.Known
	}

	others, err := coMembers(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range others {
		if _, ok := types[id]; !ok {
			types[id] = directory.Extended
		}
	}
	delete(types, userID)

	targets := make([]directory.ContactRecord, 0, len(types))
	for id, typ := range types {
		u, err := usersRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("contact %s: %w", id, err)
		}
		targets = append(targets, contactRecord(u, typ))
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Number < targets[j].Number })

	return append([]directory.ContactRecord{contactRecord(me, directory.Current)}, targets...), nil
}

// AddContact makes the user with the given contact id a known contact of
// the caller.
func (s *ContactService) AddContact(ctx context.Context, userID, contactID string) (*directory.ContactRecord, error) {
	if err := validation.CheckContactID(contactID); err != nil {
		return nil, err
	}
	db := s.repomanager.Conn()

	other, err := s.repomanager.Users(db).GetByContactID(ctx, contactID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("contact id %s: %w", contactID, common.ErrorNotFound)
		}
		return nil, err
	}
	if other.ID == userID {
		return nil, invalidArgument("you cannot add yourself as a contact")
	}
	if err := s.repomanager.Contacts(db).Add(ctx, userID, other.ID); err != nil {
		return nil, err
	}
	rec := contactRecord(other, directory.Known)
	return &rec, nil
}

// coMembers returns the distinct ids of users sharing at least one group
// with userID, userID excluded.
func coMembers(ctx context.Context, m repomanager.RepositoryManager, userID string) ([]string, error) {
	repo := m.Memberships(m.Conn())
	mine, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, ms := range mine {
		members, err := repo.ListByGroup(ctx, ms.GroupID)
		if err != nil {
			return nil, err
		}
		for _, other := range members {
			if other.UserID == userID {
				continue
			}
			if _, ok := seen[other.UserID]; ok {
				continue
			}
			seen[other.UserID] = struct{}{}
			out = append(out, other.UserID)
		}
	}
	return out, nil
}
