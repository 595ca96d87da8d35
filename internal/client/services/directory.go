package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gliphic/internal/client/client"
	"github.com/dmitrijs2005/gliphic/internal/directory"
)

// DirectoryService keeps the session directory in step with the server.
type DirectoryService interface {
	// Sync loads contacts, then groups, and selects the default group when
	// nothing is selected yet. Records that cannot be stored are reported as
	// one *directory.BulkError after the others were stored.
	Sync(ctx context.Context) error
	// SyncGroups reloads the group list only.
	SyncGroups(ctx context.Context) error
	// FetchGroup reloads the groups and resolves the base256 group id.
	FetchGroup(ctx context.Context, id string) (*directory.Group, error)
	AddContact(ctx context.Context, contactID string) (*directory.Contact, error)
	Select(number int64) (*directory.Group, error)
	Directory() *directory.Directory
}

type directoryService struct {
	client client.Client
	dir    *directory.Directory
}

func NewDirectoryService(c client.Client, dir *directory.Directory) DirectoryService {
	return &directoryService{client: c, dir: dir}
}

func (s *directoryService) Directory() *directory.Directory { return s.dir }

func (s *directoryService) Sync(ctx context.Context) error {
	contacts, err := s.client.ListContacts(ctx)
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}
	groups, err := s.client.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}

	_, contactsErr := s.dir.CreateAndStoreContacts(contacts)
	_, groupsErr := s.dir.CreateAndStoreGroups(groups)
	s.dir.MarkLoaded()

	var selectErr error
	if _, err := s.dir.SelectedGroup(); errors.Is(err, directory.ErrNotLoaded) {
		if g, err := s.dir.GroupByNumber(directory.DefaultGroupNumber); err == nil {
			if _, err := s.dir.SelectGroup(g); err != nil {
				selectErr = fmt.Errorf("select default group: %w", err)
			}
		}
	}
	return errors.Join(contactsErr, groupsErr, selectErr)
}

func (s *directoryService) SyncGroups(ctx context.Context) error {
	groups, err := s.client.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}
	_, err = s.dir.CreateAndStoreGroups(groups)
	return err
}

func (s *directoryService) FetchGroup(ctx context.Context, id string) (*directory.Group, error) {
	if err := s.SyncGroups(ctx); err != nil {
		var bulk *directory.BulkError
		if !errors.As(err, &bulk) {
			return nil, err
		}
	}
	return s.dir.GroupByID(id)
}

func (s *directoryService) AddContact(ctx context.Context, contactID string) (*directory.Contact, error) {
	rec, err := s.client.AddContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	stored, err := s.dir.CreateAndStoreContacts([]directory.ContactRecord{rec})
	if err != nil {
		return nil, err
	}
	return stored[0], nil
}

func (s *directoryService) Select(number int64) (*directory.Group, error) {
	g, err := s.dir.GroupByNumber(number)
	if err != nil {
		return nil, err
	}
	return s.dir.SelectGroup(g)
}
