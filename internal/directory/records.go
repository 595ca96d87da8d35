package directory

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/gliphic/internal/base256"
	"github.com/dmitrijs2005/gliphic/internal/permissions"
	"github.com/dmitrijs2005/gliphic/internal/validation"
)

// ContactRecord is a contact as loaded from the server.
type ContactRecord struct {
	Number      int64  `json:"number"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageBase64 string `json:"image"`
	Type        int    `json:"type"`
}

// GroupRecord is a group as loaded from the server. IDBase64 is the base64
// form of the raw id bytes.
type GroupRecord struct {
	Number      int64  `json:"number"`
	IDBase64    string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageBase64 string `json:"image"`
	Permissions int    `json:"permissions"`
	Open        bool   `json:"open"`
	// ImageKey names a custom image in object storage, if one was uploaded.
	ImageKey string `json:"imageKey,omitempty"`
	// Members lists the numbers of the group's target contacts.
	Members []int64 `json:"members,omitempty"`
}

// ContactFromRecord builds a detached contact from a server record.
func ContactFromRecord(r ContactRecord) (*Contact, error) {
	image, err := validation.DecodeImage(r.ImageBase64)
	if err != nil {
		return nil, err
	}
	typ, err := ContactTypeFromCode(r.Type)
	if err != nil {
		return nil, err
	}
	return NewContact(r.Number, r.ID, r.Name, image, typ)
}

// GroupFromRecord builds a detached group from a server record.
func GroupFromRecord(r GroupRecord) (*Group, error) {
	id, err := base256.FromBase64(r.IDBase64)
	if err != nil {
		return nil, fmt.Errorf("group %d id: %w", r.Number, err)
	}
	image, err := validation.DecodeImage(r.ImageBase64)
	if err != nil {
		return nil, err
	}
	perms, err := permissions.FromCode(r.Permissions)
	if err != nil {
		return nil, err
	}
	g, err := NewGroup(r.Number, id, r.Name, r.Description, image, perms, r.Open)
	if err != nil {
		return nil, err
	}
	g.imageKey = r.ImageKey
	return g, nil
}

// CreateAndStoreContacts builds and stores one contact per record. The
// result is aligned with records, nil where a record failed, and all
// failures come back as one *BulkError.
func (d *Directory) CreateAndStoreContacts(records []ContactRecord) ([]*Contact, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*Contact, len(records))
	var errs []error
	for i, r := range records {
		c, err := ContactFromRecord(r)
		if err == nil {
			c, err = d.storeContact(c)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[i] = c
	}
	return out, bulkError("contact(s)", "created or stored", len(records), errs)
}

// CreateAndStoreGroups builds and stores one group per record and links the
// listed members that are stored target contacts. Members that are not
// stored are skipped. Links of a stored group to contacts missing from the
// record are dropped on both sides.
func (d *Directory) CreateAndStoreGroups(records []GroupRecord) ([]*Group, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*Group, len(records))
	var errs []error
	for i, r := range records {
		g, err := GroupFromRecord(r)
		if err == nil {
			g, err = d.storeGroup(g)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, c := range slices.Clone(g.targetContacts) {
			if !slices.Contains(r.Members, c.number) {
				g.targetContacts, _ = removeByNumber(g.targetContacts, c.number)
				c.commonGroups, _ = removeByNumber(c.commonGroups, g.number)
			}
		}
		for _, n := range r.Members {
			c := d.findContact(n)
			if c == nil || !c.typ.isTarget() {
				continue
			}
			g.targetContacts = insertSorted(g.targetContacts, c)
			c.commonGroups = insertSorted(c.commonGroups, g)
		}
		out[i] = g
	}
	return out, bulkError("group(s)", "created or stored", len(records), errs)
}
