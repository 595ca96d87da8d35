package directory

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/gliphic/internal/validation"
)

// ContactType says where a contact lives in the directory.
type ContactType int

const (
	// Current is the signed-in user.
	Current ContactType = iota
	// Known contacts were added by the user.
	Known
	// Extended contacts share a group with the user without being known.
	Extended
	// Unknown contacts are never stored.
	Unknown
)

// ContactTypeFromCode converts a server supplied code.
func ContactTypeFromCode(code int) (ContactType, error) {
	t := ContactType(code)
	if t < Current || t > Unknown {
		return 0, fmt.Errorf("%w: code %d", ErrInvalidContactType, code)
	}
	return t, nil
}

func (t ContactType) String() string {
	switch t {
	case Current:
		return "current"
	case Known:
		return "known"
	case Extended:
		return "extended"
	case Unknown:
		return "unknown"
	}
	return fmt.Sprintf("contact-type(%d)", int(t))
}

func (t ContactType) isTarget() bool { return t == Known || t == Extended }

// Contact is a person the user can share groups with. Instances held by a
// Directory are canonical: the directory updates them in place, so every
// holder of the pointer sees the change.
type Contact struct {
	number       int64
	id           string
	name         string
	image        []byte
	typ          ContactType
	commonGroups []*Group
}

// NewContact validates the fields and returns a detached contact. It only
// becomes part of a directory through Directory.StoreContact.
func NewContact(number int64, id, name string, image []byte, typ ContactType) (*Contact, error) {
	if err := validation.CheckContactNumber(number); err != nil {
		return nil, err
	}
	if err := validation.CheckContactID(id); err != nil {
		return nil, err
	}
	if err := validation.CheckName(validation.Contact, name); err != nil {
		return nil, err
	}
	if typ < Current || typ > Unknown {
		return nil, fmt.Errorf("%w: %d", ErrInvalidContactType, int(typ))
	}
	return &Contact{number: number, id: id, name: name, image: image, typ: typ}, nil
}

// Number identifies the contact within the user's directory.
func (c *Contact) Number() int64 { return c.number }

// ID is the global contact id in base64 form.
func (c *Contact) ID() string { return c.id }

// Name returns the display name.
func (c *Contact) Name() string { return c.name }

// Image returns the image bytes, nil when there are none.
func (c *Contact) Image() []byte { return c.image }

// Type tells which directory list holds the contact.
func (c *Contact) Type() ContactType { return c.typ }

// CommonGroups returns the groups shared with this contact, ordered by number.
func (c *Contact) CommonGroups() []*Group { return slices.Clone(c.commonGroups) }

// SharesGroup reports whether g is one of the contact's common groups.
func (c *Contact) SharesGroup(g *Group) bool {
	_, ok := findByNumber(c.commonGroups, g.number)
	return ok
}

func (c *Contact) String() string {
	return fmt.Sprintf("contact %d (%s, %s)", c.number, c.name, c.typ)
}

func (c *Contact) copyFields(src *Contact) {
	c.id = src.id
	c.name = src.name
	c.image = src.image
}
