package directory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/permissions"
	"github.com/dmitrijs2005/gliphic/internal/validation"
)

// DefaultGroupNumber is the number of the group every account starts with.
const DefaultGroupNumber int64 = 0

// GroupKeyLen is the size of a group key (AES-256).
const GroupKeyLen = 32

// Group is a set of contacts sharing one symmetric key. The key itself is
// only attached while a message is being processed, through a KeyScope.
type Group struct {
	number         int64
	id             string
	name           string
	description    string
	image          []byte
	imageKey       string
	permissions    permissions.State
	open           bool
	selected       bool
	targetContacts []*Contact

	keyMu sync.Mutex
	key   []byte
}

// NewGroup validates the fields and returns a detached group. id is the
// base256 form of the group id.
func NewGroup(number int64, id, name, description string, image []byte, perms permissions.State, open bool) (*Group, error) {
	if err := validation.CheckGroupNumber(number); err != nil {
		return nil, err
	}
	if err := validation.CheckGroupID(id); err != nil {
		return nil, err
	}
	if err := validation.CheckName(validation.Group, name); err != nil {
		return nil, err
	}
	if err := validation.CheckDescription(description); err != nil {
		return nil, err
	}
	if _, err := permissions.FromCode(perms.Code()); err != nil {
		return nil, err
	}
	return &Group{
		number:      number,
		id:          id,
		name:        name,
		description: description,
		image:       image,
		permissions: perms,
		open:        open,
	}, nil
}

// Number is the caller's per-user number of the group.
func (g *Group) Number() int64 { return g.number }

// ID is the global group id in base256 form, as embedded in tokens.
func (g *Group) ID() string { return g.id }

// Name returns the display name.
func (g *Group) Name() string { return g.name }

// Description returns the description, unique among the user's groups.
func (g *Group) Description() string { return g.description }

// Image returns the built-in image bytes, nil when there are none.
func (g *Group) Image() []byte { return g.image }

// ImageKey names the custom image in object storage, empty when none was
// uploaded.
func (g *Group) ImageKey() string { return g.imageKey }

// Permissions returns the user's permission state in the group.
func (g *Group) Permissions() permissions.State { return g.permissions }

// IsOpen reports whether the group accepts open requests. The flag is
// stored and shown but not enforced here.
func (g *Group) IsOpen() bool { return g.open }

// IsSelected reports whether new messages are encrypted for this group.
func (g *Group) IsSelected() bool { return g.selected }

// IsDefault reports whether this is the user's default group.
func (g *Group) IsDefault() bool { return g.number == DefaultGroupNumber }

// TargetContacts returns the group's known and extended members, ordered by
// number.
func (g *Group) TargetContacts() []*Contact { return slices.Clone(g.targetContacts) }

// ContainsTargetContact reports whether c is a member of the group.
func (g *Group) ContainsTargetContact(c *Contact) bool {
	_, ok := findByNumber(g.targetContacts, c.number)
	return ok
}

// TargetContactByNumber returns the member with the given number.
func (g *Group) TargetContactByNumber(number int64) (*Contact, error) {
	c, ok := findByNumber(g.targetContacts, number)
	if !ok {
		return nil, fmt.Errorf("%w: number %d is not a member of group %d", ErrContactNotFound, number, g.number)
	}
	return c, nil
}

func (g *Group) String() string {
	return fmt.Sprintf("group %d (%s)", g.number, g.name)
}

func (g *Group) copyFields(src *Group) {
	g.id = src.id
	g.name = src.name
	g.description = src.description
	g.image = src.image
	g.imageKey = src.imageKey
	g.permissions = src.permissions
	g.open = src.open
}

// Key returns the currently loaded group key.
func (g *Group) Key() ([]byte, error) {
	g.keyMu.Lock()
	defer g.keyMu.Unlock()
	if g.key == nil {
		return nil, ErrNoGroupKey
	}
	return g.key, nil
}

// HasKey reports whether a key scope is open on the group.
func (g *Group) HasKey() bool {
	g.keyMu.Lock()
	defer g.keyMu.Unlock()
	return g.key != nil
}

// LoadKey attaches a private copy of key to the group until the returned
// scope is closed. Only one scope can be open at a time.
func (g *Group) LoadKey(key []byte) (*KeyScope, error) {
	if len(key) != GroupKeyLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, GroupKeyLen, len(key))
	}

	g.keyMu.Lock()
	defer g.keyMu.Unlock()
	if g.key != nil {
		return nil, ErrKeyLoaded
	}
	g.key = slices.Clone(key)
	return &KeyScope{group: g, key: g.key}, nil
}

// UseKey runs fn with key loaded on the group and always clears the key
// afterwards, whatever fn returns.
func (g *Group) UseKey(key []byte, fn func(g *Group) error) error {
	scope, err := g.LoadKey(key)
	if err != nil {
		return err
	}
	defer scope.Close()
	return fn(g)
}

// KeyScope owns the key copy attached to a group. Close detaches and wipes
// it; calling Close more than once is safe.
type KeyScope struct {
	group *Group
	key   []byte
	once  sync.Once
}

// Group returns the group the key is attached to.
func (s *KeyScope) Group() *Group { return s.group }

// Close clears the group's key slot and zeroes the key bytes.
func (s *KeyScope) Close() {
	s.once.Do(func() {
		g := s.group
		g.keyMu.Lock()
		g.key = nil
		g.keyMu.Unlock()
		common.WipeByteArray(s.key)
	})
}
