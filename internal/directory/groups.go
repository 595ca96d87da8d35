package directory

import (
	"fmt"
	"slices"
)

const (
	msgDuplicateGroupID   = "All of your group IDs must be unique."
	msgDuplicateGroupDesc = "All of your group descriptions must be unique."
)

// KnownGroups returns a copy of the known groups list. With ignoreDefault
// set the default group is left out.
func (d *Directory) KnownGroups(ignoreDefault bool) ([]*Group, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.groups == nil {
		return nil, notLoaded("known groups list")
	}
	out := slices.Clone(d.groups)
	if ignoreDefault {
		out = slices.DeleteFunc(out, (*Group).IsDefault)
	}
	return out, nil
}

// SelectedGroup returns the group new messages are encrypted for.
func (d *Directory) SelectedGroup() (*Group, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.selected == nil {
		return nil, notLoaded("selected group")
	}
	return d.selected, nil
}

// GroupByNumber returns the known group with the given number.
func (d *Directory) GroupByNumber(number int64) (*Group, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if g, ok := findByNumber(d.groups, number); ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: no group with the number %d is available", ErrGroupNotFound, number)
}

// GroupByID resolves a base256 group id. It returns an error matching
// ErrNotLoaded before the groups are loaded and ErrGroupNotFound when the id
// is unknown.
func (d *Directory) GroupByID(id string) (*Group, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.groups == nil {
		return nil, notLoaded("known groups list")
	}
	if g := d.findGroupByID(id, nil); g != nil {
		return g, nil
	}
	return nil, fmt.Errorf("%w: given group ID is unknown to the user: %s", ErrGroupNotFound, id)
}

func (d *Directory) findGroupByID(id string, except *Group) *Group {
	for _, g := range d.groups {
		if g != except && g.id == id {
			return g
		}
	}
	return nil
}

func (d *Directory) checkGroupUnique(g, except *Group) error {
	if d.findGroupByID(g.id, except) != nil {
		return consistencyError(ErrDuplicateID, msgDuplicateGroupID)
	}
	return d.checkDescriptionUnique(g.description, except)
}

func (d *Directory) checkDescriptionUnique(description string, except *Group) error {
	for _, other := range d.groups {
		if other != except && other.description == description {
			return consistencyError(ErrDuplicateDescription, msgDuplicateGroupDesc)
		}
	}
	return nil
}

// CheckDescriptionAvailable reports whether description can be given to a
// new group without clashing with a known one.
func (d *Directory) CheckDescriptionAvailable(description string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.checkDescriptionUnique(description, nil)
}

// SetGroupDescription changes the description of a stored group, keeping
// descriptions unique.
func (d *Directory) SetGroupDescription(g *Group, description string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored, ok := findByNumber(d.groups, g.number)
	if !ok {
		return fmt.Errorf("%w: number %d", ErrGroupNotFound, g.number)
	}
	if err := d.checkDescriptionUnique(description, stored); err != nil {
		return err
	}
	stored.description = description
	return nil
}

// StoreGroup inserts g, or updates the known group with the same number and
// returns that instance. The selection flag is never copied; use
// SelectGroup.
func (d *Directory) StoreGroup(g *Group) (*Group, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.storeGroup(g)
}

// StoreGroups stores every group independently; see StoreContacts.
func (d *Directory) StoreGroups(gs []*Group) ([]*Group, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*Group, len(gs))
	var errs []error
	for i, g := range gs {
		stored, err := d.storeGroup(g)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[i] = stored
	}
	return out, bulkError("group(s)", "stored", len(gs), errs)
}

func (d *Directory) storeGroup(g *Group) (*Group, error) {
	if existing, ok := findByNumber(d.groups, g.number); ok {
		if err := d.checkGroupUnique(g, existing); err != nil {
			return nil, err
		}
		if existing != g {
			existing.copyFields(g)
		}
		return existing, nil
	}

	if err := d.checkGroupUnique(g, g); err != nil {
		return nil, err
	}
	if d.groups == nil {
		d.groups = []*Group{}
	}
	g.selected = false
	d.groups = insertSorted(d.groups, g)
	return g, nil
}

// SelectGroup makes g the selected group, storing it first when needed, and
// returns the stored instance. Selecting the already selected group is a
// no-op.
func (d *Directory) SelectGroup(g *Group) (*Group, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.selected != nil && d.selected.number == g.number {
		return d.selected, nil
	}

	stored, err := d.storeGroup(g)
	if err != nil {
		return nil, err
	}
	if d.selected != nil {
		d.selected.selected = false
	}
	stored.selected = true
	d.selected = stored
	return stored, nil
}

// RemoveGroup removes g from the known groups, deselects it and drops it
// from the common groups of all of its members.
func (d *Directory) RemoveGroup(g *Group) {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored, ok := findByNumber(d.groups, g.number)
	if !ok {
		stored = g
	}
	if d.groups != nil {
		d.groups, _ = removeByNumber(d.groups, g.number)
	}
	if d.selected != nil && d.selected.number == g.number {
		d.selected = nil
	}
	stored.selected = false
	for _, c := range stored.targetContacts {
		c.commonGroups, _ = removeByNumber(c.commonGroups, stored.number)
	}
	stored.targetContacts = nil
}

// AddGroupContact records that c is a member of g on both sides. Both must
// already be stored and c must be a known or extended contact.
func (d *Directory) AddGroupContact(g *Group, c *Contact) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	storedGroup, ok := findByNumber(d.groups, g.number)
	if !ok {
		return fmt.Errorf("%w: number %d", ErrGroupNotFound, g.number)
	}
	storedContact := d.findContact(c.number)
	if storedContact == nil {
		return fmt.Errorf("%w: number %d", ErrContactNotFound, c.number)
	}
	if !storedContact.typ.isTarget() {
		return fmt.Errorf("%w: %s", ErrNotTargetContact, storedContact)
	}

	storedGroup.targetContacts = insertSorted(storedGroup.targetContacts, storedContact)
	storedContact.commonGroups = insertSorted(storedContact.commonGroups, storedGroup)
	return nil
}

// RemoveGroupContact undoes AddGroupContact on the stored group and contact
// with the numbers of g and c, and reports whether c was a member of g.
func (d *Directory) RemoveGroupContact(g *Group, c *Contact) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if stored, ok := findByNumber(d.groups, g.number); ok {
		g = stored
	}
	if stored := d.findContact(c.number); stored != nil {
		c = stored
	}
	var removed bool
	g.targetContacts, removed = removeByNumber(g.targetContacts, c.number)
	c.commonGroups, _ = removeByNumber(c.commonGroups, g.number)
	return removed
}
