package directory

import (
	"fmt"
	"slices"
)

const (
	msgCurrentInList = "This contact should not be in either the known or the extended contacts list. " +
		"It has now been removed from both lists."
	msgCurrentOverwrite = "Cannot overwrite the existing current contact with number %d. " +
		"Clear the existing current contact before assigning a new current contact."
	msgImmutableType = "Cannot change a contact's type to or from CURRENT."
)

// CurrentContact returns the signed-in user's contact.
func (d *Directory) CurrentContact() (*Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.current == nil {
		return nil, notLoaded("current contact")
	}
	return d.current, nil
}

// KnownContacts returns a copy of the known contacts list.
func (d *Directory) KnownContacts() ([]*Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.known == nil {
		return nil, notLoaded("known contacts list")
	}
	return slices.Clone(d.known), nil
}

// ExtendedContacts returns a copy of the extended contacts list.
func (d *Directory) ExtendedContacts() ([]*Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.extended == nil {
		return nil, notLoaded("extended contacts list")
	}
	return slices.Clone(d.extended), nil
}

// TargetContacts returns the known and extended contacts together, ordered
// by number. It fails only when neither list has been loaded.
func (d *Directory) TargetContacts() ([]*Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.known == nil && d.extended == nil {
		return nil, notLoaded("target contacts")
	}
	return AppendNewContacts(d.known, d.extended), nil
}

// ContactByNumber looks the number up among the current, known and extended
// contacts.
func (d *Directory) ContactByNumber(number int64) (*Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if c := d.findContact(number); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: the contact number %d is not in the given list of contacts", ErrContactNotFound, number)
}

// ContactByID looks the id up among the current, known and extended contacts.
func (d *Directory) ContactByID(id string) (*Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if c := d.findContactByID(id, nil); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: id %s", ErrContactNotFound, id)
}

func (d *Directory) findContact(number int64) *Contact {
	if d.current != nil && d.current.number == number {
		return d.current
	}
	if c, ok := findByNumber(d.known, number); ok {
		return c
	}
	if c, ok := findByNumber(d.extended, number); ok {
		return c
	}
	return nil
}

// findContactByID ignores except, the contact about to be updated.
func (d *Directory) findContactByID(id string, except *Contact) *Contact {
	if d.current != nil && d.current != except && d.current.id == id {
		return d.current
	}
	for _, list := range [][]*Contact{d.known, d.extended} {
		for _, c := range list {
			if c != except && c.id == id {
				return c
			}
		}
	}
	return nil
}

func (d *Directory) checkContactIDUnique(id string, except *Contact) error {
	if other := d.findContactByID(id, except); other != nil {
		return consistencyError(ErrDuplicateID, "Duplicate contact ID detected: %s", id)
	}
	return nil
}

// StoreContact inserts c, or updates the stored contact with the same number
// and returns that instance. Unknown contacts are returned as is without
// being stored.
func (d *Directory) StoreContact(c *Contact) (*Contact, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.storeContact(c)
}

// StoreContacts stores every contact independently. The returned slice is
// aligned with cs and holds nil where storing failed; the failures are
// reported together as a *BulkError.
func (d *Directory) StoreContacts(cs []*Contact) ([]*Contact, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*Contact, len(cs))
	var errs []error
	for i, c := range cs {
		stored, err := d.storeContact(c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[i] = stored
	}
	return out, bulkError("contact(s)", "stored", len(cs), errs)
}

func (d *Directory) storeContact(c *Contact) (*Contact, error) {
	if err := d.scrubCurrentFromLists(c); err != nil {
		return nil, err
	}

	switch c.typ {
	case Current:
		return d.storeCurrent(c)
	case Known, Extended:
		return d.storeTarget(c)
	default:
		return c, nil
	}
}

// scrubCurrentFromLists repairs the illegal state of a CURRENT contact, or a
// contact carrying the number of the CURRENT contact being stored, sitting
// in a target list. The offending entries are detached before failing.
func (d *Directory) scrubCurrentFromLists(c *Contact) error {
	var offending []*Contact
	for _, list := range [][]*Contact{d.known, d.extended} {
		for _, e := range list {
			if e.typ == Current || (c.typ == Current && e.number == c.number) {
				offending = append(offending, e)
			}
		}
	}
	if len(offending) == 0 {
		return nil
	}
	for _, e := range offending {
		d.detachContact(e)
	}
	return consistencyError(ErrCurrentContactInList, msgCurrentInList)
}

func (d *Directory) storeCurrent(c *Contact) (*Contact, error) {
	if d.current == nil {
		if err := d.checkContactIDUnique(c.id, c); err != nil {
			return nil, err
		}
		d.current = c
		return c, nil
	}

	if d.current.number != c.number {
		return nil, consistencyError(ErrCurrentContactOverwrite, msgCurrentOverwrite, d.current.number)
	}
	if err := d.checkContactIDUnique(c.id, d.current); err != nil {
		return nil, err
	}
	d.current.copyFields(c)
	return d.current, nil
}

func (d *Directory) storeTarget(c *Contact) (*Contact, error) {
	if existing := d.findContact(c.number); existing != nil {
		if err := d.checkContactIDUnique(c.id, existing); err != nil {
			return nil, err
		}
		if err := d.changeContactType(existing, c.typ); err != nil {
			return nil, err
		}
		existing.copyFields(c)
		return existing, nil
	}

	if err := d.checkContactIDUnique(c.id, c); err != nil {
		return nil, err
	}
	if c.typ == Known {
		d.known = insertSorted(d.listOrEmpty(d.known), c)
	} else {
		d.extended = insertSorted(d.listOrEmpty(d.extended), c)
	}
	return c, nil
}

func (d *Directory) listOrEmpty(list []*Contact) []*Contact {
	if list == nil {
		return []*Contact{}
	}
	return list
}

// ClearCurrentContact unsets the current contact so a different one can be
// stored.
func (d *Directory) ClearCurrentContact() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = nil
}

// ChangeContactType moves the stored contact with c's number between the
// known and extended lists, and keeps c's type in step with it. Changing to
// Unknown removes the contact from both lists and from every group.
// Changing to or from Current always fails. A contact that is not stored
// only has its type field changed.
func (d *Directory) ChangeContactType(c *Contact, newType ContactType) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := d.findContact(c.number)
	if stored == nil {
		return d.changeContactType(c, newType)
	}
	if err := d.changeContactType(stored, newType); err != nil {
		return err
	}
	c.typ = newType
	return nil
}

func (d *Directory) changeContactType(c *Contact, newType ContactType) error {
	if c.typ == newType {
		return nil
	}
	if c.typ == Current || newType == Current {
		return consistencyError(ErrImmutableContactType, msgImmutableType)
	}
	if newType < Current || newType > Unknown {
		return fmt.Errorf("%w: %d", ErrInvalidContactType, int(newType))
	}

	stored := d.removeFromTargetLists(c)
	c.typ = newType

	switch {
	case newType == Unknown:
		d.detachFromGroups(c)
	case stored && newType == Known:
		d.known = insertSorted(d.listOrEmpty(d.known), c)
	case stored && newType == Extended:
		d.extended = insertSorted(d.listOrEmpty(d.extended), c)
	}
	return nil
}

// removeFromTargetLists removes c by identity and reports whether it was in
// either list.
func (d *Directory) removeFromTargetLists(c *Contact) bool {
	removed := false
	same := func(e *Contact) bool {
		if e == c {
			removed = true
			return true
		}
		return false
	}
	if d.known != nil {
		d.known = slices.DeleteFunc(d.known, same)
	}
	if d.extended != nil {
		d.extended = slices.DeleteFunc(d.extended, same)
	}
	return removed
}

// RemoveContact removes c from the known and extended lists and from every
// group it belongs to. The current contact is left alone.
func (d *Directory) RemoveContact(c *Contact) {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := d.findContact(c.number)
	if stored == nil || stored == d.current {
		d.detachFromGroups(c)
		return
	}
	d.detachContact(stored)
}

func (d *Directory) detachContact(c *Contact) {
	match := func(e *Contact) bool { return e == c || e.number == c.number }
	if d.known != nil {
		d.known = slices.DeleteFunc(d.known, match)
	}
	if d.extended != nil {
		d.extended = slices.DeleteFunc(d.extended, match)
	}
	d.detachFromGroups(c)
}

// detachFromGroups drops both sides of every association of c.
func (d *Directory) detachFromGroups(c *Contact) {
	for _, g := range d.groups {
		g.targetContacts, _ = removeByNumber(g.targetContacts, c.number)
	}
	for _, g := range c.commonGroups {
		g.targetContacts, _ = removeByNumber(g.targetContacts, c.number)
	}
	c.commonGroups = nil
}
