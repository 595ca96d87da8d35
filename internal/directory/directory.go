// Package directory is the session's in-memory store of contacts and groups.
//
// A Directory owns the canonical Contact and Group instances. Storing an
// entity whose number is already present copies the new field values onto
// the stored instance and returns it, so pointers handed out earlier stay
// valid and observe the update. Every list is kept sorted by number.
//
// The known contacts, extended contacts and known groups lists start out not
// loaded: reading them returns an error matching ErrNotLoaded until the first
// store, which lets callers tell "never synced" apart from "empty". Clear
// returns the directory to that state at the end of a session.
//
// Mutating methods are serialized by an internal lock. The entity getters
// are not locked; entities are expected to be read on the goroutine driving
// the session.
package directory

import (
	"cmp"
	"slices"
	"sync"
)

// Directory holds the current contact, the known and extended contacts, the
// known groups and the selected group, plus the contact/group associations.
type Directory struct {
	mu sync.RWMutex

	current  *Contact
	known    []*Contact
	extended []*Contact
	groups   []*Group
	selected *Group
}

// New returns an empty directory with every list in the not loaded state.
func New() *Directory {
	return &Directory{}
}

// Clear forgets everything, including the current contact. Loaded group keys
// are not touched; their scopes still own them.
func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, g := range d.groups {
		g.targetContacts = nil
		g.selected = false
	}
	for _, list := range [][]*Contact{d.known, d.extended} {
		for _, c := range list {
			c.commonGroups = nil
		}
	}
	d.current = nil
	d.known = nil
	d.extended = nil
	d.groups = nil
	d.selected = nil
}

// MarkLoaded moves every list that is still not loaded to the loaded, empty
// state. A full sync calls it so that a list the server sent nothing for
// reads as empty rather than not loaded.
func (d *Directory) MarkLoaded() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.known == nil {
		d.known = []*Contact{}
	}
	if d.extended == nil {
		d.extended = []*Contact{}
	}
	if d.groups == nil {
		d.groups = []*Group{}
	}
}

type numbered interface {
	Number() int64
}

func compareNumber[T numbered](e T, n int64) int { return cmp.Compare(e.Number(), n) }

func findByNumber[T numbered](list []T, n int64) (T, bool) {
	i, ok := slices.BinarySearchFunc(list, n, compareNumber[T])
	if !ok {
		var zero T
		return zero, false
	}
	return list[i], true
}

// insertSorted adds v unless an element with the same number is present.
func insertSorted[T numbered](list []T, v T) []T {
	i, ok := slices.BinarySearchFunc(list, v.Number(), compareNumber[T])
	if ok {
		return list
	}
	return slices.Insert(list, i, v)
}

// removeByNumber deletes the element with number n and reports whether one
// was found. A nil list stays nil.
func removeByNumber[T numbered](list []T, n int64) ([]T, bool) {
	i, ok := slices.BinarySearchFunc(list, n, compareNumber[T])
	if !ok {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}

func sortByNumber[T numbered](list []T) {
	slices.SortFunc(list, func(a, b T) int { return cmp.Compare(a.Number(), b.Number()) })
}

// AppendNewContacts returns dst extended with the contacts of src whose
// numbers are not in dst yet, sorted by number. dst is not modified.
func AppendNewContacts(dst, src []*Contact) []*Contact {
	return appendNew(dst, src)
}

// AppendNewGroups is AppendNewContacts for groups.
func AppendNewGroups(dst, src []*Group) []*Group {
	return appendNew(dst, src)
}

func appendNew[T numbered](dst, src []T) []T {
	out := slices.Clone(dst)
	sortByNumber(out)
	for _, v := range src {
		out = insertSorted(out, v)
	}
	return out
}
