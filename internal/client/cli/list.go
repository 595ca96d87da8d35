package cli

import (
	"context"
	"fmt"
)

// Contacts prints the current contact followed by the known and extended
// contacts.
func (a *App) Contacts(ctx context.Context) error {
	dir := a.dirs.Directory()

	me, err := dir.CurrentContact()
	if err != nil {
		return a.fail(ctx, "contacts", err)
	}
	fmt.Fprintln(a.out, formatContact(me))

	targets, err := dir.TargetContacts()
	if err != nil {
		return a.fail(ctx, "contacts", err)
	}
	for _, c := range targets {
		fmt.Fprintln(a.out, formatContact(c))
	}
	return nil
}

// Groups prints the known groups, the selected one starred.
func (a *App) Groups(ctx context.Context) error {
	groups, err := a.dirs.Directory().KnownGroups(false)
	if err != nil {
		return a.fail(ctx, "groups", err)
	}
	for _, g := range groups {
		fmt.Fprintln(a.out, formatGroup(g))
	}
	return nil
}

// Select makes the group with the given number the target of encrypt.
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("select <group number>")
	}
	number, err := parseNumber(args[0])
	if err != nil {
		return a.fail(ctx, "select", err)
	}
	g, err := a.dirs.Select(number)
	if err != nil {
		return a.fail(ctx, "select", err)
	}
	fmt.Fprintf(a.out, "Selected %s.\n", g)
	return nil
}
