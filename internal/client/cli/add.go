package cli

import (
	"context"
	"fmt"
)

// NewGroup prompts for the name, description and openness of a new group.
// The group key is generated locally and only its encrypted form leaves the
// machine.
func (a *App) NewGroup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter group name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter group description", a.out)
	if err != nil {
		return err
	}
	open, err := Confirm(a.reader, "Should the group be open?", a.out)
	if err != nil {
		return err
	}

	g, err := a.groups.Create(ctx, name, description, open, a.dataKey)
	if err != nil {
		return a.fail(ctx, "new group", err)
	}
	a.logger.Info(ctx, "group created", "group", g.Number())
	fmt.Fprintf(a.out, "Created %s.\n", g)
	return nil
}

// AddContact makes the user with the given contact id a known contact.
func (a *App) AddContact(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("addcontact <contact id>")
	}
	c, err := a.dirs.AddContact(ctx, args[0])
	if err != nil {
		return a.fail(ctx, "add contact", err)
	}
	fmt.Fprintf(a.out, "Added %s.\n", c)
	return nil
}
