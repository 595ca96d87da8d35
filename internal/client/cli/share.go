package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/permissions"
)

// Share seals the key of a group under a passphrase and offers it to a
// contact. The passphrase travels to the contact out of band.
func (a *App) Share(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("share <group number> <contact number>")
	}
	n, err := parseNumbers(args...)
	if err != nil {
		return a.fail(ctx, "share", err)
	}

	passphrase, err := getSecret(a.out, "Enter share passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	id, err := a.groups.Share(ctx, n[0], n[1], passphrase, a.dataKey)
	if err != nil {
		return a.fail(ctx, "share", err)
	}
	fmt.Fprintf(a.out, "Share %s created. Send the passphrase to the contact separately.\n", id)
	return nil
}

// Shares lists the group shares waiting for this user.
func (a *App) Shares(ctx context.Context) error {
	shares, err := a.groups.Shares(ctx)
	if err != nil {
		return a.fail(ctx, "shares", err)
	}
	if len(shares) == 0 {
		fmt.Fprintln(a.out, "No pending shares.")
	}
	for _, s := range shares {
		fmt.Fprintln(a.out, formatShare(s))
	}
	return nil
}

// Accept opens a pending share with its passphrase and joins the group.
func (a *App) Accept(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("accept <share id>")
	}

	passphrase, err := getSecret(a.out, "Enter share passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	g, err := a.groups.Accept(ctx, args[0], passphrase, a.dataKey)
	if err != nil {
		return a.fail(ctx, "accept", err)
	}
	fmt.Fprintf(a.out, "Joined %s.\n", g)
	return nil
}

// Permissions changes what a member may do in a group.
func (a *App) Permissions(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return a.usage("permissions <group number> <contact number> <state>, state is one of active-owner, " +
			"active-member, active-distributor, active-revoker, active-denied or their inactive- forms")
	}
	n, err := parseNumbers(args[0], args[1])
	if err != nil {
		return a.fail(ctx, "permissions", err)
	}
	state, err := permissions.Parse(args[2])
	if err != nil {
		return a.fail(ctx, "permissions", err)
	}

	if err := a.groups.SetPermissions(ctx, n[0], n[1], state); err != nil {
		return a.fail(ctx, "permissions", err)
	}
	fmt.Fprintf(a.out, "Contact %d is now %s in group %d.\n", n[1], state, n[0])
	return nil
}
