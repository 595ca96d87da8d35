package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/token"
)

func formatContact(c *directory.Contact) string {
	return fmt.Sprintf("%5d  %-32s  %s  %s", c.Number(), c.Name(), c.ID(), c.Type())
}

// formatGroup renders one group line. The selected group is starred.
func formatGroup(g *directory.Group) string {
	mark := " "
	if g.IsSelected() {
		mark = "*"
	}
	var flags []string
	flags = append(flags, g.Permissions().String())
	if g.IsOpen() {
		flags = append(flags, "open")
	}
	if g.ImageKey() != "" {
		flags = append(flags, "image")
	}
	if n := len(g.TargetContacts()); n > 0 {
		flags = append(flags, fmt.Sprintf("%d member(s)", n))
	}
	return fmt.Sprintf("%s%4d  %-32s  %s  [%s]", mark, g.Number(), g.Name(), g.Description(), strings.Join(flags, ", "))
}

func formatShare(s rpc.Share) string {
	return fmt.Sprintf("%s  group %q from %s (contact %d)", s.ID, s.GroupName, s.FromName, s.FromContactNumber)
}

// formatMessage renders a decrypted token with its group and time-out.
func formatMessage(t *token.Token) string {
	return fmt.Sprintf("[%s, expires: %s]\n%s", t.Group().Name(), formatTimeOut(t.TimeOut()), t.PlainText())
}
