package directory

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gliphic/internal/permissions"
	"github.com/stretchr/testify/require"
)

func contactID(n int64) string {
	return fmt.Sprintf("%dabcdefghijklmnop", n)[:12]
}

func groupID(n int64) string {
	return fmt.Sprintf("%dABCDEFGHIJKLMNOP", n)[:12]
}

func groupIDBase64(n int64) string {
	return base64.StdEncoding.EncodeToString([]byte(groupID(n)))
}

func newTestContact(t *testing.T, n int64, typ ContactType) *Contact {
	t.Helper()
	c, err := NewContact(n, contactID(n), fmt.Sprintf("Contact %d", n), []byte{1, 2, 3}, typ)
	require.NoError(t, err)
	return c
}

func newTestGroup(t *testing.T, n int64) *Group {
	t.Helper()
	g, err := NewGroup(n, groupID(n), fmt.Sprintf("Group %d", n), fmt.Sprintf("Description %d", n),
		[]byte{9}, permissions.ActiveMember, false)
	require.NoError(t, err)
	return g
}

func numbers[T numbered](list []T) []int64 {
	out := make([]int64, 0, len(list))
	for _, e := range list {
		out = append(out, e.Number())
	}
	return out
}
