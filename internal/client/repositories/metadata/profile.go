package metadata

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gliphic/internal/common"
)

const (
	keyUsername = "username"
	keySalt     = "salt"
	keyVerifier = "verifier"
)

// Profile is what offline login needs: the account name, its argon2 salt
// and the verifier of the derived data encryption key.
type Profile struct {
	Username string
	Salt     []byte
	Verifier []byte
}

// SaveProfile writes every profile field in one statement.
func SaveProfile(ctx context.Context, r Repository, p Profile) error {
	return r.SetMany(ctx, map[string][]byte{
		keyUsername: []byte(p.Username),
		keySalt:     p.Salt,
		keyVerifier: p.Verifier,
	})
}

// LoadProfile reads the saved profile. A missing field makes it fail with
// an error matching common.ErrorNotFound.
func LoadProfile(ctx context.Context, r Repository) (Profile, error) {
	values, err := r.GetMany(ctx, keyUsername, keySalt, keyVerifier)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	for _, k := range []string{keyUsername, keySalt, keyVerifier} {
		if _, ok := values[k]; !ok {
			return Profile{}, fmt.Errorf("load profile: %s: %w", k, common.ErrorNotFound)
		}
	}
	return Profile{Username: string(values[keyUsername]), Salt: values[keySalt], Verifier: values[keyVerifier]}, nil
}
