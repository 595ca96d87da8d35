package token

import (
	"github.com/dmitrijs2005/gliphic/internal/directory"
)

// Reveal is the server's per token answer to a reveal request.
type Reveal struct {
	Status            MessageStatus
	TimeOut           int64
	RawCipherText     []byte
	EncryptedGroupKey []byte
	GroupKeyIV        []byte
}

// BatchParse parses every text independently. It returns the tokens that
// resolved and the distinct group ids that must be fetched before the
// remaining texts can be parsed again. Malformed texts and texts for
// unusable groups are dropped.
func BatchParse(dir *directory.Directory, texts []string) (tokens []*Token, unknownGroupIDs []string) {
	seen := make(map[string]struct{})
	for _, text := range texts {
		res, err := Parse(dir, text)
		if err != nil {
			continue
		}
		if res.NeedsFetch() {
			if _, ok := seen[res.UnknownGroupID]; !ok {
				seen[res.UnknownGroupID] = struct{}{}
				unknownGroupIDs = append(unknownGroupIDs, res.UnknownGroupID)
			}
			continue
		}
		tokens = append(tokens, res.Token)
	}
	return tokens, unknownGroupIDs
}

// BatchDecrypt decrypts tokens[i] with reveals[i] and returns the tokens
// that succeeded, in order. Tokens whose reveal is not a success, or that
// fail to decrypt, are left out.
func BatchDecrypt(tokens []*Token, reveals []Reveal, dataKey []byte) []*Token {
	var out []*Token
	for i, t := range tokens {
		if i >= len(reveals) {
			break
		}
		r := reveals[i]
		if r.Status != StatusSuccess {
			continue
		}
		if err := t.Decrypt(r.TimeOut, r.RawCipherText, r.EncryptedGroupKey, r.GroupKeyIV, dataKey); err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}
