package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/client/client"
	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/token"
)

// MessageService runs the two-phase encrypt and decrypt protocols against
// the session directory.
type MessageService interface {
	// Encrypt composes plainText for the selected group and returns the
	// published text.
	Encrypt(ctx context.Context, plainText string, timeOut int64, dataKey []byte) (string, error)
	// Decrypt parses text, fetching its group once if it is not known yet,
	// and returns the decrypted token.
	Decrypt(ctx context.Context, text string, dataKey []byte) (*token.Token, error)
	// DecryptAll decrypts what it can of texts and drops the rest.
	DecryptAll(ctx context.Context, texts []string, dataKey []byte) ([]*token.Token, error)
}

type messageService struct {
	client client.Client
	dirs   DirectoryService
	now    func() time.Time
}

func NewMessageService(c client.Client, dirs DirectoryService) MessageService {
	return &messageService{client: c, dirs: dirs, now: time.Now}
}

// groupKey fetches the encrypted key of group number and opens it with
// dataKey. The caller wipes the result.
func groupKey(ctx context.Context, c client.Client, number int64, dataKey []byte) ([]byte, error) {
	encrypted, iv, err := c.GetGroupKey(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("get group key: %w", err)
	}
	key, err := cryptox.Open(dataKey, iv, encrypted, nil)
	if err != nil {
		return nil, fmt.Errorf("group key: %w", token.ErrDecryption)
	}
	return key, nil
}

func (s *messageService) Encrypt(ctx context.Context, plainText string, timeOut int64, dataKey []byte) (string, error) {
	g, err := s.dirs.Directory().SelectedGroup()
	if err != nil {
		return "", ErrNoGroupSelected
	}
	if err := token.CheckTimeOut(timeOut, s.now()); err != nil {
		return "", err
	}

	key, err := groupKey(ctx, s.client, g.Number(), dataKey)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)

	var tok *token.Token
	err = g.UseKey(key, func(g *directory.Group) error {
		var err error
		tok, err = token.Compose(plainText, timeOut, g, s.now())
		return err
	})
	if err != nil {
		return "", err
	}

	blob, err := s.client.WrapMessage(ctx, g.Number(), tok.IV(), tok.RawCipherText(), timeOut)
	if err != nil {
		return "", fmt.Errorf("wrap message: %w", err)
	}
	if err := tok.Finalize(blob); err != nil {
		return "", err
	}
	return tok.PublishedText(), nil
}

// resolve parses text and, when its group is not loaded, refreshes the
// groups once and parses again.
func (s *messageService) resolve(ctx context.Context, text string) (*token.Token, error) {
	dir := s.dirs.Directory()
	res, err := token.Parse(dir, text)
	if err != nil {
		return nil, err
	}
	if !res.NeedsFetch() {
		return res.Token, nil
	}

	if _, err := s.dirs.FetchGroup(ctx, res.UnknownGroupID); err != nil {
		return nil, fmt.Errorf("group of this message is not available: %w", err)
	}
	res, err = token.Parse(dir, text)
	if err != nil {
		return nil, err
	}
	if res.NeedsFetch() {
		return nil, fmt.Errorf("%w: %s", directory.ErrGroupNotFound, res.UnknownGroupID)
	}
	return res.Token, nil
}

func (s *messageService) Decrypt(ctx context.Context, text string, dataKey []byte) (*token.Token, error) {
	tok, err := s.resolve(ctx, text)
	if err != nil {
		return nil, err
	}

	reveals, err := s.client.RevealMessages(ctx, []rpc.RevealItem{revealItem(tok)})
	if err != nil {
		return nil, fmt.Errorf("reveal message: %w", err)
	}
	r := reveals[0]
	if r.Status != token.StatusSuccess {
		return nil, &MessageStatusError{Status: r.Status}
	}
	if err := tok.Decrypt(r.TimeOut, r.RawCipherText, r.EncryptedGroupKey, r.GroupKeyIV, dataKey); err != nil {
		return nil, err
	}
	return tok, nil
}

func (s *messageService) DecryptAll(ctx context.Context, texts []string, dataKey []byte) ([]*token.Token, error) {
	dir := s.dirs.Directory()
	tokens, unknown := token.BatchParse(dir, texts)
	if len(unknown) > 0 {
		if err := s.dirs.SyncGroups(ctx); err != nil {
			var bulk *directory.BulkError
			if !errors.As(err, &bulk) {
				return nil, err
			}
		}
		tokens, _ = token.BatchParse(dir, texts)
	}

	for len(tokens) > 0 {
		items := make([]rpc.RevealItem, len(tokens))
		for i, t := range tokens {
			items[i] = revealItem(t)
		}

		reveals, err := s.client.RevealMessages(ctx, items)
		var unknownGroup *client.UnknownGroupError
		if errors.As(err, &unknownGroup) {
			before := len(tokens)
			tokens = slices.DeleteFunc(tokens, func(t *token.Token) bool {
				return t.Group().Number() == unknownGroup.Number
			})
			if len(tokens) == before {
				return nil, fmt.Errorf("reveal messages: %w", err)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reveal messages: %w", err)
		}
		return token.BatchDecrypt(tokens, reveals, dataKey), nil
	}
	return nil, nil
}

func revealItem(t *token.Token) rpc.RevealItem {
	return rpc.RevealItem{
		GroupNumber: t.Group().Number(),
		IV:          t.IV(),
		Blob:        t.TimeOutCipherText(),
	}
}
