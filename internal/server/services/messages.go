package services

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/server/config"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gliphic/internal/token"
)

const timeOutLen = 8

// RevealItem is one token the caller wants revealed.
type RevealItem struct {
	GroupNumber int64
	IV          []byte
	Blob        []byte
}

// MessageService wraps raw cipher texts into server blobs bound to their
// group and time-out, and reveals them again for members in good standing.
type MessageService struct {
	repomanager repomanager.RepositoryManager
	serverKey   []byte
	now         func() time.Time
}

func NewMessageService(m repomanager.RepositoryManager, cfg *config.Config) *MessageService {
	return &MessageService{
		repomanager: m,
		serverKey:   cryptox.DeriveServerKey(cfg.MessageSecret),
		now:         time.Now,
	}
}

func wrapAAD(rawGroupID, iv []byte) []byte {
	return append(slices.Clone(rawGroupID), iv...)
}

// Wrap seals the time-out and raw cipher text of a new message. The caller
// must be an active, non-denied member of the group.
func (s *MessageService) Wrap(ctx context.Context, userID string, groupNumber int64, iv, rawCipherText []byte, timeOut int64) ([]byte, error) {
	if len(iv) != token.IVLen {
		return nil, invalidArgument("the IV must have %d bytes", token.IVLen)
	}
	if len(rawCipherText) == 0 {
		return nil, invalidArgument("the cipher text is empty")
	}
	if err := token.CheckTimeOut(timeOut, s.now()); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
	}

	db := s.repomanager.Conn()
	ms, err := membershipByNumber(ctx, s.repomanager, db, userID, groupNumber)
	if err != nil {
		return nil, err
	}
	state, err := membershipState(ms)
	if err != nil {
		return nil, err
	}
	if !state.IsActive() || state.IsDenied() {
		return nil, forbidden("%s members cannot encrypt for group %d", state, groupNumber)
	}
	g, err := s.repomanager.Groups(db).GetByID(ctx, ms.GroupID)
	if err != nil {
		return nil, err
	}

	plain := make([]byte, timeOutLen, timeOutLen+len(rawCipherText))
	binary.BigEndian.PutUint64(plain, uint64(timeOut))
	plain = append(plain, rawCipherText...)
	return cryptox.SealPrefixed(s.serverKey, plain, wrapAAD(g.RawID, iv))
}

// Reveal classifies every item and returns the raw cipher text and the
// caller's encrypted group key for the successful ones. An item under an
// unknown group number fails the whole call with an *UnknownGroupError so
// the client can fetch its groups and retry.
func (s *MessageService) Reveal(ctx context.Context, userID string, items []RevealItem) ([]token.Reveal, error) {
	db := s.repomanager.Conn()
	groupsRepo := s.repomanager.Groups(db)
	now := s.now().Unix()

	cache := make(map[int64]*models.Group)
	out := make([]token.Reveal, len(items))
	for i, item := range items {
		ms, err := membershipByNumber(ctx, s.repomanager, db, userID, item.GroupNumber)
		if err != nil {
			return nil, err
		}
		g, ok := cache[item.GroupNumber]
		if !ok {
			if g, err = groupsRepo.GetByID(ctx, ms.GroupID); err != nil {
				return nil, err
			}
			cache[item.GroupNumber] = g
		}
		out[i], err = s.reveal(ms, g, item, now)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *MessageService) reveal(ms *models.Membership, g *models.Group, item RevealItem, now int64) (token.Reveal, error) {
	malformed := token.Reveal{Status: token.StatusMalformed}
	if len(item.IV) != token.IVLen {
		return malformed, nil
	}
	plain, err := cryptox.OpenPrefixed(s.serverKey, item.Blob, wrapAAD(g.RawID, item.IV))
	if err != nil || len(plain) <= timeOutLen {
		return malformed, nil
	}
	timeOut := int64(binary.BigEndian.Uint64(plain[:timeOutLen]))
	if timeOut < 0 {
		return malformed, nil
	}
	if timeOut != token.NoTimeOut && timeOut <= now {
		return token.Reveal{Status: token.StatusExpired, TimeOut: timeOut}, nil
	}

	state, err := membershipState(ms)
	if err != nil {
		return token.Reveal{}, err
	}
	switch {
	case !state.IsActive() && state.IsDenied():
		return token.Reveal{Status: token.StatusInactiveAndDenied}, nil
	case !state.IsActive():
		return token.Reveal{Status: token.StatusInactive}, nil
	case state.IsDenied():
		return token.Reveal{Status: token.StatusDenied}, nil
	}
	return token.Reveal{
		Status:            token.StatusSuccess,
		TimeOut:           timeOut,
		RawCipherText:     plain[timeOutLen:],
		EncryptedGroupKey: ms.EncryptedGroupKey,
		GroupKeyIV:        ms.GroupKeyIV,
	}, nil
}

// IsUnknownGroup reports whether err names a group number the caller has
// no membership under.
func IsUnknownGroup(err error) (int64, bool) {
	var ug *UnknownGroupError
	if errors.As(err, &ug) {
		return ug.Number, true
	}
	return 0, false
}
