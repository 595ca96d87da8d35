// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing/refreshing JWTs
// plus server-stored refresh tokens.
package services

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/dbx"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/permissions"
	"github.com/dmitrijs2005/gliphic/internal/server/auth"
	"github.com/dmitrijs2005/gliphic/internal/server/config"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gliphic/internal/validation"
)

const (
	defaultGroupName        = "Default"
	defaultGroupDescription = "Default group"

	// idAttempts bounds how many random contact ids are drawn.
	idAttempts = 3
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
// - Register: create users with their contact identity and default group
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
type UserService struct {
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.repomanager.Conn())

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expired(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Register creates a new user with the given username, salt, and verifier,
// gives it a fresh contact id and creates its default group from the key
// the client encrypted under its data encryption key.
func (s *UserService) Register(ctx context.Context, username string, salt, verifier, defaultGroupKey, defaultGroupKeyIV []byte) (*models.User, error) {
	if err := validation.CheckName(validation.Contact, username); err != nil {
		return nil, err
	}
	if len(salt) == 0 || len(verifier) == 0 {
		return nil, invalidArgument("salt and verifier are required")
	}
	if len(defaultGroupKey) == 0 || len(defaultGroupKeyIV) != cryptox.NonceLen {
		return nil, invalidArgument("the default group key is missing or malformed")
	}

	var user *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.createUser(ctx, tx, username, salt, verifier)
		if err != nil {
			return err
		}

		group, err := createGroup(ctx, s.repomanager, tx, &models.Group{
			Name:        defaultGroupName,
			Description: defaultGroupDescription,
		})
		if err != nil {
			return err
		}

		return s.repomanager.Memberships(tx).Create(ctx, &models.Membership{
			UserID:            user.ID,
			GroupID:           group.ID,
			Number:            directory.DefaultGroupNumber,
			Permissions:       permissions.ActiveOwner.Code(),
			EncryptedGroupKey: defaultGroupKey,
			GroupKeyIV:        defaultGroupKeyIV,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

func (s *UserService) createUser(ctx context.Context, tx dbx.DBTX, username string, salt, verifier []byte) (*models.User, error) {
	repo := s.repomanager.Users(tx)
	if _, err := repo.GetUserByLogin(ctx, username); err == nil {
		return nil, fmt.Errorf("user %s: %w", username, common.ErrorAlreadyExists)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	contactID, err := s.unusedContactID(ctx, tx)
	if err != nil {
		return nil, err
	}
	return repo.Create(ctx, &models.User{
		UserName:  username,
		Salt:      salt,
		Verifier:  verifier,
		ContactID: contactID,
	})
}

// unusedContactID draws random contact ids until one is not taken yet.
func (s *UserService) unusedContactID(ctx context.Context, tx dbx.DBTX) (string, error) {
	repo := s.repomanager.Users(tx)
	for range idAttempts {
		id := newContactID()
		_, err := repo.GetByContactID(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free contact id after %d attempts: %w", idAttempts, common.ErrorInternal)
}

// newContactID returns a random id of validation.ContactIDLen base64
// characters.
func newContactID() string {
	return base64.StdEncoding.EncodeToString(common.GenerateRandByteArray(validation.ContactIDLen / 4 * 3))
}

// GetSalt returns the user's stored salt or a random salt if the user is absent,
// to avoid leaking existence through timing.
func (s *UserService) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	repo := s.repomanager.Users(s.repomanager.Conn())
	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.getRandomSalt(), nil
		}
		return nil, common.ErrorInternal
	}
	return user.Salt, nil
}

// Login verifies the provided verifierCandidate against the stored verifier and,
// on success, returns a new TokenPair.
func (s *UserService) Login(ctx context.Context, userName string, verifierCandidate []byte) (*TokenPair, error) {
	repo := s.repomanager.Users(s.repomanager.Conn())
	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !s.checkVerifier(user.Verifier, verifierCandidate) {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(ctx, user.ID, s.repomanager.Conn())
}

// --- helpers below ---

func (s *UserService) getRandomSalt() []byte { return common.GenerateRandByteArray(cryptox.SaltLen) }

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) checkVerifier(verifier []byte, candidate []byte) bool {
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	now := time.Now()
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if _, err := refreshRepo.DeleteExpired(ctx, userID, now); err != nil {
		return nil, common.ErrorInternal
	}
	if err := refreshRepo.Create(ctx, &models.RefreshToken{
		UserID:    userID,
		Token:     refresh,
		ExpiresAt: now.Add(s.refreshTokenValidityDuration),
	}); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
