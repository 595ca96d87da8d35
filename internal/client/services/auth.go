// Package services contains application services for the gliphic CLI.
// This file defines the authentication service: online/offline login, register,
// liveness probe, and housekeeping of local (offline) auth metadata.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gliphic/internal/client/client"
	"github.com/dmitrijs2005/gliphic/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - OnlineLogin: authenticate against the server and persist offline auth data.
//   - OfflineLogin: derive and verify credentials against locally cached data.
//   - Register: create a new user and its default group on the server.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//   - ClearOfflineData: wipe locally cached auth metadata.
//
// Both logins return the data encryption key; the caller owns it and wipes
// it at logout.
type AuthService interface {
	OfflineLogin(ctx context.Context, username string, password []byte) ([]byte, error)
	OnlineLogin(ctx context.Context, username string, password []byte) ([]byte, error)
	Register(ctx context.Context, username string, password []byte) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

// OfflineLogin derives the data encryption key from the password and the
// locally saved salt and checks it against the saved verifier.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) ([]byte, error) {
	profile, err := metadata.LoadProfile(ctx, metadata.NewSQLiteRepository(a.db))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, client.ErrLocalDataNotAvailable
		}
		return nil, err
	}
	if profile.Username != username {
		return nil, client.ErrUnauthorized
	}

	candidate := cryptox.DeriveDataKey(password, profile.Salt)
	if subtle.ConstantTimeCompare(profile.Verifier, cryptox.MakeVerifier(candidate)) == 0 {
		common.WipeByteArray(candidate)
		return nil, client.ErrUnauthorized
	}
	return candidate, nil
}

// OnlineLogin authenticates against the server, saves offline metadata
// (username, salt, verifier), and returns the derived data encryption key.
func (a *authService) OnlineLogin(ctx context.Context, userName string, password []byte) ([]byte, error) {
	salt, err := a.client.GetSalt(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}

	candidate := cryptox.DeriveDataKey(password, salt)
	verifier := cryptox.MakeVerifier(candidate)

	if err := a.client.Login(ctx, userName, verifier); err != nil {
		common.WipeByteArray(candidate)
		return nil, fmt.Errorf("login error: %w", err)
	}

	profile := metadata.Profile{Username: userName, Salt: salt, Verifier: verifier}
	if err := a.saveOfflineData(ctx, profile); err != nil {
		common.WipeByteArray(candidate)
		return nil, fmt.Errorf("offline data saving error: %w", err)
	}
	return candidate, nil
}

func (a *authService) saveOfflineData(ctx context.Context, p metadata.Profile) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.SaveProfile(ctx, metadata.NewSQLiteRepository(tx), p)
	})
}

// Register creates a new account on the server. It generates a random salt,
// derives the data encryption key from the password and sends the salt, the
// verifier and a fresh default group key sealed under that data key.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(cryptox.SaltLen)
	dataKey := cryptox.DeriveDataKey(password, salt)
	defer common.WipeByteArray(dataKey)
	verifier := cryptox.MakeVerifier(dataKey)

	groupKey := cryptox.NewKey()
	defer common.WipeByteArray(groupKey)
	encryptedKey, iv, err := cryptox.Encrypt(dataKey, groupKey)
	if err != nil {
		return fmt.Errorf("encrypting default group key: %w", err)
	}

	return a.client.Register(ctx, username, salt, verifier, encryptedKey, iv)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData wipes locally cached auth metadata (e.g., on logout).
func (a *authService) ClearOfflineData(ctx context.Context) error {
	return metadata.NewSQLiteRepository(a.db).Clear(ctx)
}
