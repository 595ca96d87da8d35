// Package users declares the server-side repository contract for accounts
// and their contact identities.
package users

import (
	"context"

	"github.com/dmitrijs2005/gliphic/internal/server/models"
)

// Repository finds accounts by every handle the services use: the login
// name, the internal id, and the contact id and number other users see.
// Lookups of missing users fail with common.ErrorNotFound.
type Repository interface {
	// Create stores user and fills in the generated ID and ContactNumber.
	// A taken username or contact id fails with common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin looks a user up by username, for salt lookup and login.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByContactID resolves the id one user hands another to be added as
	// a contact.
	GetByContactID(ctx context.Context, contactID string) (*models.User, error)
	// GetByContactNumber resolves the contact number used in group
	// membership lists.
	GetByContactNumber(ctx context.Context, number int64) (*models.User, error)
}
