// Package client is the CLI side of the gliphic wire protocol.
//
// Client lists every server call the CLI makes: account setup and login,
// the contact and group directory, group shares and member permissions,
// message wrapping and reveal, and group image URLs. GRPCClient implements
// it over the rpc stub. It attaches the access token to each call and, when
// the server reports that token expired, trades the refresh token for a new
// pair and retries once.
//
// Server status codes come back as the sentinels in errors.go, so callers
// can use errors.Is. ErrUnknownGroup is returned as an *UnknownGroupError
// that also carries the group number the server rejected.
//
// InitDatabase and RunMigrations open the local SQLite store and apply the
// embedded goose migrations; NewRepositories wraps the open handle.
package client
