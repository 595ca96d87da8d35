// Package cli provides the interactive gliphic command-line client.
//
// It wires configuration, the local offline-login store, the gRPC client and
// the application services into a line based REPL. Typical flow: prompt for
// credentials, start a background connectivity watcher, sync the contact and
// group directory, then encrypt and decrypt messages for the selected group.
//
// Key features:
//   - Register / Login / Logout (online with offline fallback)
//   - Contacts and groups: list, select, create, add contacts
//   - Group key hand-over: share, shares, accept, permissions
//   - Messages: encrypt, decrypt, decryptall
//   - Custom group images: setimage, getimage
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
