//go:build js || wasm
// +build js wasm

package synclyrics

import "errors"

var ErrTrackNotFound = errors.New("track not found")

// NewSQLiteStorage is unavailable in the browser build; pass a Storage with
// WithStorage instead.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return nil, errors.New("sqlite storage is not supported on js/wasm")
}
