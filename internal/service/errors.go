package service

import (
	"context"
	"errors"
)

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrConflict           = errors.New("conflict")            // 409
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
)

// AssetStore is the slice of the upload store the services need for
// compensating cleanup. Removal is best-effort; failures are logged inside
// the store, never escalated.
type AssetStore interface {
	Remove(ctx context.Context, ref string)
}
