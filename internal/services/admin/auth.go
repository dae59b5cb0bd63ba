package admin

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Authorizer decides whether a presented admin key is valid.
type Authorizer interface {
	Authorize(key string) bool
}

// KeyAuthorizer compares against a configured key, or against a bcrypt hash
// when one is set.
type KeyAuthorizer struct {
	key  []byte
	hash []byte
}

func NewKeyAuthorizer(key, keyHash string) (*KeyAuthorizer, error) {
	if key == "" && keyHash == "" {
		return nil, errors.New("admin key or key hash is required")
	}
	if keyHash != "" {
		if _, err := bcrypt.Cost([]byte(keyHash)); err != nil {
			return nil, err
		}
		return &KeyAuthorizer{hash: []byte(keyHash)}, nil
	}
	return &KeyAuthorizer{key: []byte(key)}, nil
}

func (a *KeyAuthorizer) Authorize(key string) bool {
	if a.hash != nil {
		return bcrypt.CompareHashAndPassword(a.hash, []byte(key)) == nil
	}
	return subtle.ConstantTimeCompare(a.key, []byte(key)) == 1
}
