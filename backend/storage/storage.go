// Package storage abstracts persistence behind small interfaces keyed by
// user identifier, so the in-memory default can be swapped for a durable
// backend without touching the progress engine.
package storage

import (
	"errors"

	"skillforge/backend/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrProgressNotFound = errors.New("progress record not found")
	ErrProgressExists   = errors.New("progress record already exists")
)

// UserStore holds registered accounts. CreateUser assigns the next
// sequential identifier and rejects duplicate emails; emails are expected
// to be case-normalized by the caller before they reach the store.
type UserStore interface {
	CreateUser(user *models.User) error
	UserByEmail(email string) (*models.User, error)
	UserByID(id uint) (*models.User, error)
}

// ProgressStore holds one ProgressRecord per user. Reads return copies;
// the only mutation path is UpdateProgress, which runs fn with exclusive
// ownership of the record (one logical writer per record). If fn returns
// an error the record is left unmodified.
type ProgressStore interface {
	CreateProgress(userID uint, record *models.ProgressRecord) error
	Progress(userID uint) (*models.ProgressRecord, error)
	UpdateProgress(userID uint, fn func(*models.ProgressRecord) error) (*models.ProgressRecord, error)
}

// Store bundles the two facets; both implementations satisfy it.
type Store interface {
	UserStore
	ProgressStore
}
