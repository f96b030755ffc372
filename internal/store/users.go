// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package store

import (
	"context"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/leviz2304/bazaar/internal/models"
)

// UserRepo persists user accounts with a unique-email index.
type UserRepo struct {
	db *badger.DB
}

// Create stores a new user. Fails with ErrEmailTaken when the email is
// already registered; the uniqueness check and the write share one
// transaction.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	emailKey := userEmailKeyPrefix + normalizeEmail(user.Email)
	return r.db.Update(func(txn *badger.Txn) error {
		taken, err := keyExists(txn, emailKey)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		if err := setJSON(txn, userKeyPrefix+user.ID, user); err != nil {
			return err
		}
		return txn.Set([]byte(emailKey), []byte(user.ID))
	})
}

// Get retrieves a user by ID.
func (r *UserRepo) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, userKeyPrefix+id, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user through the email index.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userEmailKeyPrefix + normalizeEmail(email)))
		if err != nil {
			return translateNotFound(err)
		}
		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}
		return getJSON(txn, userKeyPrefix+id, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update overwrites an existing user document.
func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		exists, err := keyExists(txn, userKeyPrefix+user.ID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return setJSON(txn, userKeyPrefix+user.ID, user)
	})
}

// List returns all users, newest last. Pagination happens at the API
// layer for this admin-only view.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	var users []models.User
	total := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(userKeyPrefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if total >= offset && (limit <= 0 || len(users) < limit) {
				var user models.User
				if err := it.Item().Value(func(val []byte) error {
					return unmarshalJSON(val, &user)
				}); err != nil {
					return err
				}
				users = append(users, user)
			}
			total++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
