// Package device persists the small amount of state that is keyed to the
// device rather than to an account: the last chosen role and the install id.
package device

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger"
	"github.com/google/uuid"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

var (
	roleKey      = []byte("role")
	installIDKey = []byte("install_id")
)

// Store is a badger-backed implementation of domain.RoleStore.
type Store struct {
	db *badger.DB
}

// Open creates or opens the device state database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open device store: %w", err)
	}
	return &Store{db: db}, nil
}

// Load implements domain.RoleStore.
func (s *Store) Load() (domain.Role, bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(roleKey)
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return domain.RoleTenant, false, nil
	}
	if err != nil {
		return domain.RoleTenant, false, err
	}
	return domain.ParseRole(string(raw)), true, nil
}

// Save implements domain.RoleStore.
func (s *Store) Save(role domain.Role) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(roleKey, []byte(role))
	})
}

// Clear implements domain.RoleStore.
func (s *Store) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(roleKey)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// InstallID returns the stable identifier for this install, generating one
// on first use.
func (s *Store) InstallID() (string, error) {
	var id string
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(installIDKey)
		if err == nil {
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			id = string(raw)
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		id = uuid.NewString()
		return txn.Set(installIDKey, []byte(id))
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ domain.RoleStore = (*Store)(nil)
