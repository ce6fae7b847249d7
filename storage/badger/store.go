package badger

import (
	"context"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/storage"
)

// Store implements storage.ScholarshipStore and storage.VectorCache on BadgerDB.
type Store struct {
	backend *Backend

	mu          sync.RWMutex
	subscribers []storage.Subscriber
}

var (
	_ storage.ScholarshipStore = (*Store)(nil)
	_ storage.VectorCache      = (*Store)(nil)
)

// NewStore creates a new Store on the given backend.
// The store owns the backend; Close closes it.
func NewStore(backend *Backend) *Store {
	return &Store{backend: backend}
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Subscribe registers a change subscriber for the store's lifetime.
func (s *Store) Subscribe(sub storage.Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// notify fans an event out to subscribers. Called after the write commits.
func (s *Store) notify(event storage.Event) {
	s.mu.RLock()
	subs := s.subscribers
	s.mu.RUnlock()
	for _, sub := range subs {
		sub(event)
	}
}

// Put creates or replaces a scholarship. The status index is kept in step
// within the same transaction, and subscribers are notified after commit.
func (s *Store) Put(ctx context.Context, sch *core.Scholarship) (*core.Scholarship, error) {
	if err := core.ValidateScholarship(sch); err != nil {
		return nil, err
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeScholarshipKey(sch.Id)

		old, err := s.readScholarship(tx, key)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if old == nil {
			sch.InsertedAt = now
		} else {
			sch.InsertedAt = old.InsertedAt
		}
		sch.UpdatedAt = now

		value, err := storage.MarshalScholarship(sch)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Keep the status index in step with the record.
		if old != nil && old.Status != sch.Status {
			if err := tx.Delete(makeStatusKey(string(old.Status), sch.Id)); err != nil {
				return err
			}
		}
		if err := tx.Set(makeStatusKey(string(sch.Status), sch.Id), []byte(sch.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	s.notify(storage.Event{Type: storage.EventPut, Id: sch.Id, Scholarship: sch})
	return sch, nil
}

// Delete removes a scholarship, its status index entry and any cached vector.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeScholarshipKey(id)

		old, err := s.readScholarship(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		if err := tx.Delete(makeStatusKey(string(old.Status), id)); err != nil {
			return err
		}
		if err := tx.Delete(makeVectorKey(id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	s.notify(storage.Event{Type: storage.EventDelete, Id: id})
	return nil
}

// Get retrieves a single scholarship by id.
func (s *Store) Get(ctx context.Context, id string) (*core.Scholarship, error) {
	var sch *core.Scholarship
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		sch, err = s.readScholarship(tx, makeScholarshipKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if sch == nil {
		return nil, storage.ErrNotFound
	}
	return sch, nil
}

// List retrieves all scholarships regardless of status.
func (s *Store) List(ctx context.Context) ([]*core.Scholarship, error) {
	var results []*core.Scholarship

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(scholarshipPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var sch *core.Scholarship
			err := iter.Item().Value(func(val []byte) error {
				var err error
				sch, err = storage.UnmarshalScholarship(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, sch)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ListApproved retrieves only approved scholarships, via the status index.
func (s *Store) ListApproved(ctx context.Context) ([]*core.Scholarship, error) {
	var results []*core.Scholarship

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialStatusKey(string(core.StatusApproved))
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id string
			err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			sch, err := s.readScholarship(tx, makeScholarshipKey(id))
			if err != nil {
				return err
			}
			if sch == nil {
				// Dangling index entry; skip rather than fail the read path.
				s.backend.logger.Warn("dangling status index entry", "id", id)
				continue
			}
			results = append(results, sch)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// PutVector stores a vector and its source-text fingerprint.
func (s *Store) PutVector(ctx context.Context, id string, fingerprint core.Fingerprint, vector []float32) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(id), storage.MarshalVector(fingerprint, vector)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetVector retrieves a cached vector and fingerprint.
func (s *Store) GetVector(ctx context.Context, id string) ([]float32, core.Fingerprint, error) {
	var (
		vector      []float32
		fingerprint core.Fingerprint
	)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			fingerprint, vector, err = storage.UnmarshalVector(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, 0, err
	}
	return vector, fingerprint, nil
}

// DeleteVector removes a cached vector.
func (s *Store) DeleteVector(ctx context.Context, id string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeVectorKey(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readScholarship reads a record inside a transaction.
// Returns (nil, nil) when the key does not exist.
func (s *Store) readScholarship(tx *badger.Txn, key []byte) (*core.Scholarship, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sch *core.Scholarship
	err = item.Value(func(val []byte) error {
		var err error
		sch, err = storage.UnmarshalScholarship(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sch, nil
}
