// Package cache is the durable settlement cache: the latest ticket price,
// the newest-first history of settled rounds, and the ingestor's
// last-processed block checkpoint, all in a single badger store.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/shopspring/decimal"

	"github.com/dmagro/lotteryd/internal/lotto"
)

// ErrNotFound marks a key with no cached value. Any other error from a
// Store operation means the backing store itself failed.
var ErrNotFound = errors.New("cache: not found")

var (
	keyPrice     = []byte("ticket_price")
	keyHistory   = []byte("round_history")
	keyLastBlock = []byte("last_block")
)

// Store wraps a badger database. Construct with Open and inject it; Close
// releases the store on shutdown.
type Store struct {
	db *badger.DB
}

func Open(path string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open cache at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a non-persistent store, used by tests.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open in-memory cache: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache read %s: %w", key, err)
	}
	return val, nil
}

func (s *Store) set(key, val []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
	if err != nil {
		return fmt.Errorf("cache write %s: %w", key, err)
	}
	return nil
}

// Price returns the cached ticket price, or ErrNotFound on a cold cache.
func (s *Store) Price() (decimal.Decimal, error) {
	val, err := s.get(keyPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	price, err := decimal.NewFromString(string(val))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("cached price %q: %w", val, err)
	}
	return price, nil
}

func (s *Store) SetPrice(price decimal.Decimal) error {
	return s.set(keyPrice, []byte(price.String()))
}

// Rounds returns the settled round history, newest first. An unwritten
// history is an empty slice, not an error.
func (s *Store) Rounds() ([]lotto.Round, error) {
	val, err := s.get(keyHistory)
	if errors.Is(err, ErrNotFound) {
		return []lotto.Round{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rounds []lotto.Round
	if err := json.Unmarshal(val, &rounds); err != nil {
		return nil, fmt.Errorf("cached history: %w", err)
	}
	return rounds, nil
}

// AppendRound prepends a settled round to the history. Re-ingesting an id
// already present is a no-op, reported by the false return. The
// read-modify-write runs inside one transaction so a stray concurrent
// writer cannot interleave within an append.
func (s *Store) AppendRound(round lotto.Round) (bool, error) {
	appended := false
	err := s.db.Update(func(txn *badger.Txn) error {
		var rounds []lotto.Round

		item, err := txn.Get(keyHistory)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(val, &rounds); err != nil {
				return fmt.Errorf("cached history: %w", err)
			}
		}

		for _, r := range rounds {
			if r.ID == round.ID {
				return nil
			}
		}

		updated, err := json.Marshal(append([]lotto.Round{round}, rounds...))
		if err != nil {
			return err
		}
		appended = true
		return txn.Set(keyHistory, updated)
	})
	if err != nil {
		return false, fmt.Errorf("cache append round %d: %w", round.ID, err)
	}
	return appended, nil
}

// LastBlock returns the ingestor's checkpoint, or ErrNotFound before the
// first completed scan.
func (s *Store) LastBlock() (uint64, error) {
	val, err := s.get(keyLastBlock)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(string(val), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cached checkpoint %q: %w", val, err)
	}
	return n, nil
}

func (s *Store) SetLastBlock(n uint64) error {
	return s.set(keyLastBlock, []byte(strconv.FormatUint(n, 10)))
}
