package kv

import (
	"errors"
	"log"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger is a Store backed by BadgerDB v4.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files. Required unless InMemory.
	Dir string

	// InMemory runs BadgerDB without disk persistence. Useful for tests
	// that want the real engine.
	InMemory bool
}

// NewBadger opens a BadgerDB-backed Store.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("kv: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	dbOpts = dbOpts.WithLogger(quietLogger{})
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Get(key string) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (b *Badger) Set(key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (b *Badger) List(prefix string) ([]Entry, error) {
	var entries []Entry
	err := b.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = []byte(prefix)
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			entries = append(entries, Entry{
				Key:   string(item.KeyCopy(nil)),
				Value: val,
			})
		}
		return nil
	})
	return entries, err
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// quietLogger routes badger errors and warnings through the standard logger
// and drops the info/debug chatter.
type quietLogger struct{}

func (quietLogger) Errorf(f string, v ...interface{})   { log.Printf("[badger] ERROR: "+f, v...) }
func (quietLogger) Warningf(f string, v ...interface{}) { log.Printf("[badger] WARN: "+f, v...) }
func (quietLogger) Infof(string, ...interface{})        {}
func (quietLogger) Debugf(string, ...interface{})       {}
