package caching

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type badgerCache struct {
	db *badger.DB
}

// NewBadgerCache opens an embedded cache. An empty dir keeps everything in
// memory, which suits single-instance deployments and tests.
func NewBadgerCache(dir string) (ResponseCache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &badgerCache{db: db}, nil
}

func (b *badgerCache) Get(_ context.Context, key string) (*CachedResponse, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (b *badgerCache) Set(_ context.Context, key string, resp *CachedResponse) error {
	data, err := encode(resp)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), data)
	})
}

func (b *badgerCache) Delete(_ context.Context, keys ...string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete([]byte(keyPrefix + k)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
}

func (b *badgerCache) DeletePrefix(_ context.Context, prefixes ...string) error {
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for _, p := range prefixes {
			prefix := []byte(keyPrefix + p)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan cache prefixes: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	return b.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerCache) Ping(context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger cache is closed")
	}
	return nil
}

func (b *badgerCache) Close() error {
	return b.db.Close()
}
