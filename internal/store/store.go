// Package store keeps JSON documents in named collections on top of BadgerDB.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sequenceKey       = "meta:sequence"
	sequenceBandwidth = 100

	// IDField is set on every inserted document that does not carry one.
	IDField = "id"
)

// Collection names used by the service.
const (
	Students    = "students"
	Connections = "connections"
	Events      = "events"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrClosed   = errors.New("store is closed")
)

// Document is a schemaless record.
type Document = map[string]any

type Options struct {
	Path     string
	InMemory bool
	Logger   *zap.Logger
}

// Store is safe for concurrent use.
type Store struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger *zap.Logger
}

func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	path := strings.TrimSpace(opts.Path)
	if path == "" && !opts.InMemory {
		return nil, errors.New("store path is required unless in-memory is set")
	}

	badgerOpts := badger.DefaultOptions(path).WithLogger(nil)
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("get sequence: %w", err)
	}

	logger.Info("document store opened",
		zap.String("path", path),
		zap.Bool("in_memory", opts.InMemory),
	)

	return &Store{db: db, seq: seq, logger: logger}, nil
}

// Close releases the unused sequence range and closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	var errs []error
	if err := s.seq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release sequence: %w", err))
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close badger: %w", err))
	}
	return errors.Join(errs...)
}

// Ping reports whether the database accepts reads.
func (s *Store) Ping(context.Context) error {
	if s == nil || s.db == nil || s.db.IsClosed() {
		return ErrClosed
	}
	return s.db.View(func(*badger.Txn) error { return nil })
}

func (s *Store) Collection(name string) *Collection {
	return &Collection{store: s, name: name, prefix: []byte(name + "/")}
}

// Collection iterates documents in insertion order.
type Collection struct {
	store  *Store
	name   string
	prefix []byte
}

func (c *Collection) Name() string { return c.name }

// Insert stores doc and returns its id. A fresh UUID is assigned when doc has no id.
// doc is not modified.
func (c *Collection) Insert(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stored := make(Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}

	id, _ := stored[IDField].(string)
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
		stored[IDField] = id
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("marshal %s document: %w", c.name, err)
	}

	n, err := c.store.seq.Next()
	if err != nil {
		return "", fmt.Errorf("next sequence: %w", err)
	}

	err = c.store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(c.key(n), data)
	})
	if err != nil {
		return "", fmt.Errorf("insert %s document: %w", c.name, err)
	}

	c.store.logger.Debug("document inserted", zap.String("collection", c.name), zap.String("id", id))

	return id, nil
}

// Find returns every document matching all filters.
func (c *Collection) Find(ctx context.Context, filters ...Filter) ([]Document, error) {
	var docs []Document
	err := c.scan(ctx, func(_ []byte, doc Document) (bool, error) {
		if matches(doc, filters) {
			docs = append(docs, doc)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

// FindOne returns the first matching document or ErrNotFound.
func (c *Collection) FindOne(ctx context.Context, filters ...Filter) (Document, error) {
	var found Document
	err := c.scan(ctx, func(_ []byte, doc Document) (bool, error) {
		if matches(doc, filters) {
			found = doc
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, fmt.Errorf("%s: %w", c.name, ErrNotFound)
	}
	return found, nil
}

func (c *Collection) Count(ctx context.Context, filters ...Filter) (int, error) {
	count := 0
	err := c.scan(ctx, func(_ []byte, doc Document) (bool, error) {
		if matches(doc, filters) {
			count++
		}
		return true, nil
	})
	return count, err
}

// DeleteOne removes the first matching document. It returns ErrNotFound when nothing matched.
func (c *Collection) DeleteOne(ctx context.Context, filters ...Filter) error {
	deleted, err := c.delete(ctx, 1, filters)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", c.name, ErrNotFound)
	}
	return nil
}

// DeleteMany removes every matching document and returns how many were removed.
func (c *Collection) DeleteMany(ctx context.Context, filters ...Filter) (int, error) {
	return c.delete(ctx, 0, filters)
}

func (c *Collection) delete(ctx context.Context, limit int, filters []Filter) (int, error) {
	var keys [][]byte
	err := c.scan(ctx, func(key []byte, doc Document) (bool, error) {
		if !matches(doc, filters) {
			return true, nil
		}
		keys = append(keys, key)
		return limit <= 0 || len(keys) < limit, nil
	})
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	err = c.store.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete %s documents: %w", c.name, err)
	}

	c.store.logger.Debug("documents deleted", zap.String("collection", c.name), zap.Int("count", len(keys)))

	return len(keys), nil
}

// scan visits documents in key order until visit returns false.
func (c *Collection) scan(ctx context.Context, visit func(key []byte, doc Document) (bool, error)) error {
	if c.store == nil || c.store.db == nil || c.store.db.IsClosed() {
		return ErrClosed
	}

	return c.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = c.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(c.prefix); it.ValidForPrefix(c.prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := it.Item()
			var doc Document
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			})
			if err != nil {
				return fmt.Errorf("decode %s document %s: %w", c.name, item.Key(), err)
			}

			more, err := visit(item.KeyCopy(nil), doc)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
		return nil
	})
}

// key zero-pads the sequence so lexical order equals insertion order.
func (c *Collection) key(n uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", c.prefix, n))
}
