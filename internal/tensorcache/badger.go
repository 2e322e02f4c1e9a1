// ABOUTME: Badger-backed tensor cache
// ABOUTME: Stores decoded spectrogram tensors keyed by file identity and target shape
package tensorcache

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/harperreed/spectra/pkg/tensor"
	"github.com/vmihailenco/msgpack/v5"
)

// Options configures the cache
type Options struct {
	// Dir holds the badger files. Required unless InMemory is set.
	Dir      string
	InMemory bool
}

// Badger caches tensors in a badger database
type Badger struct {
	db *badger.DB
}

// Open opens or creates the cache
func Open(opts Options) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("tensorcache: Dir is required for on-disk mode")
	}

	dbOpts := badger.DefaultOptions(opts.Dir).WithLogger(quietLogger{})
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open tensor cache: %w", err)
	}
	return &Badger{db: db}, nil
}

// Key identifies a file version decoded at a given shape
func Key(path string, info fs.FileInfo, shape tensor.Shape) []byte {
	return fmt.Appendf(nil, "tensor:%s:%d:%d:%s", path, info.Size(), info.ModTime().UnixNano(), shape)
}

// Get returns the cached tensor for the file, if any
func (b *Badger) Get(path string, info fs.FileInfo, shape tensor.Shape) (tensor.Tensor, bool, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(Key(path, info, shape))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return tensor.Tensor{}, false, nil
	}
	if err != nil {
		return tensor.Tensor{}, false, err
	}

	var t tensor.Tensor
	if err := msgpack.Unmarshal(val, &t); err != nil {
		return tensor.Tensor{}, false, fmt.Errorf("corrupt cache entry for %s: %w", path, err)
	}
	if t.Shape != shape || len(t.Data) != shape.Size() {
		return tensor.Tensor{}, false, nil
	}
	return t, true, nil
}

// Put stores a decoded tensor
func (b *Badger) Put(path string, info fs.FileInfo, t tensor.Tensor) error {
	val, err := msgpack.Marshal(&t)
	if err != nil {
		return fmt.Errorf("failed to encode tensor: %w", err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(Key(path, info, t.Shape), val)
	})
}

// Close releases the database
func (b *Badger) Close() error {
	return b.db.Close()
}

// quietLogger routes badger warnings and errors to the standard logger
type quietLogger struct{}

func (quietLogger) Errorf(f string, v ...interface{})   { log.Printf("[badger] ERROR: "+f, v...) }
func (quietLogger) Warningf(f string, v ...interface{}) { log.Printf("[badger] WARN: "+f, v...) }
func (quietLogger) Infof(string, ...interface{})        {}
func (quietLogger) Debugf(string, ...interface{})       {}
