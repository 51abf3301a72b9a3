package store

import (
	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/store/cachekv"
	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
)

// Branch buffers writes on top of a database. Reads see the buffered writes
// first. Nothing reaches the database until Write is called.
type Branch struct {
	cache  *cachekv.Store
	parent *batchStore
	done   bool
}

var _ corestore.KVStore = (*Branch)(nil)

func newBranch(db dbm.DB) *Branch {
	parent := &batchStore{Store: dbadapter.Store{DB: db}}
	return &Branch{
		cache:  cachekv.NewStore(parent),
		parent: parent,
	}
}

func (b *Branch) kv() kvStore {
	return kvStore{parent: b.cache}
}

// Get implements KVStore.
func (b *Branch) Get(key []byte) ([]byte, error) {
	return b.kv().Get(key)
}

// Has implements KVStore.
func (b *Branch) Has(key []byte) (bool, error) {
	return b.kv().Has(key)
}

// Set implements KVStore.
func (b *Branch) Set(key, value []byte) error {
	if b.done {
		return errBranchDone
	}
	return b.kv().Set(key, value)
}

// Delete implements KVStore.
func (b *Branch) Delete(key []byte) error {
	if b.done {
		return errBranchDone
	}
	return b.kv().Delete(key)
}

// Iterator implements KVStore.
func (b *Branch) Iterator(start, end []byte) (corestore.Iterator, error) {
	return b.kv().Iterator(start, end)
}

// ReverseIterator implements KVStore.
func (b *Branch) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	return b.kv().ReverseIterator(start, end)
}

// Write flushes the buffered writes to the database in one synced batch.
// The branch cannot be used for writes afterwards.
func (b *Branch) Write() (err error) {
	if b.done {
		return errBranchDone
	}
	b.done = true

	b.parent.batch = b.parent.DB.NewBatch()
	defer b.parent.batch.Close()
	defer recoverError(&err)

	b.cache.Write()
	return b.parent.batch.WriteSync()
}

// Written returns the number of keys set or deleted by Write.
func (b *Branch) Written() int {
	return b.parent.written
}

// Discard drops every buffered write.
func (b *Branch) Discard() {
	b.done = true
}

// batchStore reads from the database and stages the writes flushed by the
// cache into a batch.
type batchStore struct {
	dbadapter.Store
	batch   dbm.Batch
	written int
}

func (s *batchStore) Set(key, value []byte) {
	if err := s.batch.Set(key, value); err != nil {
		panic(err)
	}
	s.written++
}

func (s *batchStore) Delete(key []byte) {
	if err := s.batch.Delete(key); err != nil {
		panic(err)
	}
	s.written++
}
