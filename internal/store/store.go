// Package store provides the database backed key-value stores used by the engine.
//
// Every module opens its own prefixed KVStoreService. Writes never reach the
// database directly: a call runs against a Branch, a cachekv store that is
// either flushed into a single batch or discarded as a whole.
package store

import (
	"context"
	"errors"

	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/store/dbadapter"
	"cosmossdk.io/store/prefix"
	dbm "github.com/cosmos/cosmos-db"
)

var (
	errReadOnly   = errors.New("store is read only outside of a branch")
	errBranchDone = errors.New("branch already written or discarded")
)

type branchContextKey struct{}

// Store is a multi store over a single cosmos-db database.
type Store struct {
	db dbm.DB
}

// New wraps db into a Store.
func New(db dbm.DB) *Store {
	return &Store{db: db}
}

// NewMemStore returns a Store backed by an in-memory database.
func NewMemStore() *Store {
	return New(dbm.NewMemDB())
}

// DB returns the underlying database.
func (s *Store) DB() dbm.DB {
	return s.db
}

// Service returns the KVStoreService for the named module. Keys of
// different modules never overlap.
func (s *Store) Service(name string) corestore.KVStoreService {
	return &service{store: s, prefix: []byte(name + "/")}
}

// Branch opens a new write overlay on top of the database.
func (s *Store) Branch() *Branch {
	return newBranch(s.db)
}

// ContextWithBranch returns a context whose store services read and write
// through b.
func ContextWithBranch(ctx context.Context, b *Branch) context.Context {
	return context.WithValue(ctx, branchContextKey{}, b)
}

// BranchFromContext returns the branch carried by ctx, if any.
func BranchFromContext(ctx context.Context) (*Branch, bool) {
	b, ok := ctx.Value(branchContextKey{}).(*Branch)
	return b, ok
}

type service struct {
	store  *Store
	prefix []byte
}

func (s *service) OpenKVStore(ctx context.Context) corestore.KVStore {
	if b, ok := BranchFromContext(ctx); ok {
		return kvStore{parent: prefix.NewStore(b.cache, s.prefix)}
	}
	return kvStore{
		parent:   prefix.NewStore(dbadapter.Store{DB: s.store.db}, s.prefix),
		readOnly: true,
	}
}
