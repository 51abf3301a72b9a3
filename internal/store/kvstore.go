package store

import (
	"fmt"

	corestore "cosmossdk.io/core/store"
	storetypes "cosmossdk.io/store/types"
)

// kvStore exposes a store KVStore through the core KVStore interface. The
// store packages panic on invalid keys and database failures; those panics
// are returned as errors.
type kvStore struct {
	parent   storetypes.KVStore
	readOnly bool
}

var _ corestore.KVStore = kvStore{}

func (s kvStore) Get(key []byte) (value []byte, err error) {
	defer recoverError(&err)
	return s.parent.Get(key), nil
}

func (s kvStore) Has(key []byte) (has bool, err error) {
	defer recoverError(&err)
	return s.parent.Has(key), nil
}

func (s kvStore) Set(key, value []byte) (err error) {
	if s.readOnly {
		return errReadOnly
	}
	defer recoverError(&err)
	s.parent.Set(key, value)
	return nil
}

func (s kvStore) Delete(key []byte) (err error) {
	if s.readOnly {
		return errReadOnly
	}
	defer recoverError(&err)
	s.parent.Delete(key)
	return nil
}

func (s kvStore) Iterator(start, end []byte) (it corestore.Iterator, err error) {
	defer recoverError(&err)
	return s.parent.Iterator(start, end), nil
}

func (s kvStore) ReverseIterator(start, end []byte) (it corestore.Iterator, err error) {
	defer recoverError(&err)
	return s.parent.ReverseIterator(start, end), nil
}

func recoverError(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*err = e
		return
	}
	*err = fmt.Errorf("kv store: %v", r)
}
