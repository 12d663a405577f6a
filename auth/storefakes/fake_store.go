package storefakes

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/findash/findash/auth"
)

var _ auth.Store = (*FakeStore)(nil)

// FakeStore is an in-memory session slot for tests. Operations can be made to
// fail by setting the corresponding flags.
type FakeStore struct {
	lock    sync.RWMutex
	payload []byte

	FailLoad  bool
	FailSave  bool
	FailClear bool
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (f *FakeStore) Load(ctx context.Context) ([]byte, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	if f.FailLoad {
		return nil, errors.New("load failed")
	}
	if f.payload == nil {
		return nil, nil
	}
	return append([]byte(nil), f.payload...), nil
}

func (f *FakeStore) Save(ctx context.Context, payload []byte) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.FailSave {
		return errors.New("save failed")
	}
	f.payload = append([]byte(nil), payload...)
	return nil
}

func (f *FakeStore) Clear(ctx context.Context) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.FailClear {
		return errors.New("clear failed")
	}
	f.payload = nil
	return nil
}

// Seed stores a raw payload directly, bypassing the failure flags.
func (f *FakeStore) Seed(payload []byte) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.payload = append([]byte(nil), payload...)
}

// Stored returns the raw slot contents, nil when empty.
func (f *FakeStore) Stored() []byte {
	f.lock.RLock()
	defer f.lock.RUnlock()
	if f.payload == nil {
		return nil
	}
	return append([]byte(nil), f.payload...)
}
