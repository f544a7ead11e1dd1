package signatures

import (
	"sync"

	"github.com/google/uuid"
)

// lockTable hands out one mutex per document id, created on first reference
// and shared by every caller referencing that id. Entries are retained for
// the life of the process: removing them under concurrent access is unsafe
// without reference counting, and the table is bounded by the number of
// distinct documents touched.
type lockTable struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// get returns the mutex for the given document id, creating it if needed.
func (t *lockTable) get(id uuid.UUID) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[id] = lock
	}
	return lock
}
