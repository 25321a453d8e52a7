package booking

import "sync"

// roomLocks hands out one mutex per room so that the conflict check and
// the subsequent insert run as a critical section per room. Without it
// two concurrent admissions could both pass the overlap check and both
// insert (check-then-act race). Mutexes are never discarded; the map is
// bounded by the number of rooms ever booked in this process.
type roomLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[uint64]*sync.Mutex)}
}

// acquire locks the mutex for roomID and returns the unlock function.
func (l *roomLocks) acquire(roomID uint64) func() {
	l.mu.Lock()
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
