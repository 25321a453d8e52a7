package booking

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// memStore is an in-memory implementation of RoomStore,
// ReservationStore and UserStore. It mirrors the semantics of the SQL
// repositories (ordering, filter matching, the overlap predicate) so
// engine tests exercise the same behavior the real store would show.
type memStore struct {
	mu           sync.Mutex
	rooms        map[uint64]model.Room
	users        map[uint64]model.User
	reservations map[uint64]model.Reservation
	nextID       uint64
	clock        time.Time // assigned as created_at on inserts
	failWith     error     // when set, every call fails with this error
}

func newMemStore() *memStore {
	return &memStore{
		rooms:        make(map[uint64]model.Room),
		users:        make(map[uint64]model.User),
		reservations: make(map[uint64]model.Reservation),
		clock:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) nextIdentifier() uint64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(name, email string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := model.User{ID: s.nextIdentifier(), Name: name, Email: email, CreatedAt: s.clock}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addRoom(name, location string, capacity uint32, creatorID uint64) model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := model.Room{ID: s.nextIdentifier(), Name: name, Location: location, Capacity: capacity, CreatorID: creatorID, CreatedAt: s.clock}
	s.rooms[r.ID] = r
	return r
}

func (s *memStore) addReservation(roomID, userID uint64, start, end time.Time) model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := model.Reservation{ID: s.nextIdentifier(), RoomID: roomID, UserID: userID, StartTime: start, EndTime: end, CreatedAt: s.clock}
	s.reservations[r.ID] = r
	return r
}

func (s *memStore) reservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

// ----- RoomStore -----

func (s *memStore) FindRoom(_ context.Context, id uint64) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	r, ok := s.rooms[id]
	if !ok {
		return nil, nil
	}
	clone := r
	return &clone, nil
}

func (s *memStore) InsertRoom(_ context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	room.ID = s.nextIdentifier()
	room.CreatedAt = s.clock
	s.rooms[room.ID] = *room
	return nil
}

func (s *memStore) ListRooms(_ context.Context, f RoomFilter) ([]model.Room, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, 0, s.failWith
	}
	var matched []model.Room
	for _, r := range s.rooms {
		if f.ID != 0 && r.ID != f.ID {
			continue
		}
		if f.Capacity != 0 && r.Capacity != f.Capacity {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Location != "" && !strings.Contains(strings.ToLower(r.Location), strings.ToLower(f.Location)) {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := len(matched)
	return pageSliceRooms(matched, f.PageRequest), total, nil
}

// ----- ReservationStore -----

func (s *memStore) FindOverlapping(_ context.Context, roomID uint64, start, end time.Time) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.RoomID != roomID {
			continue
		}
		if Overlaps(r.StartTime, r.EndTime, start, end) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *memStore) InsertReservation(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	res.ID = s.nextIdentifier()
	res.CreatedAt = s.clock
	s.reservations[res.ID] = *res
	return nil
}

func (s *memStore) ListReservations(_ context.Context, f ReservationFilter) ([]model.Reservation, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, 0, s.failWith
	}
	var matched []model.Reservation
	for _, r := range s.reservations {
		if f.ID != 0 && r.ID != f.ID {
			continue
		}
		if f.RoomID != 0 && r.RoomID != f.RoomID {
			continue
		}
		if f.UserID != 0 && r.UserID != f.UserID {
			continue
		}
		if f.Date != nil && !sameDate(r.StartTime, *f.Date) {
			continue
		}
		if f.CreatedDate != nil && !sameDate(r.CreatedAt, *f.CreatedDate) {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].StartTime.Before(matched[j].StartTime) })
	total := len(matched)
	return pageSliceReservations(matched, f.PageRequest), total, nil
}

func (s *memStore) DeleteReservation(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	if _, ok := s.reservations[id]; !ok {
		return false, nil
	}
	delete(s.reservations, id)
	return true, nil
}

// ----- UserStore -----

func (s *memStore) FindUser(_ context.Context, id uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	clone := u
	return &clone, nil
}

func (s *memStore) FindUserByName(_ context.Context, name string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Name, name) {
			clone := u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			clone := u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memStore) ResolveUsers(_ context.Context, ref string) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []model.User
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
		return out, nil
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Name, ref) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) InsertUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	u.ID = s.nextIdentifier()
	u.CreatedAt = s.clock
	s.users[u.ID] = *u
	return nil
}

func (s *memStore) ListUsers(_ context.Context, f UserFilter) ([]model.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, 0, s.failWith
	}
	var matched []model.User
	for _, u := range s.users {
		if f.ID != 0 && u.ID != f.ID {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Email != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Email)) {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := len(matched)
	return pageSliceUsers(matched, f.PageRequest), total, nil
}

// ----- helpers -----

func sameDate(t, d time.Time) bool {
	ty, tm, td := t.UTC().Date()
	dy, dm, dd := d.UTC().Date()
	return ty == dy && tm == dm && td == dd
}

func pageSliceRooms(in []model.Room, p PageRequest) []model.Room {
	lo, hi := pageBounds(len(in), p)
	return in[lo:hi]
}

func pageSliceUsers(in []model.User, p PageRequest) []model.User {
	lo, hi := pageBounds(len(in), p)
	return in[lo:hi]
}

func pageSliceReservations(in []model.Reservation, p PageRequest) []model.Reservation {
	lo, hi := pageBounds(len(in), p)
	return in[lo:hi]
}

func pageBounds(n int, p PageRequest) (int, int) {
	lo := p.Offset()
	if lo > n {
		lo = n
	}
	hi := lo + p.Limit
	if hi > n {
		hi = n
	}
	return lo, hi
}
