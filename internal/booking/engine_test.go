package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var testNow = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(store *memStore) *Engine {
	e := NewEngine(store, store, store, zerolog.Nop())
	e.now = func() time.Time { return testNow }
	return e
}

func TestAdmitPersistsResolvedReservation(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala A", "Andar 1", 4, alice.ID)

	res, err := newTestEngine(store).Admit(context.Background(), Candidate{
		RoomID:  room.ID,
		UserRef: "Alice",
		Start:   at(10, 0),
		End:     at(11, 0),
	})
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if res.ID == 0 {
		t.Fatal("expected an assigned reservation ID")
	}
	if res.UserID != alice.ID {
		t.Fatalf("UserID = %d, want %d", res.UserID, alice.ID)
	}
	if res.RoomID != room.ID {
		t.Fatalf("RoomID = %d, want %d", res.RoomID, room.ID)
	}
	if res.CreatedAt.IsZero() {
		t.Fatal("expected a server-assigned creation timestamp")
	}
	if store.reservationCount() != 1 {
		t.Fatalf("stored reservations = %d, want 1", store.reservationCount())
	}
}

func TestAdmitResolvesUserByNumericID(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala A", "Andar 1", 4, alice.ID)

	res, err := newTestEngine(store).Admit(context.Background(), Candidate{
		RoomID:  room.ID,
		UserRef: "1",
		Start:   at(10, 0),
		End:     at(11, 0),
	})
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if res.UserID != alice.ID {
		t.Fatalf("UserID = %d, want %d", res.UserID, alice.ID)
	}
}

func TestAdmitTimingRules(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		wantReason string
	}{
		{"past start", testNow.Add(-time.Hour), testNow.Add(time.Hour), "start time cannot be in the past"},
		{"insufficient lead time", testNow.Add(10 * time.Minute), testNow.Add(time.Hour), "reservations must start at least 30 minutes from now"},
		{"inverted interval", testNow.Add(2 * time.Hour), testNow.Add(time.Hour), "start time must be earlier than end time"},
		// Both in the past and inverted: the past-start rule is evaluated
		// first, so its reason wins.
		{"past start wins over ordering", testNow.Add(-time.Hour), testNow.Add(-30 * time.Minute), "start time cannot be in the past"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			alice := store.addUser("Alice", "alice@example.com")
			room := store.addRoom("Sala A", "Andar 1", 4, alice.ID)

			_, err := newTestEngine(store).Admit(context.Background(), Candidate{
				RoomID: room.ID, UserRef: "Alice", Start: tc.start, End: tc.end,
			})
			var ierr *InvalidIntervalError
			if !errors.As(err, &ierr) {
				t.Fatalf("expected InvalidIntervalError, got %v", err)
			}
			if ierr.Reason != tc.wantReason {
				t.Fatalf("reason = %q, want %q", ierr.Reason, tc.wantReason)
			}
			if store.reservationCount() != 0 {
				t.Fatal("rejection must not write a reservation")
			}
		})
	}
}

func TestAdmitAcceptsStartExactlyAtLeadTime(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala A", "Andar 1", 4, alice.ID)

	// start == now + 30m is on the accepted side of the boundary.
	_, err := newTestEngine(store).Admit(context.Background(), Candidate{
		RoomID:  room.ID,
		UserRef: "Alice",
		Start:   testNow.Add(MinLeadTime),
		End:     testNow.Add(MinLeadTime + time.Hour),
	})
	if err != nil {
		t.Fatalf("Admit at exact lead-time boundary rejected: %v", err)
	}
}

func TestAdmitUnknownRoom(t *testing.T) {
	store := newMemStore()
	store.addUser("Alice", "alice@example.com")

	_, err := newTestEngine(store).Admit(context.Background(), Candidate{
		RoomID: 999, UserRef: "Alice", Start: at(10, 0), End: at(11, 0),
	})
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if store.reservationCount() != 0 {
		t.Fatal("rejection must not write a reservation")
	}
}

func TestAdmitConflictNamesBlockingReservation(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala 101", "Andar 1", 6, alice.ID)
	existing := store.addReservation(room.ID, alice.ID, at(9, 0), at(11, 0))

	_, err := newTestEngine(store).Admit(context.Background(), Candidate{
		RoomID: room.ID, UserRef: "Alice", Start: at(10, 0), End: at(12, 0),
	})
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if cerr.Conflicting.ID != existing.ID {
		t.Fatalf("conflict names reservation %d, want %d", cerr.Conflicting.ID, existing.ID)
	}
	if cerr.Conflicting.RoomID != room.ID {
		t.Fatalf("conflict names room %d, want %d", cerr.Conflicting.RoomID, room.ID)
	}
	if store.reservationCount() != 1 {
		t.Fatal("rejection must not write a reservation")
	}
}

func TestAdmitTouchingBoundaryAccepted(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala 101", "Andar 1", 6, alice.ID)
	store.addReservation(room.ID, alice.ID, at(9, 0), at(11, 0))

	// Starts exactly when the existing reservation ends: no overlap.
	res, err := newTestEngine(store).Admit(context.Background(), Candidate{
		RoomID: room.ID, UserRef: "Alice", Start: at(11, 0), End: at(12, 0),
	})
	if err != nil {
		t.Fatalf("touching reservation rejected: %v", err)
	}
	if res.ID == 0 {
		t.Fatal("expected an assigned reservation ID")
	}
	if store.reservationCount() != 2 {
		t.Fatalf("stored reservations = %d, want 2", store.reservationCount())
	}
}

func TestAdmitUserResolution(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		store := newMemStore()
		creator := store.addUser("Alice", "alice@example.com")
		room := store.addRoom("Sala A", "Andar 1", 4, creator.ID)

		_, err := newTestEngine(store).Admit(context.Background(), Candidate{
			RoomID: room.ID, UserRef: "Nobody", Start: at(10, 0), End: at(11, 0),
		})
		if !errors.Is(err, ErrUnknownUser) {
			t.Fatalf("expected ErrUnknownUser, got %v", err)
		}
		if store.reservationCount() != 0 {
			t.Fatal("rejection must not write a reservation")
		}
	})

	t.Run("ambiguous user", func(t *testing.T) {
		store := newMemStore()
		creator := store.addUser("Alice", "alice@example.com")
		store.addUser("alice", "alice2@example.com") // same name, different case
		room := store.addRoom("Sala A", "Andar 1", 4, creator.ID)

		_, err := newTestEngine(store).Admit(context.Background(), Candidate{
			RoomID: room.ID, UserRef: "Alice", Start: at(10, 0), End: at(11, 0),
		})
		if !errors.Is(err, ErrAmbiguousUser) {
			t.Fatalf("expected ErrAmbiguousUser, got %v", err)
		}
		if store.reservationCount() != 0 {
			t.Fatal("rejection must not write a reservation")
		}
	})
}

func TestAdmitConcurrentOverlappingCandidates(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala A", "Andar 1", 4, alice.ID)
	engine := newTestEngine(store)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		admitted  int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Admit(context.Background(), Candidate{
				RoomID: room.ID, UserRef: "Alice", Start: at(10, 0), End: at(11, 0),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
			default:
				var cerr *ConflictError
				if errors.As(err, &cerr) {
					conflicts++
				}
			}
		}()
	}
	wg.Wait()

	if admitted != 1 {
		t.Fatalf("admitted = %d, want exactly 1", admitted)
	}
	if conflicts != attempts-1 {
		t.Fatalf("conflicts = %d, want %d", conflicts, attempts-1)
	}
	if store.reservationCount() != 1 {
		t.Fatalf("stored reservations = %d, want 1", store.reservationCount())
	}
}

func TestIsAvailable(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala A", "Andar 1", 4, alice.ID)
	store.addReservation(room.ID, alice.ID, at(9, 0), at(11, 0))
	engine := newTestEngine(store)

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"busy interval", at(10, 0), at(12, 0), false},
		{"free interval", at(12, 0), at(13, 0), true},
		{"touching end is free", at(11, 0), at(12, 0), true},
		{"touching start is free", at(8, 0), at(9, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.IsAvailable(context.Background(), room.ID, tc.start, tc.end)
			if err != nil {
				t.Fatalf("IsAvailable returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsAvailable = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("unknown room", func(t *testing.T) {
		_, err := engine.IsAvailable(context.Background(), 999, at(10, 0), at(11, 0))
		if !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("expected ErrRoomNotFound, got %v", err)
		}
	})
}

func TestListForRoomDateFilterAndPaging(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala 101", "Andar 1", 6, alice.ID)
	// Three reservations on Feb 10, two on Feb 11.
	store.addReservation(room.ID, alice.ID, at(9, 0), at(10, 0))
	store.addReservation(room.ID, alice.ID, at(11, 0), at(12, 0))
	store.addReservation(room.ID, alice.ID, at(14, 0), at(15, 0))
	store.addReservation(room.ID, alice.ID, at(9, 0).AddDate(0, 0, 1), at(10, 0).AddDate(0, 0, 1))
	store.addReservation(room.ID, alice.ID, at(11, 0).AddDate(0, 0, 1), at(12, 0).AddDate(0, 0, 1))
	engine := newTestEngine(store)

	date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	items, info, err := engine.ListForRoom(context.Background(), room.ID, &date, PageRequest{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListForRoom returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("page size = %d, want 2", len(items))
	}
	if info.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3", info.TotalItems)
	}
	if info.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2 (ceil(3/2))", info.TotalPages)
	}
	for _, r := range items {
		if r.StartTime.Day() != 10 {
			t.Fatalf("reservation %d starts on day %d, want 10", r.ID, r.StartTime.Day())
		}
	}

	t.Run("unknown room", func(t *testing.T) {
		_, _, err := engine.ListForRoom(context.Background(), 999, nil, PageRequest{})
		if !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("expected ErrRoomNotFound, got %v", err)
		}
	})
}

func TestDeleteReservation(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala A", "Andar 1", 4, alice.ID)
	res := store.addReservation(room.ID, alice.ID, at(9, 0), at(10, 0))
	engine := newTestEngine(store)

	if err := engine.Delete(context.Background(), res.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if store.reservationCount() != 0 {
		t.Fatal("reservation still present after delete")
	}
	if err := engine.Delete(context.Background(), res.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound on second delete, got %v", err)
	}
}

func TestEngineSurfacesStoreFailures(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Sala A", "Andar 1", 4, alice.ID)
	store.failWith = ErrStoreUnavailable
	engine := newTestEngine(store)

	_, err := engine.Admit(context.Background(), Candidate{
		RoomID: room.ID, UserRef: "Alice", Start: at(10, 0), End: at(11, 0),
	})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
