package booking

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2025, 2, 10, h, m, 0, 0, time.UTC)
}

func TestOverlapsMatchesClosedForm(t *testing.T) {
	cases := []struct {
		name           string
		a1, a2, b1, b2 time.Time
		want           bool
	}{
		{"disjoint before", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"disjoint after", at(13, 0), at(14, 0), at(11, 0), at(12, 0), false},
		{"partial overlap", at(9, 0), at(11, 0), at(10, 0), at(12, 0), true},
		{"containment", at(9, 0), at(13, 0), at(10, 0), at(11, 0), true},
		{"identical", at(9, 0), at(11, 0), at(9, 0), at(11, 0), true},
		{"touching at end", at(9, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"touching at start", at(11, 0), at(12, 0), at(9, 0), at(11, 0), false},
		{"one minute overlap", at(9, 0), at(11, 1), at(11, 0), at(12, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(tc.a1, tc.a2, tc.b1, tc.b2)
			if got != tc.want {
				t.Fatalf("Overlaps(%v,%v,%v,%v) = %v, want %v", tc.a1, tc.a2, tc.b1, tc.b2, got, tc.want)
			}
			// Symmetry: overlaps(A,B) == overlaps(B,A).
			if sym := Overlaps(tc.b1, tc.b2, tc.a1, tc.a2); sym != got {
				t.Fatalf("Overlaps is not symmetric for %s: %v vs %v", tc.name, got, sym)
			}
			// Closed form: a1 < b2 && b1 < a2.
			if closed := tc.a1.Before(tc.b2) && tc.b1.Before(tc.a2); closed != got {
				t.Fatalf("Overlaps disagrees with closed form for %s", tc.name)
			}
		})
	}
}

func TestOverlapsTouchingBoundariesNeverConflict(t *testing.T) {
	// [t0,t1) and [t1,t2) share no instant for any t0 < t1 < t2.
	for _, gap := range []time.Duration{time.Minute, time.Hour, 24 * time.Hour} {
		t0 := at(8, 0)
		t1 := t0.Add(gap)
		t2 := t1.Add(gap)
		if Overlaps(t0, t1, t1, t2) {
			t.Fatalf("[t0,t1) and [t1,t2) reported as overlapping (gap %v)", gap)
		}
		if Overlaps(t1, t2, t0, t1) {
			t.Fatalf("[t1,t2) and [t0,t1) reported as overlapping (gap %v)", gap)
		}
	}
}

func TestCheckIntervalOrder(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name       string
		start, end time.Time
		wantReason string // empty means accepted
	}{
		{"valid", now.Add(2 * time.Hour), now.Add(3 * time.Hour), ""},
		{"past start", now.Add(-time.Hour), now.Add(time.Hour), "start time cannot be in the past"},
		{"within lead time", now.Add(10 * time.Minute), now.Add(time.Hour), "reservations must start at least 30 minutes from now"},
		{"exactly at lead time", now.Add(MinLeadTime), now.Add(time.Hour), ""},
		{"start equals end", now.Add(2 * time.Hour), now.Add(2 * time.Hour), "start time must be earlier than end time"},
		{"start after end", now.Add(3 * time.Hour), now.Add(2 * time.Hour), "start time must be earlier than end time"},
		// Past start is evaluated before ordering, so an interval that is
		// both in the past and inverted reports the past-start reason.
		{"past start wins over ordering", now.Add(-time.Hour), now.Add(-30 * time.Minute), "start time cannot be in the past"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkInterval(now, tc.start, tc.end)
			if tc.wantReason == "" {
				if err != nil {
					t.Fatalf("expected acceptance, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected rejection %q, got acceptance", tc.wantReason)
			}
			if err.Reason != tc.wantReason {
				t.Fatalf("reason = %q, want %q", err.Reason, tc.wantReason)
			}
		})
	}
}
