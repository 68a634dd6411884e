package models

import "testing"

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to BookingStatus }{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingCompleted},
		{BookingConfirmed, BookingCancelled},
	}
	for _, tt := range legal {
		if !CanTransition(tt.from, tt.to) {
			t.Errorf("expected %s -> %s to be legal", tt.from, tt.to)
		}
	}

	all := []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

	// Terminal states allow nothing out.
	for _, from := range []BookingStatus{BookingCompleted, BookingCancelled} {
		for _, to := range all {
			if CanTransition(from, to) {
				t.Errorf("terminal %s must not transition to %s", from, to)
			}
		}
	}

	// No backward moves, no self moves.
	if CanTransition(BookingConfirmed, BookingPending) {
		t.Error("confirmed -> pending must be illegal")
	}
	for _, s := range all {
		if CanTransition(s, s) {
			t.Errorf("%s -> %s must not count as a transition", s, s)
		}
	}
	if CanTransition(BookingPending, BookingCompleted) {
		t.Error("pending -> completed must be illegal without confirmation")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BookingStatus("archived").Valid() {
		t.Error("unknown status must be invalid")
	}
	if BookingStatus("").Valid() {
		t.Error("empty status must be invalid")
	}
}

func TestStatusTerminal(t *testing.T) {
	if BookingPending.Terminal() || BookingConfirmed.Terminal() {
		t.Error("pending and confirmed are not terminal")
	}
	if !BookingCompleted.Terminal() || !BookingCancelled.Terminal() {
		t.Error("completed and cancelled are terminal")
	}
}
