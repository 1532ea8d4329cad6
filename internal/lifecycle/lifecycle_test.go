package lifecycle

import (
	"testing"
)

func TestCanTransition(t *testing.T) {
	legal := map[[2]string]bool{
		{StatusOpen, StatusPending}:         true,
		{StatusOpen, StatusCancelled}:       true,
		{StatusPending, StatusInProgress}:   true,
		{StatusPending, StatusCancelled}:    true,
		{StatusInProgress, StatusCompleted}: true,
		{StatusCompleted, StatusConfirmed}:  true,
		{StatusCompleted, StatusDisputed}:   true,
		{StatusConfirmed, StatusPaid}:       true,
		{StatusConfirmed, StatusDisputed}:   true,
		{StatusDisputed, StatusCancelled}:   true,
		{StatusDisputed, StatusPaid}:        true,
	}

	for _, from := range All() {
		for _, to := range All() {
			want := legal[[2]string{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestSelfTransitionRejected(t *testing.T) {
	for _, s := range All() {
		if CanTransition(s, s) {
			t.Errorf("CanTransition(%s, %s) should be false", s, s)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range All() {
		want := s == StatusPaid || s == StatusCancelled
		if got := IsTerminal(s); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestDisputable(t *testing.T) {
	for _, s := range All() {
		want := s == StatusCompleted || s == StatusConfirmed
		if got := Disputable(s); got != want {
			t.Errorf("Disputable(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestCancellable(t *testing.T) {
	for _, s := range All() {
		want := s == StatusOpen || s == StatusPending
		if got := Cancellable(s); got != want {
			t.Errorf("Cancellable(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range All() {
		if !Valid(s) {
			t.Errorf("Valid(%s) = false", s)
		}
	}
	if Valid("archived") {
		t.Error("Valid(archived) = true")
	}
}
