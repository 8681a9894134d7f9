package tui

import (
	"testing"

	"github.com/smarthome-tech/homectl/internal/api"
)

func TestDoorChoices(t *testing.T) {
	want := []string{api.DoorActionLock, api.DoorActionUnlock, api.DoorActionBusy}

	if len(doorChoices) != len(want) {
		t.Fatalf("len(doorChoices) = %d, want %d", len(doorChoices), len(want))
	}
	for i, action := range want {
		if doorChoices[i].Action != action {
			t.Errorf("doorChoices[%d].Action = %q, want %q", i, doorChoices[i].Action, action)
		}
	}
}

func TestNewDoorModelInitialStatus(t *testing.T) {
	m := NewDoorModel(nil)
	if m.Status != api.DoorStatusUnlocked {
		t.Errorf("initial Status = %q, want %q", m.Status, api.DoorStatusUnlocked)
	}
}

func TestDoorStatusAfter(t *testing.T) {
	tests := []struct {
		action string
		want   string
	}{
		{action: api.DoorActionLock, want: api.DoorStatusLocked},
		{action: api.DoorActionUnlock, want: api.DoorStatusUnlocked},
		{action: "unexpected", want: api.DoorStatusBusy},
	}

	for _, tt := range tests {
		if got := doorStatusAfter(tt.action); got != tt.want {
			t.Errorf("doorStatusAfter(%q) = %q, want %q", tt.action, got, tt.want)
		}
	}
}
