package tui

import (
	"testing"
	"time"
)

func TestRegisterSuccessClearsFormAndSchedulesRedirect(t *testing.T) {
	m := NewRegisterModel(nil)
	m.Username.SetValue("alice")
	m.Password.SetValue("hunter2")
	m.Submitting = true

	updated, cmd := m.Update(registerResultMsg{message: "Registration successful"})
	reg := updated.(RegisterModel)

	if reg.Username.Value() != "" {
		t.Errorf("username after success = %q, want empty", reg.Username.Value())
	}
	if reg.Password.Value() != "" {
		t.Errorf("password after success = %q, want empty", reg.Password.Value())
	}
	if reg.SuccessMsg != "Registration successful" {
		t.Errorf("SuccessMsg = %q, want %q", reg.SuccessMsg, "Registration successful")
	}
	if reg.Submitting {
		t.Error("Submitting still true after result")
	}
	if cmd == nil {
		t.Fatal("expected a redirect timer command")
	}
}

func TestRegisterRedirectDelay(t *testing.T) {
	if registerRedirectDelay != 5*time.Second {
		t.Errorf("registerRedirectDelay = %v, want %v", registerRedirectDelay, 5*time.Second)
	}
}
