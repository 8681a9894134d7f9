package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// staticCredentials is a fixed-token CredentialSource for tests
type staticCredentials string

func (s staticCredentials) Token() (string, bool) {
	return string(s), s != ""
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:3000/", nil)

	if client.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %s, want http://localhost:3000 (trailing slash stripped)", client.BaseURL)
	}

	if client.HTTPClient == nil {
		t.Error("HTTPClient should not be nil")
	}
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Request method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/users/login" {
			t.Errorf("Request path = %s, want /api/users/login", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("X-Request-Id header should be set")
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["username"] != "a" || body["password"] != "b" {
			t.Errorf("body = %v, want username=a password=b", body)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"token":"T1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	token, err := client.Login(context.Background(), "a", "b")

	if err != nil {
		t.Fatalf("Login() error = %v, want nil", err)
	}
	if token != "T1" {
		t.Errorf("token = %q, want \"T1\"", token)
	}
}

func TestLogin_RejectedWithoutMessageUsesDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Login(context.Background(), "a", "wrong")

	if !IsServerRejected(err) {
		t.Fatalf("error should be ServerRejected, got %v", err)
	}
	if msg := FailureMessage(err); msg != "Login failed. Please check your credentials." {
		t.Errorf("message = %q, want default login failure message", msg)
	}
}

func TestRegister_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/register" {
			t.Errorf("Request path = %s, want /api/users/register", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"User registered"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	msg, err := client.Register(context.Background(), "a", "b")

	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if msg != "User registered" {
		t.Errorf("message = %q, want \"User registered\"", msg)
	}
}

func TestListDevices_AttachesBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer T1" {
			t.Errorf("Authorization = %q, want \"Bearer T1\"", auth)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"_id":"d1","name":"Lamp","type":"light","status":"on"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	devices, err := client.ListDevices(context.Background())

	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("len(devices) = %d, want 1", len(devices))
	}
	if devices[0].ID != "d1" || devices[0].Name != "Lamp" || devices[0].Type != "light" {
		t.Errorf("device = %+v, want d1/Lamp/light", devices[0])
	}
}

func TestCreateDevice_ReturnsServerCopy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["name"] != "Lamp" || body["type"] != "light" {
			t.Errorf("body = %v, want name=Lamp type=light", body)
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"d1","name":"Lamp","type":"light"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	device, err := client.CreateDevice(context.Background(), "Lamp", "light")

	if err != nil {
		t.Fatalf("CreateDevice() error = %v", err)
	}
	if device.ID != "d1" {
		t.Errorf("device.ID = %q, want \"d1\"", device.ID)
	}
}

func TestDeleteDevice_PathAndMethod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("Request method = %s, want DELETE", r.Method)
		}
		if r.URL.Path != "/api/devices/d1" {
			t.Errorf("Request path = %s, want /api/devices/d1", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	if err := client.DeleteDevice(context.Background(), "d1"); err != nil {
		t.Errorf("DeleteDevice() error = %v", err)
	}
}

func TestControlDevice_BodyShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/devices/d1/control" {
			t.Errorf("Request path = %s, want /api/devices/d1/control", r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		want := map[string]string{"type": "light", "action": "Turn On", "status": "on"}
		for k, v := range want {
			if body[k] != v {
				t.Errorf("body[%q] = %q, want %q", k, body[k], v)
			}
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	err := client.ControlDevice(context.Background(), "d1", "light", "Turn On", "on")
	if err != nil {
		t.Errorf("ControlDevice() error = %v", err)
	}
}

func TestListRules_UnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":[{"id":"r1","name":"Night","trigger":{"type":"time","value":"22:00"},"condition":{"type":"","value":""},"action":{"type":"light","value":"off"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	rules, err := client.ListRules(context.Background())

	if err != nil {
		t.Fatalf("ListRules() error = %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("len(rules) = %d, want 1", len(rules))
	}
	if rules[0].ID != "r1" || rules[0].Trigger.Kind != "time" {
		t.Errorf("rule = %+v, want id=r1 trigger.type=time", rules[0])
	}
}

func TestCreateRule_OmitsID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if _, present := body["id"]; present {
			t.Error("create payload should not carry an id field")
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"r9","name":"Night","trigger":{},"condition":{},"action":{}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	created, err := client.CreateRule(context.Background(), AutomationRule{Name: "Night"})

	if err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}
	if created.ID != "r9" {
		t.Errorf("created.ID = %q, want \"r9\"", created.ID)
	}
}

func TestUpdateRule_SendsFullCopy(t *testing.T) {
	rule := AutomationRule{
		ID:      "r1",
		Name:    "Night",
		Trigger: Clause{Kind: "time", Value: "22:00"},
		Action:  Clause{Kind: "light", Value: "off"},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" {
			t.Errorf("Request method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/api/automation-rules/r1" {
			t.Errorf("Request path = %s, want /api/automation-rules/r1", r.URL.Path)
		}

		var body AutomationRule
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body != rule {
			t.Errorf("body = %+v, want the submitted rule unchanged", body)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{"id":"r1","name":"Night","trigger":{"type":"time","value":"22:00"},"condition":{"type":"","value":""},"action":{"type":"light","value":"off"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	updated, err := client.UpdateRule(context.Background(), rule)

	if err != nil {
		t.Fatalf("UpdateRule() error = %v", err)
	}
	if updated.ID != "r1" {
		t.Errorf("updated.ID = %q, want \"r1\"", updated.ID)
	}
}

func TestControlTV_ChannelPayloadOmitsVolume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}

		if body["action"] != "change_channel" {
			t.Errorf("action = %v, want change_channel", body["action"])
		}
		if body["channel"] != float64(5) {
			t.Errorf("channel = %v, want 5", body["channel"])
		}
		if _, present := body["volume"]; present {
			t.Error("volume must be absent from a change_channel payload")
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Channel changed to 5"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	channel := 5
	volume := 10
	msg, err := client.ControlTV(context.Background(), TVCommand{
		Action:  TVActionChangeChannel,
		Volume:  &volume, // stale field from the form; must be stripped
		Channel: &channel,
	})

	if err != nil {
		t.Fatalf("ControlTV() error = %v", err)
	}
	if msg != "Channel changed to 5" {
		t.Errorf("message = %q, want \"Channel changed to 5\"", msg)
	}
}

func TestControlCamera_DurationOnlyForRecord(t *testing.T) {
	tests := []struct {
		name         string
		action       string
		wantDuration bool
	}{
		{"record keeps duration", CameraActionRecord, true},
		{"snapshot drops duration", CameraActionSnapshot, false},
		{"on drops duration", CameraActionOn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]interface{}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("decoding request body: %v", err)
				}

				_, present := body["duration"]
				if present != tt.wantDuration {
					t.Errorf("duration present = %v, want %v", present, tt.wantDuration)
				}

				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"message":"ok"}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, staticCredentials("T1"))
			duration := 30
			_, err := client.ControlCamera(context.Background(), CameraCommand{
				Action:   tt.action,
				Duration: &duration,
			})
			if err != nil {
				t.Errorf("ControlCamera() error = %v", err)
			}
		})
	}
}

func TestControlDoor_SendsActionAndStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/smart-door/control" {
			t.Errorf("Request path = %s, want /api/smart-door/control", r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["action"] != "lock" || body["status"] != "unlocked" {
			t.Errorf("body = %v, want action=lock status=unlocked", body)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Door locked"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	msg, err := client.ControlDoor(context.Background(), DoorCommand{
		Action: DoorActionLock,
		Status: DoorStatusUnlocked,
	})

	if err != nil {
		t.Fatalf("ControlDoor() error = %v", err)
	}
	if msg != "Door locked" {
		t.Errorf("message = %q, want \"Door locked\"", msg)
	}
}

func TestAdjustWeather_SendsLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/weather/adjust-weather" {
			t.Errorf("Request path = %s, want /api/weather/adjust-weather", r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["location"] != "Oslo" {
			t.Errorf("location = %q, want \"Oslo\"", body["location"])
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Adjusted for rain"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("T1"))
	msg, err := client.AdjustWeather(context.Background(), "Oslo")

	if err != nil {
		t.Fatalf("AdjustWeather() error = %v", err)
	}
	if msg != "Adjusted for rain" {
		t.Errorf("message = %q, want \"Adjusted for rain\"", msg)
	}
}

func TestSend_ServerMessageSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid token"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials("stale"))
	err := client.DeleteDevice(context.Background(), "d1")

	if !IsServerRejected(err) {
		t.Fatalf("error should be ServerRejected, got %v", err)
	}
	if msg := FailureMessage(err); msg != "Invalid token" {
		t.Errorf("message = %q, want \"Invalid token\"", msg)
	}
	if !IsAuthFailure(err) {
		t.Error("401 rejection should register as an auth failure")
	}
}

func TestSend_Unreachable(t *testing.T) {
	// TEST-NET-1 (guaranteed unreachable)
	client := NewClient("http://192.0.2.1", nil)
	client.SetTimeout(100 * time.Millisecond)

	_, err := client.ListDevices(context.Background())

	if !IsUnreachable(err) {
		t.Fatalf("error should be Unreachable, got %v", err)
	}
	if msg := FailureMessage(err); msg != UnreachableMessage {
		t.Errorf("message = %q, want connectivity default", msg)
	}
}

func TestSend_MalformedSuccessBodyIsUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"token": not-json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Login(context.Background(), "a", "b")

	if !IsUnknown(err) {
		t.Fatalf("error should be Unknown for a malformed body, got %v", err)
	}
}

func TestSend_NoCredentialOmitsAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("Authorization = %q, want empty for unauthenticated session", auth)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"token":"T1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticCredentials(""))
	if _, err := client.Login(context.Background(), "a", "b"); err != nil {
		t.Errorf("Login() error = %v", err)
	}
}
