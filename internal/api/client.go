package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smarthome-tech/homectl/internal/logging"
)

// DefaultTimeout is the default HTTP request timeout
const DefaultTimeout = 15 * time.Second

// Default failure messages per operation. The server's own message field
// takes precedence when a rejection carries one; these mirror the hosted
// web client's wording.
const (
	loginFailedMessage      = "Login failed. Please check your credentials."
	registerFailedMessage   = "Registration failed. Please try again."
	registerSuccessMessage  = "Registration successful"
	fetchDevicesMessage     = "Error fetching devices"
	createDeviceMessage     = "Error creating device"
	deleteDeviceMessage     = "Error deleting device"
	fetchRulesMessage       = "Failed to fetch automation rules."
	createRuleMessage       = "Failed to create the automation rule."
	updateRuleMessage       = "Failed to update the automation rule."
	deleteRuleMessage       = "Failed to delete the automation rule."
	cameraControlMessage    = "Failed to control camera."
	doorControlMessage      = "Failed to control the door."
	tvControlMessage        = "Failed to control the TV."
	weatherControlMessage   = "Failed to adjust devices based on weather."
	actionSuccessfulMessage = "Action successful"
	weatherAdjustedMessage  = "Weather adjustment successful."
)

// CredentialSource supplies the bearer token attached to authenticated
// requests. The session package implements it.
type CredentialSource interface {
	// Token returns the current credential and whether one is present
	Token() (string, bool)
}

// Client dispatches commands to the Smart Home Tech API.
//
// It owns no panel or session state: it attaches the credential it is
// given, sends one request per call, and classifies the outcome. Callers
// reconcile their own state from the result.
type Client struct {
	// BaseURL is the API server base URL (e.g. "http://localhost:3000")
	BaseURL string

	// Credentials supplies the bearer token; may be nil for clients that
	// only call the unauthenticated endpoints
	Credentials CredentialSource

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a client for the API at baseURL using creds for
// authentication.
func NewClient(baseURL string, creds CredentialSource) *Client {
	return &Client{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		Credentials: creds,
		HTTPClient:  &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// send performs one request and classifies the outcome.
//
// A non-nil body is serialized as JSON with the matching content type. The
// bearer credential is attached when present. On 2xx the response body is
// decoded into out (when out is non-nil); any other outcome returns an
// *APIError whose message falls back to defaultMessage for rejections
// without a structured message field.
func (c *Client) send(ctx context.Context, method, path string, body, out interface{}, defaultMessage string) error {
	requestID := uuid.NewString()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return NewUnknown(fmt.Errorf("encoding request body: %w", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return NewUnknown(fmt.Errorf("creating request: %w", err))
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Credentials != nil {
		if token, ok := c.Credentials.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-Id", requestID)

	logging.LogRequest(requestID, method, path, body != nil)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		apiErr := ClassifyTransportError(err)
		logging.LogFailure(requestID, apiErr.Kind.String(), apiErr.Message)
		return apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := NewUnreachable(err)
		logging.LogFailure(requestID, apiErr.Kind.String(), apiErr.Message)
		return apiErr
	}

	logging.LogResponse(requestID, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := defaultMessage
		var eb errorBody
		if len(respBody) > 0 && json.Unmarshal(respBody, &eb) == nil && eb.Message != "" {
			message = eb.Message
		}
		apiErr := NewServerRejected(resp.StatusCode, message)
		logging.LogFailure(requestID, apiErr.Kind.String(), apiErr.Message)
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return NewUnknown(fmt.Errorf("malformed response body: %w", err))
		}
	}

	return nil
}

// Login authenticates with the API and returns the issued bearer token.
// The caller is responsible for storing it in the session.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	body := credentialsRequest{Username: username, Password: password}
	if err := c.send(ctx, http.MethodPost, "/api/users/login", body, &out, loginFailedMessage); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates a new account and returns the server's confirmation
// message.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var out messageResponse
	body := credentialsRequest{Username: username, Password: password}
	if err := c.send(ctx, http.MethodPost, "/api/users/register", body, &out, registerFailedMessage); err != nil {
		return "", err
	}
	if out.Message == "" {
		return registerSuccessMessage, nil
	}
	return out.Message, nil
}

// ListDevices fetches all devices. The returned slice preserves server
// order.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	var out []Device
	if err := c.send(ctx, http.MethodGet, "/api/devices", nil, &out, fetchDevicesMessage); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDevice registers a new device and returns the server's copy,
// including the assigned identifier.
func (c *Client) CreateDevice(ctx context.Context, name, deviceType string) (Device, error) {
	var out Device
	body := createDeviceRequest{Name: name, Type: deviceType}
	if err := c.send(ctx, http.MethodPost, "/api/devices", body, &out, createDeviceMessage); err != nil {
		return Device{}, err
	}
	return out, nil
}

// DeleteDevice removes a device by identifier.
func (c *Client) DeleteDevice(ctx context.Context, id string) error {
	path := "/api/devices/" + url.PathEscape(id)
	return c.send(ctx, http.MethodDelete, path, nil, nil, deleteDeviceMessage)
}

// ControlDevice issues a device action (e.g. turn a light on). The server
// does not echo updated device state; callers refetch the list afterwards.
func (c *Client) ControlDevice(ctx context.Context, id, deviceType, action, status string) error {
	path := "/api/devices/" + url.PathEscape(id) + "/control"
	body := controlDeviceRequest{Type: deviceType, Action: action, Status: status}
	defaultMessage := fmt.Sprintf("Error performing action: %s", action)
	return c.send(ctx, http.MethodPost, path, body, nil, defaultMessage)
}

// ListRules fetches all automation rules in server order.
func (c *Client) ListRules(ctx context.Context) ([]AutomationRule, error) {
	var out rulesEnvelope
	if err := c.send(ctx, http.MethodGet, "/api/automation-rules", nil, &out, fetchRulesMessage); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateRule creates an automation rule and returns the server's copy.
// The rule's ID field is ignored; the server assigns one.
func (c *Client) CreateRule(ctx context.Context, rule AutomationRule) (AutomationRule, error) {
	rule.ID = ""
	var out ruleEnvelope
	if err := c.send(ctx, http.MethodPost, "/api/automation-rules", rule, &out, createRuleMessage); err != nil {
		return AutomationRule{}, err
	}
	return out.Data, nil
}

// UpdateRule replaces a rule wholesale with the given copy and returns the
// server's version.
func (c *Client) UpdateRule(ctx context.Context, rule AutomationRule) (AutomationRule, error) {
	path := "/api/automation-rules/" + url.PathEscape(rule.ID)
	var out ruleEnvelope
	if err := c.send(ctx, http.MethodPut, path, rule, &out, updateRuleMessage); err != nil {
		return AutomationRule{}, err
	}
	return out.Data, nil
}

// DeleteRule removes a rule by identifier.
func (c *Client) DeleteRule(ctx context.Context, id string) error {
	path := "/api/automation-rules/" + url.PathEscape(id)
	return c.send(ctx, http.MethodDelete, path, nil, nil, deleteRuleMessage)
}

// ControlCamera issues a camera action and returns the server's message.
// Duration is stripped unless the action is record.
func (c *Client) ControlCamera(ctx context.Context, cmd CameraCommand) (string, error) {
	if cmd.Action != CameraActionRecord {
		cmd.Duration = nil
	}
	var out messageResponse
	if err := c.send(ctx, http.MethodPost, "/api/camera/control", cmd, &out, cameraControlMessage); err != nil {
		return "", err
	}
	if out.Message == "" {
		return actionSuccessfulMessage, nil
	}
	return out.Message, nil
}

// ControlDoor issues a door action and returns the server's message.
func (c *Client) ControlDoor(ctx context.Context, cmd DoorCommand) (string, error) {
	var out messageResponse
	if err := c.send(ctx, http.MethodPost, "/api/smart-door/control", cmd, &out, doorControlMessage); err != nil {
		return "", err
	}
	if out.Message == "" {
		return actionSuccessfulMessage, nil
	}
	return out.Message, nil
}

// ControlTV issues a TV action and returns the server's message. Volume is
// stripped unless the action is volume_up or volume_down, and channel
// unless it is change_channel.
func (c *Client) ControlTV(ctx context.Context, cmd TVCommand) (string, error) {
	if cmd.Action != TVActionVolumeUp && cmd.Action != TVActionVolumeDown {
		cmd.Volume = nil
	}
	if cmd.Action != TVActionChangeChannel {
		cmd.Channel = nil
	}
	var out messageResponse
	if err := c.send(ctx, http.MethodPost, "/api/tv/control", cmd, &out, tvControlMessage); err != nil {
		return "", err
	}
	if out.Message == "" {
		return actionSuccessfulMessage, nil
	}
	return out.Message, nil
}

// AdjustWeather asks the server to adjust devices for the weather at the
// given location and returns the server's message.
func (c *Client) AdjustWeather(ctx context.Context, location string) (string, error) {
	var out messageResponse
	body := WeatherCommand{Location: location}
	if err := c.send(ctx, http.MethodPost, "/api/weather/adjust-weather", body, &out, weatherControlMessage); err != nil {
		return "", err
	}
	if out.Message == "" {
		return weatherAdjustedMessage, nil
	}
	return out.Message, nil
}
