package api

// Device represents a controllable device registered with the API.
// The identifier is server-assigned and stable; every other field may be
// replaced wholesale by the server on any write.
type Device struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
}

// Device types understood by the control endpoint. The API accepts
// free-form type strings; these are the ones the hosted service ships
// device behaviors for.
const (
	DeviceTypeLight        = "light"
	DeviceTypeAC           = "ac"
	DeviceTypeMoonLight    = "moon_light"
	DeviceTypeRefrigerator = "refrigerator"
)

// Clause describes one leg of an automation rule (trigger, condition or
// action). Both fields are optional free-form strings; an empty clause is
// legal.
type Clause struct {
	Kind  string `json:"type"`
	Value string `json:"value"`
}

// AutomationRule represents a stored automation rule. Rules pair a trigger
// with an optional condition and a resulting action.
type AutomationRule struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Trigger   Clause `json:"trigger"`
	Condition Clause `json:"condition"`
	Action    Clause `json:"action"`
}

// Camera actions accepted by POST /api/camera/control
const (
	CameraActionOn       = "on"
	CameraActionOff      = "off"
	CameraActionRecord   = "record"
	CameraActionSnapshot = "snapshot"
)

// CameraCommand is the action intent for the camera category.
// Duration is only meaningful (and only sent) for the record action.
type CameraCommand struct {
	Action   string `json:"action"`
	Duration *int   `json:"duration,omitempty"`
}

// Door actions accepted by POST /api/smart-door/control
const (
	DoorActionLock   = "lock"
	DoorActionUnlock = "unlock"
	DoorActionBusy   = "busy"
)

// Door statuses reported alongside a door action
const (
	DoorStatusLocked   = "locked"
	DoorStatusUnlocked = "unlocked"
	DoorStatusBusy     = "busy"
)

// DoorCommand is the action intent for the smart door. Status carries the
// door state the client currently displays, matching the web UI's payload.
type DoorCommand struct {
	Action string `json:"action"`
	Status string `json:"status"`
}

// TV actions accepted by POST /api/tv/control
const (
	TVActionOn            = "on"
	TVActionOff           = "off"
	TVActionVolumeUp      = "volume_up"
	TVActionVolumeDown    = "volume_down"
	TVActionChangeChannel = "change_channel"
)

// TVCommand is the action intent for the TV. Volume is only sent for the
// volume actions and Channel only for change_channel; the server rejects
// payloads carrying fields that do not belong to the action.
type TVCommand struct {
	Action  string `json:"action"`
	Volume  *int   `json:"volume,omitempty"`
	Channel *int   `json:"channel,omitempty"`
}

// WeatherCommand asks the server to adjust devices for the weather at a
// location.
type WeatherCommand struct {
	Location string `json:"location"`
}

// credentialsRequest is the body for login and register
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the success payload of POST /api/users/login
type loginResponse struct {
	Token string `json:"token"`
}

// messageResponse is the `{message}` payload shared by register and the
// action-only control endpoints
type messageResponse struct {
	Message string `json:"message"`
}

// errorBody is the structured error shape the server uses on rejection
type errorBody struct {
	Message string `json:"message"`
}

// createDeviceRequest is the body for POST /api/devices
type createDeviceRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// controlDeviceRequest is the body for POST /api/devices/:id/control
type controlDeviceRequest struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Status string `json:"status"`
}

// ruleEnvelope wraps single-rule responses: `{data: Rule}`
type ruleEnvelope struct {
	Data AutomationRule `json:"data"`
}

// rulesEnvelope wraps the rule list response: `{data: Rule[]}`
type rulesEnvelope struct {
	Data []AutomationRule `json:"data"`
}
