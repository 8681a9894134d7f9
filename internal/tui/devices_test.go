package tui

import (
	"testing"

	"github.com/smarthome-tech/homectl/internal/api"
)

func TestActionsForDevice(t *testing.T) {
	tests := []struct {
		name       string
		deviceType string
		want       []deviceAction
	}{
		{
			name:       "light has dim",
			deviceType: api.DeviceTypeLight,
			want: []deviceAction{
				{Label: "Turn On", Action: "Turn On", Status: "on"},
				{Label: "Turn Off", Action: "Turn Off", Status: "off"},
				{Label: "Dim", Action: "Dim", Status: "Dim"},
			},
		},
		{
			name:       "ac has temperature actions",
			deviceType: api.DeviceTypeAC,
			want: []deviceAction{
				{Label: "Turn On", Action: "Turn On", Status: "on"},
				{Label: "Turn Off", Action: "Turn Off", Status: "off"},
				{Label: "Increase Temperature", Action: "IncreaseTemp", Status: "Increasing Temperature"},
				{Label: "Decrease Temperature", Action: "DecreaseTemp", Status: "Decreasing Temperature"},
			},
		},
		{
			name:       "moon light is on off only",
			deviceType: api.DeviceTypeMoonLight,
			want: []deviceAction{
				{Label: "Turn On", Action: "Turn On", Status: "on"},
				{Label: "Turn Off", Action: "Turn Off", Status: "off"},
			},
		},
		{
			name:       "unknown type falls back to on off",
			deviceType: "toaster",
			want: []deviceAction{
				{Label: "Turn On", Action: "Turn On", Status: "on"},
				{Label: "Turn Off", Action: "Turn Off", Status: "off"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actionsForDevice(tt.deviceType)
			if len(got) != len(tt.want) {
				t.Fatalf("actionsForDevice(%q) returned %d actions, want %d", tt.deviceType, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("action[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
