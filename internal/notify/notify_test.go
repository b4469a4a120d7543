package notify

import "testing"

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestWarning(t *testing.T) {
	tests := []struct {
		name        string
		critical    bool
		wantUrgency Urgency
		wantTimeout int32
	}{
		{"warning expires", false, UrgencyNormal, noticeTimeout},
		{"critical stays", true, UrgencyCritical, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Warning("Failed to seek: boom", tt.critical)
			if n.Title != "subrepeat" || n.Body != "Failed to seek: boom" {
				t.Errorf("Warning() = %+v", n)
			}
			if n.Urgency != tt.wantUrgency {
				t.Errorf("Urgency = %d, want %d", n.Urgency, tt.wantUrgency)
			}
			if n.Timeout != tt.wantTimeout {
				t.Errorf("Timeout = %d, want %d", n.Timeout, tt.wantTimeout)
			}
		})
	}
}

func TestDisabled(t *testing.T) {
	n := Disabled()
	id, err := n.Notify(Warning("x", false))
	if id != 0 || err != nil {
		t.Errorf("Notify() = (%d, %v), want (0, nil)", id, err)
	}
	if err := n.Close(id); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
