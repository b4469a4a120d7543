package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateHolding, "Holding"},
		{StateSeeking, "Seeking"},
		{StateSuspended, "Suspended"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_Autonomous(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, true},
		{StateHolding, true},
		{StateSeeking, false},
		{StateSuspended, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.Autonomous(); got != tt.want {
				t.Errorf("State.Autonomous() = %v, want %v", got, tt.want)
			}
		})
	}
}
