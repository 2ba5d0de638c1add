package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame
	f.Set(ActionLeft)
	f.Set(ActionPause)
	f.Set(ActionNone)
	f.Set(Action(99))

	if !f.Has(ActionLeft) || !f.Has(ActionPause) {
		t.Errorf("frame %b should hold left and pause", f)
	}
	if f.Has(ActionRight) || f.Has(ActionNone) || f.Has(Action(99)) {
		t.Errorf("frame %b holds unexpected actions", f)
	}

	f.Clear()
	if f != NewInputFrame() {
		t.Errorf("cleared frame = %b, expected empty", f)
	}
}

func TestInputFrameSteer(t *testing.T) {
	tests := []struct {
		actions []Action
		want    float64
	}{
		{nil, 0},
		{[]Action{ActionLeft}, -1},
		{[]Action{ActionRight}, 1},
		{[]Action{ActionLeft, ActionRight}, 0},
		{[]Action{ActionUp, ActionConfirm}, 0},
	}
	for _, tt := range tests {
		var f InputFrame
		for _, a := range tt.actions {
			f.Set(a)
		}
		if got := f.Steer(); got != tt.want {
			t.Errorf("Steer(%v) = %v, expected %v", tt.actions, got, tt.want)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionConfirm.String() != "Confirm" || Action(42).String() != "Unknown" {
		t.Errorf("unexpected names %q %q", ActionConfirm, Action(42))
	}
}
