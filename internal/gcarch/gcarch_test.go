package gcarch

import "testing"

func TestFrameTopNonZero(t *testing.T) {
	top := FrameTop()
	if top == 0 {
		t.Fatal("FrameTop returned 0")
	}
}

func TestSaveCalleeSavedLength(t *testing.T) {
	regs := SaveCalleeSaved()
	if len(regs) != NumCalleeSaved {
		t.Fatalf("len(SaveCalleeSaved()) = %d, want %d", len(regs), NumCalleeSaved)
	}
}
