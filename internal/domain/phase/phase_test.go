package phase_test

import (
	"errors"
	"testing"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

func TestAll(t *testing.T) {
	all := phase.All()

	if len(all) != 6 {
		t.Fatalf("expected 6 phases, got %d", len(all))
	}
	for i, p := range all {
		if int(p.ID) != i+1 {
			t.Errorf("expected phase %d at index %d, got %d", i+1, i, p.ID)
		}
		if p.Name == "" {
			t.Errorf("phase %d has empty name", p.ID)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    phase.ID
		wantErr bool
	}{
		{"1", 1, false},
		{"6", 6, false},
		{" 3 ", 3, false},
		{"0", 0, true},
		{"7", 0, true},
		{"99", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := phase.Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, quizerr.ErrInvalidPhase) {
				t.Errorf("Parse(%q): expected ErrInvalidPhase, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestName_OutOfRange(t *testing.T) {
	if name := phase.ID(99).Name(); name != "" {
		t.Errorf("expected empty name for invalid phase, got %q", name)
	}
}
