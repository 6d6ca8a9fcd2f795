package phase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

// ID identifies one of the fixed topical phases.
type ID int

const (
	Min ID = 1
	Max ID = 6
)

// Phase is a catalog entry shown to users when picking a quiz.
type Phase struct {
	ID   ID
	Name string
}

var catalog = []Phase{
	{ID: 1, Name: "Right of way"},
	{ID: 2, Name: "Traffic signs and signals"},
	{ID: 3, Name: "Driving and safety"},
	{ID: 4, Name: "Vehicle and mechanics"},
	{ID: 5, Name: "Environment and eco-driving"},
	{ID: 6, Name: "Violations and penalties"},
}

// All returns the catalog ordered by ID.
func All() []Phase {
	out := make([]Phase, len(catalog))
	copy(out, catalog)
	return out
}

func (p ID) Valid() bool {
	return p >= Min && p <= Max
}

// Validate returns ErrInvalidPhase when p is outside the catalog.
func (p ID) Validate() error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d (must be %d..%d)", quizerr.ErrInvalidPhase, int(p), int(Min), int(Max))
	}
	return nil
}

func (p ID) Name() string {
	if !p.Valid() {
		return ""
	}
	return catalog[p-1].Name
}

// Parse reads a phase from a path segment or query value.
func Parse(s string) (ID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", quizerr.ErrInvalidPhase, s)
	}
	p := ID(n)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return p, nil
}
