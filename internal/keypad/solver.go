package keypad

import (
	"fmt"
	"math/rand"
	"time"
)

// Click is a synthesized press position inside the keypad image, in pixels.
type Click struct {
	X float64
	Y float64
}

// Solver turns a classified keypad plus the positions the bank is asking for
// into click coordinates. Clicks land at a uniformly random point inside the
// target cell rather than its center, so repeated challenges do not produce a
// fixed interaction pattern.
type Solver struct {
	rnd *rand.Rand
}

// NewSolver builds a solver. A nil source gets a time-seeded one; tests pass
// a fixed seed.
func NewSolver(rnd *rand.Rand) *Solver {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Solver{rnd: rnd}
}

// MissingDigitError reports a password digit absent from the classified
// keypad. Given the bijection invariant this means the password contains a
// non-digit character or the classification is unusable.
type MissingDigitError struct {
	Position int
}

func (e *MissingDigitError) Error() string {
	return fmt.Sprintf("keypad: no cell found for password position %d", e.Position)
}

// Solve returns one click per requested 1-based password position, in the
// order the positions were requested. The layout must match the resolution
// the keypad was classified at.
func (s *Solver) Solve(classified Classified, layout Layout, positions []int, password string) ([]Click, error) {
	clicks := make([]Click, 0, len(positions))
	for _, p := range positions {
		if p < 1 || p > len(password) {
			return nil, fmt.Errorf("keypad: requested position %d outside password length %d", p, len(password))
		}
		ch := password[p-1]
		if ch < '0' || ch > '9' {
			return nil, &MissingDigitError{Position: p}
		}
		cellIdx, ok := classified.CellOf(int(ch - '0'))
		if !ok {
			return nil, &MissingDigitError{Position: p}
		}
		cell := layout.Cells[cellIdx]
		clicks = append(clicks, Click{
			X: float64(cell.X) + s.rnd.Float64()*float64(cell.Width),
			Y: float64(cell.Y) + s.rnd.Float64()*float64(cell.Height),
		})
	}
	return clicks, nil
}
