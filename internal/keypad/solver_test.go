package keypad_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/scabridge/scabridge/internal/keypad"
	"github.com/scabridge/scabridge/internal/keypad/keypadtest"
)

func classify(t *testing.T, perm [10]int, multiplier int) (keypad.Classified, keypad.Layout) {
	t.Helper()
	lib := keypadtest.Library(t)
	img := keypadtest.Render(t, perm, multiplier)
	layout, err := keypad.Default().Scale(multiplier)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	classified, err := keypad.Classify(img, layout, lib)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	return classified, layout
}

func inCell(click keypad.Click, cell keypad.Cell) bool {
	return click.X >= float64(cell.X) && click.X < float64(cell.X+cell.Width) &&
		click.Y >= float64(cell.Y) && click.Y < float64(cell.Y+cell.Height)
}

func TestSolvePermutedKeypad(t *testing.T) {
	// Keypad with cell0→7, cell1→2, ..., cell9→0; positions 1 and 3 of
	// password "847213" require digits 8 and 7.
	perm := [10]int{7, 2, 9, 4, 1, 6, 3, 8, 5, 0}
	classified, layout := classify(t, perm, 1)

	solver := keypad.NewSolver(rand.New(rand.NewSource(1)))
	clicks, err := solver.Solve(classified, layout, []int{1, 3}, "847213")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(clicks) != 2 {
		t.Fatalf("got %d clicks, want 2", len(clicks))
	}

	// Digit 8 sits in cell 7, digit 7 in cell 0.
	if !inCell(clicks[0], layout.Cells[7]) {
		t.Fatalf("click %+v outside cell for digit 8", clicks[0])
	}
	if !inCell(clicks[1], layout.Cells[0]) {
		t.Fatalf("click %+v outside cell for digit 7", clicks[1])
	}
}

func TestSolvePreservesOrderAndLength(t *testing.T) {
	classified, layout := classify(t, [10]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1)
	solver := keypad.NewSolver(rand.New(rand.NewSource(7)))

	positions := []int{5, 1, 4, 2}
	password := "314159"
	clicks, err := solver.Solve(classified, layout, positions, password)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(clicks) != len(positions) {
		t.Fatalf("got %d clicks, want %d", len(clicks), len(positions))
	}
	for i, p := range positions {
		digit := int(password[p-1] - '0')
		cellIdx, ok := classified.CellOf(digit)
		if !ok {
			t.Fatalf("digit %d not classified", digit)
		}
		if !inCell(clicks[i], layout.Cells[cellIdx]) {
			t.Fatalf("click %d (%+v) outside cell %d for position %d", i, clicks[i], cellIdx, p)
		}
	}
}

func TestSolveScaledClicksStayInCells(t *testing.T) {
	perm := [10]int{3, 0, 8, 5, 2, 9, 6, 1, 7, 4}
	classified, layout := classify(t, perm, 8)
	solver := keypad.NewSolver(rand.New(rand.NewSource(99)))

	positions := []int{1, 2, 3, 4, 5}
	clicks, err := solver.Solve(classified, layout, positions, "09876")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	for i, p := range positions {
		digit := int("09876"[p-1] - '0')
		cellIdx, _ := classified.CellOf(digit)
		if !inCell(clicks[i], layout.Cells[cellIdx]) {
			t.Fatalf("scaled click %d (%+v) outside cell %d", i, clicks[i], cellIdx)
		}
	}
}

func TestSolveRandomizesWithinCell(t *testing.T) {
	classified, layout := classify(t, [10]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1)
	solver := keypad.NewSolver(rand.New(rand.NewSource(42)))

	first, err := solver.Solve(classified, layout, []int{1}, "5")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	second, err := solver.Solve(classified, layout, []int{1}, "5")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if first[0] == second[0] {
		t.Fatalf("two solves produced the identical click %+v", first[0])
	}
}

func TestSolvePositionOutOfRange(t *testing.T) {
	classified, layout := classify(t, [10]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1)
	solver := keypad.NewSolver(rand.New(rand.NewSource(1)))

	if _, err := solver.Solve(classified, layout, []int{7}, "123456"); err == nil {
		t.Fatalf("expected error for position beyond password length")
	}
}

func TestSolveNonDigitPasswordCharacter(t *testing.T) {
	classified, layout := classify(t, [10]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1)
	solver := keypad.NewSolver(rand.New(rand.NewSource(1)))

	_, err := solver.Solve(classified, layout, []int{2}, "1a3456")
	var missing *keypad.MissingDigitError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDigitError, got %v", err)
	}
}
