package domain

import (
	"errors"
	"fmt"
)

// TravelTimeMatrix is a square grid of integer travel costs (minutes)
// indexed [from][to]. It is immutable once built.
type TravelTimeMatrix [][]int64

// Size returns the number of locations covered by the matrix.
func (m TravelTimeMatrix) Size() int { return len(m) }

// At returns the cost of travelling from node i to node j.
func (m TravelTimeMatrix) At(i, j int) int64 { return m[i][j] }

// Validate reports whether the matrix is non-empty, square and non-negative.
func (m TravelTimeMatrix) Validate() error {
	if len(m) == 0 {
		return errors.New("travel time matrix: must not be empty")
	}
	for i, row := range m {
		if len(row) != len(m) {
			return fmt.Errorf("travel time matrix: row %d has %d cells, want %d", i, len(row), len(m))
		}
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("travel time matrix: negative cost at (%d,%d): %d", i, j, v)
			}
		}
	}
	return nil
}

// Equal reports whether both matrices hold the same values.
func (m TravelTimeMatrix) Equal(o TravelTimeMatrix) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}
