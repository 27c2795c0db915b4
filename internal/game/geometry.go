package game

import (
	"fmt"

	"battlefun/internal/apperrors"
)

func ValidCell(cell int) bool {
	return cell >= 0 && cell < CellCount
}

func invalidCell(cell int) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidCell,
		fmt.Sprintf("cell %d outside board", cell),
		map[string]string{"cell": fmt.Sprint(cell)})
}

// RowOf returns the board row of cell.
func RowOf(cell int) (int, error) {
	if !ValidCell(cell) {
		return 0, invalidCell(cell)
	}
	return cell / BoardSize, nil
}

// ColOf returns the board column of cell.
func ColOf(cell int) (int, error) {
	if !ValidCell(cell) {
		return 0, invalidCell(cell)
	}
	return cell % BoardSize, nil
}

// CellAt is the inverse of RowOf/ColOf.
func CellAt(row, col int) (int, error) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return 0, apperrors.New(apperrors.CodeInvalidCell, fmt.Sprintf("row %d col %d outside board", row, col))
	}
	return row*BoardSize + col, nil
}

// Footprint lists the cells of a ship of the given length starting at start.
// The result may run off the board; callers validate with IsValid.
func Footprint(start, length int, vertical bool) []int {
	step := 1
	if vertical {
		step = BoardSize
	}
	cells := make([]int, length)
	for i := range cells {
		cells[i] = start + i*step
	}
	return cells
}

// Vertical reports the orientation implied by a ship's first two cells.
// Any difference other than exactly 1 counts as vertical.
func Vertical(cellA, cellB int) bool {
	return cellB-cellA != 1
}

// OrientationOf applies Vertical to the first two cells of a footprint.
// Footprints shorter than two cells are reported horizontal.
// TODO: infer from the whole footprint once clients stop relying on the two-cell rule.
func OrientationOf(cells []int) (vertical bool) {
	if len(cells) < 2 {
		return false
	}
	return Vertical(cells[0], cells[1])
}
