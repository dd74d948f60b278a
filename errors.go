package cellgraph

import "errors"

// Error taxonomy. InvalidPosition, FormulaParse, and CircularDependency
// are structural failures raised by the public Sheet API; arithmetic
// failures are never raised — they are embedded in CellValue instead
// (see ArithmeticErrorKind).
var (
	// ErrInvalidPosition is raised when a position falls outside the
	// configured row/column limits, or fails to parse as A1 notation.
	ErrInvalidPosition = errors.New("cellgraph: invalid position")

	// ErrFormulaParse is raised by SetCell when the formula source
	// after '=' could not be parsed. The cell is left unchanged.
	ErrFormulaParse = errors.New("cellgraph: formula parse error")

	// ErrCircularDependency is raised by SetCell when the edit would
	// introduce a cycle in the reference graph. The cell and its edges
	// are left exactly as they were before the call.
	ErrCircularDependency = errors.New("cellgraph: circular dependency")
)

// ArithmeticErrorKind distinguishes the three ways formula evaluation
// can fail. Unlike the structural errors above, these never propagate
// as a Go error from a public Sheet operation — they are embedded in a
// CellValue and cached like any other result.
type ArithmeticErrorKind int

const (
	// ErrRef marks a reference to a structurally invalid position
	// (outside the sheet's configured limits).
	ErrRef ArithmeticErrorKind = iota
	// ErrValue marks a referenced cell whose text value could not be
	// coerced to a number.
	ErrValue
	// ErrArithmetic marks a failure in the computation itself
	// (division by zero, or a non-finite result).
	ErrArithmetic
)

// String renders the canonical display token for an arithmetic error.
// Per spec, every kind collapses to the same token at print time; the
// kind distinction is preserved only in the in-memory CellValue.
func (k ArithmeticErrorKind) String() string {
	return "#ARITHM!"
}
