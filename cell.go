package cellgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kalexmills/cellgraph/formula"
	"golang.org/x/exp/maps"
)

// content is the closed three-branch tagged variant backing a cell:
// empty, literal text, or a parsed formula. Per DESIGN NOTES §9, this
// is a plain interface implemented by exactly three private types —
// virtual dispatch beyond the switch in Cell.Value is not needed.
type content interface {
	// text renders the cell's Text() value per the CellContent rules.
	text() string
	// referencedPositions lists the positions named by this content,
	// in order of first occurrence. Empty/literal content has none.
	referencedPositions() []Position
}

type emptyContent struct{}

func (emptyContent) text() string                     { return "" }
func (emptyContent) referencedPositions() []Position { return nil }

type literalContent struct {
	raw string
}

func (l literalContent) text() string                     { return l.raw }
func (l literalContent) referencedPositions() []Position { return nil }

// formulaContent is a pointer type so its cache can be mutated in
// place (Cell.Value is a logically-const, interior-mutating read
// path — see spec §5).
type formulaContent struct {
	handle *formula.Handle
	cached *CellValue // nil means uncached
}

func (f *formulaContent) text() string {
	return "=" + f.handle.CanonicalExpression()
}

func (f *formulaContent) referencedPositions() []Position {
	refs := f.handle.ReferencedCells()
	out := make([]Position, len(refs))
	for i, r := range refs {
		out[i] = Position{Row: r.Row, Col: r.Col}
	}
	return out
}

// Cell is an addressable storage unit: its content (empty/literal/
// formula) plus the set of cells whose formulas directly reference it.
// dependents is keyed by Position rather than a live pointer, per
// DESIGN NOTES §9's ownership-strict recommendation — resolved back to
// a *Cell through the owning Sheet at cascade time.
type Cell struct {
	content    content
	dependents map[Position]struct{}
}

func newEmptyCell() *Cell {
	return &Cell{content: emptyContent{}, dependents: make(map[Position]struct{})}
}

// parseContent implements the Cell.set dispatch rule from spec §4.2:
// "" -> Empty, a leading '=' with more to follow -> Formula (parse
// failure wraps ErrFormulaParse), anything else -> Literal. It never
// mutates an existing cell — callers stage the result and swap it in
// only after any cycle check succeeds (see sheet.go).
func parseContent(text string) (content, error) {
	switch {
	case text == "":
		return emptyContent{}, nil
	case strings.HasPrefix(text, "=") && len(text) > 1:
		handle, err := formula.Parse(text[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormulaParse, err)
		}
		return &formulaContent{handle: handle}, nil
	default:
		return literalContent{raw: text}, nil
	}
}

// Text returns this cell's text representation: the stored literal,
// "=" plus the formula's canonical rendering, or "" when empty.
func (c *Cell) Text() string {
	return c.content.text()
}

// ReferencedCells returns the positions this cell's formula names, in
// order of first occurrence; nil for empty/literal cells.
func (c *Cell) ReferencedCells() []Position {
	return c.content.referencedPositions()
}

// Value returns this cell's value, consulting (and, for a formula
// cell on a cache miss, populating) the formula cache. sheet supplies
// the lookup environment for formula evaluation.
func (c *Cell) Value(sheet *Sheet) CellValue {
	switch v := c.content.(type) {
	case emptyContent:
		return TextValue("")
	case literalContent:
		if strings.HasPrefix(v.raw, "'") {
			return TextValue(v.raw[1:])
		}
		return TextValue(v.raw)
	case *formulaContent:
		if v.cached != nil {
			return *v.cached
		}
		result := evaluateFormula(v.handle, sheet)
		v.cached = &result
		return result
	default:
		return TextValue("")
	}
}

// clearCache drops this cell's formula cache, if any. It does not
// recurse into dependents — cascading is Sheet's job (it alone can
// resolve Position-keyed dependents back to *Cell).
func (c *Cell) clearCache() {
	if f, ok := c.content.(*formulaContent); ok {
		f.cached = nil
	}
}

// addDependent registers pos as a cell whose formula directly
// references this cell.
func (c *Cell) addDependent(pos Position) {
	c.dependents[pos] = struct{}{}
}

// removeDependent unregisters pos as a dependent of this cell.
func (c *Cell) removeDependent(pos Position) {
	delete(c.dependents, pos)
}

// dependentPositions returns a snapshot of this cell's dependents.
func (c *Cell) dependentPositions() []Position {
	return maps.Keys(c.dependents)
}

// evaluateFormula executes handle against sheet's lookup environment
// (spec §4.3), translating between the formula package's own Position/
// ErrorKind types and cellgraph's.
func evaluateFormula(handle *formula.Handle, sheet *Sheet) CellValue {
	lookup := func(p formula.Position) (float64, error) {
		pos := Position{Row: p.Row, Col: p.Col}
		if !pos.IsValid(sheet.limits) {
			return 0, &formula.EvalError{Kind: formula.ErrRef}
		}
		cell := sheet.cellAt(pos)
		if cell == nil {
			return 0, nil
		}
		v := cell.Value(sheet)
		switch {
		case v.IsNumber():
			return v.Number(), nil
		case v.IsError():
			return 0, &formula.EvalError{Kind: formula.ErrorKind(v.ErrorKind())}
		default: // text
			if v.Text() == "" {
				return 0, nil
			}
			n, err := parseStrictFloat(v.Text())
			if err != nil {
				return 0, &formula.EvalError{Kind: formula.ErrValue}
			}
			return n, nil
		}
	}

	result, err := handle.Execute(lookup)
	if err != nil {
		var evalErr *formula.EvalError
		if errors.As(err, &evalErr) {
			return ErrorValue(ArithmeticErrorKind(evalErr.Kind))
		}
		return ErrorValue(ErrArithmetic)
	}
	return NumberValue(result)
}
