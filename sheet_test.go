package cellgraph

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(t *testing.T, s string) Position {
	t.Helper()
	p, err := ParsePosition(s)
	require.NoError(t, err)
	return p
}

func assertNumber(t *testing.T, sheet *Sheet, posStr string, want float64) {
	t.Helper()
	cell, err := sheet.GetCell(pos(t, posStr))
	require.NoError(t, err)
	require.NotNil(t, cell)
	v := cell.Value(sheet)
	require.True(t, v.IsNumber(), "expected a number, got %#v", v)
	assert.Equal(t, want, v.Number())
}

func TestSheet_S1_basicFormula(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "2"))
	require.NoError(t, s.SetCell(pos(t, "A2"), "=A1+3"))

	assertNumber(t, s, "A2", 5)
	cell, err := s.GetCell(pos(t, "A2"))
	require.NoError(t, err)
	assert.Equal(t, "=A1+3", cell.Text())
	assert.Equal(t, Size{Rows: 2, Cols: 1}, s.PrintableSize())
}

func TestSheet_S2_cacheInvalidation(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "2"))
	require.NoError(t, s.SetCell(pos(t, "A2"), "=A1+3"))
	assertNumber(t, s, "A2", 5)

	require.NoError(t, s.SetCell(pos(t, "A1"), "10"))
	assertNumber(t, s, "A2", 13)
}

func TestSheet_S3_circularRollback(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "2"))
	require.NoError(t, s.SetCell(pos(t, "A2"), "=A1+3"))

	err := s.SetCell(pos(t, "A1"), "=A2")
	assert.ErrorIs(t, err, ErrCircularDependency)

	cell, err := s.GetCell(pos(t, "A1"))
	require.NoError(t, err)
	assert.Equal(t, "2", cell.Text())
	assertNumber(t, s, "A2", 5)
}

func TestSheet_S4_clearShrinksPrintable(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "B2"), "=C3"))
	require.NoError(t, s.ClearCell(pos(t, "B2")))

	assert.Equal(t, Size{}, s.PrintableSize())
	cell, err := s.GetCell(pos(t, "B2"))
	require.NoError(t, err)
	assert.Nil(t, cell)
}

func TestSheet_S5_textCoercionError(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "hello"))
	require.NoError(t, s.SetCell(pos(t, "A2"), "=A1"))

	cell, err := s.GetCell(pos(t, "A2"))
	require.NoError(t, err)
	v := cell.Value(s)
	require.True(t, v.IsError())
	assert.Equal(t, ErrValue, v.ErrorKind())
}

func TestSheet_S6_apostropheCoercion(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "'7"))
	require.NoError(t, s.SetCell(pos(t, "A2"), "=A1"))

	cell, err := s.GetCell(pos(t, "A1"))
	require.NoError(t, err)
	assert.True(t, cell.Value(s).IsText())
	assert.Equal(t, "7", cell.Value(s).Text())
	assert.Equal(t, "'7", cell.Text())

	assertNumber(t, s, "A2", 7)
}

func TestSheet_S7_arithmeticError(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "=1/0"))

	cell, err := s.GetCell(pos(t, "A1"))
	require.NoError(t, err)
	v := cell.Value(s)
	require.True(t, v.IsError())
	assert.Equal(t, ErrArithmetic, v.ErrorKind())
}

func TestSheet_S8_growAndInvalidPosition(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "ZZ9999"), "x"))
	assert.Equal(t, Size{Rows: 9999, Cols: 702}, s.PrintableSize())

	err := s.SetCell(Position{Row: 99999999, Col: 0}, "x")
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestSheet_emptyStringClears(t *testing.T) {
	s := NewSheet()
	p := pos(t, "A1")
	require.NoError(t, s.SetCell(p, "whatever"))
	require.NoError(t, s.SetCell(p, ""))

	cell, err := s.GetCell(p)
	require.NoError(t, err)
	if cell != nil {
		v := cell.Value(s)
		assert.True(t, v.IsText())
		assert.Equal(t, "", v.Text())
		assert.Equal(t, "", cell.Text())
		assert.Empty(t, cell.ReferencedCells())
	}
	assert.Equal(t, Size{}, s.PrintableSize())
}

func TestSheet_dependentEdgeSurvivesClearAndReset(t *testing.T) {
	// Regression test: a referent that is cleared and later re-set must
	// still invalidate its dependents' caches (spec invariant 4). The
	// original C++ this spec was distilled from drops this edge by
	// destroying the referent's Cell object on clear; this engine must
	// not repeat that bug.
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "1"))
	require.NoError(t, s.SetCell(pos(t, "B1"), "=A1+1"))
	assertNumber(t, s, "B1", 2)

	require.NoError(t, s.ClearCell(pos(t, "A1")))
	assertNumber(t, s, "B1", 1) // A1 reads back as empty -> 0, so B1 = 0+1

	require.NoError(t, s.SetCell(pos(t, "A1"), "5"))
	assertNumber(t, s, "B1", 6) // must not be the stale cached value of 1
}

func TestSheet_referenceChain(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "=A2"))
	require.NoError(t, s.SetCell(pos(t, "A2"), "=A3"))
	require.NoError(t, s.SetCell(pos(t, "A3"), "=A4"))
	require.NoError(t, s.SetCell(pos(t, "A4"), "=A5"))
	require.NoError(t, s.SetCell(pos(t, "A5"), "12"))

	assertNumber(t, s, "A1", 12)
}

func TestSheet_fibonacci(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "0"))
	require.NoError(t, s.SetCell(pos(t, "A2"), "1"))
	for i := 3; i < 15; i++ {
		cell := fmt.Sprintf("A%d", i)
		expr := fmt.Sprintf("=A%d+A%d", i-2, i-1)
		require.NoError(t, s.SetCell(pos(t, cell), expr))
	}
	assertNumber(t, s, "A14", 233)
}

func TestSheet_circrefTinyCycle(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "=A2"))
	assert.ErrorIs(t, s.SetCell(pos(t, "A2"), "=A1"), ErrCircularDependency)
}

func TestSheet_circrefSelfRef(t *testing.T) {
	s := NewSheet()
	assert.ErrorIs(t, s.SetCell(pos(t, "A1"), "=A1"), ErrCircularDependency)
}

func TestSheet_bigCycle(t *testing.T) {
	s := NewSheet()
	for i := 1; i <= 15; i++ {
		cell1 := fmt.Sprintf("A%d", i)
		cell2 := fmt.Sprintf("=A%d", i+1)
		require.NoError(t, s.SetCell(pos(t, cell1), cell2))
	}
	assert.ErrorIs(t, s.SetCell(pos(t, "A15"), "=A1"), ErrCircularDependency)
}

func TestSheet_idempotentSetCell(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "12"))
	require.NoError(t, s.SetCell(pos(t, "B1"), "=A1*2"))

	before := renderValues(t, s)
	require.NoError(t, s.SetCell(pos(t, "B1"), "=A1*2"))
	after := renderValues(t, s)

	assert.Equal(t, before, after)
}

func TestSheet_formulaParseErrorLeavesCellUnchanged(t *testing.T) {
	s := NewSheet()
	p := pos(t, "A1")
	require.NoError(t, s.SetCell(p, "2"))

	err := s.SetCell(p, "=A1*")
	assert.ErrorIs(t, err, ErrFormulaParse)

	cell, err := s.GetCell(p)
	require.NoError(t, err)
	assert.Equal(t, "2", cell.Text())
}

func renderValues(t *testing.T, s *Sheet) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.PrintValues(&buf))
	return buf.String()
}

func TestSheet_GetCell_outOfPrintableRegion(t *testing.T) {
	s := NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "1"))

	cell, err := s.GetCell(pos(t, "Z50"))
	require.NoError(t, err)
	assert.Nil(t, cell)
}
