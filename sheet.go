package cellgraph

import "fmt"

// Sheet owns the dense 2-D cell storage, the printable-region
// accounting, and the dependency graph's edge bookkeeping. All public
// operations validate their position arguments against limits before
// touching storage.
type Sheet struct {
	cells     [][]*Cell
	printable Size
	limits    Limits
}

// NewSheet constructs an empty Sheet. By default positions are bounded
// by DefaultLimits; pass WithLimits to override.
func NewSheet(opts ...Option) *Sheet {
	s := &Sheet{limits: DefaultLimits}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCell validates pos, parses text into new content in isolation,
// rejects the edit if it would introduce a cycle, and otherwise swaps
// the cell's content in, rewires dependency edges, and invalidates the
// cache subtree rooted at pos.
//
// The cycle check runs before any edge is installed (the "stage, then
// check" alternative from the engine's design notes): pos's candidate
// referenced-cells list is checked against the existing graph without
// ever mutating it, so a rejected edit never needs a rollback.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid(s.limits) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}

	newContent, err := parseContent(text)
	if err != nil {
		return err
	}
	newRefs := newContent.referencedPositions()

	if err := s.checkForCycle(pos, newRefs); err != nil {
		return err
	}

	cell := s.ensureSlot(pos)
	oldRefs := cell.ReferencedCells()
	cell.content = newContent

	for _, old := range oldRefs {
		if referent := s.cellAt(old); referent != nil {
			referent.removeDependent(pos)
		}
	}
	for _, ref := range newRefs {
		s.ensureSlot(ref).addDependent(pos)
	}

	s.invalidateCascade(pos)
	s.recomputePrintable()
	return nil
}

// checkForCycle runs a DFS from pos over the forward (referenced-cell)
// graph, using newRefs as pos's candidate edges and each other node's
// actual current edges. The existing graph is acyclic, so the edit
// introduces a cycle exactly when the walk leads back to pos; a node
// reached a second time along another path is skipped, not reported.
// Visit order follows ReferencedCells' first-occurrence order, matching
// the documented tie-break.
func (s *Sheet) checkForCycle(pos Position, newRefs []Position) error {
	visited := map[Position]bool{pos: true}

	var visit func(Position, []Position) error
	visit = func(current Position, edges []Position) error {
		for _, next := range edges {
			if next == pos {
				return fmt.Errorf("%w: %v", ErrCircularDependency, next)
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			var nextEdges []Position
			if cell := s.cellAt(next); cell != nil {
				nextEdges = cell.ReferencedCells()
			}
			if err := visit(next, nextEdges); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(pos, newRefs)
}

// GetCell returns the cell at pos, or nil if pos lies outside the
// current printable region or no cell object exists at pos within it.
// A slot inside the region that holds only an empty carrier cell (one
// materialized to hold a dependents edge, or one emptied by ClearCell)
// is returned as a non-nil cell with empty content.
// It raises ErrInvalidPosition only for a structurally invalid pos.
func (s *Sheet) GetCell(pos Position) (*Cell, error) {
	if !pos.IsValid(s.limits) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	return s.visibleCellAt(pos), nil
}

// ClearCell invalidates pos's cache cascade, severs the dependency
// edges where pos was the source, and resets pos's content to Empty.
// The underlying Cell object (and its dependents set) is preserved
// rather than discarded: other cells may still reference pos, and
// their reverse-dependency edge onto pos must survive so a later
// SetCell(pos, ...) still invalidates them (spec invariant 4 — losing
// this edge would let a dependent formula return a stale cached value
// after pos is cleared and rewritten; see DESIGN.md).
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid(s.limits) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	cell := s.visibleCellAt(pos)
	if cell == nil {
		return nil
	}

	s.invalidateCascade(pos)
	for _, ref := range cell.ReferencedCells() {
		if referent := s.cellAt(ref); referent != nil {
			referent.removeDependent(pos)
		}
	}
	cell.content = emptyContent{}

	s.recomputePrintable()
	return nil
}

// PrintableSize returns the smallest rectangle covering all
// meaningfully non-empty cells, or (0,0) when none remain.
func (s *Sheet) PrintableSize() Size {
	return s.printable
}

// invalidateCascade clears the formula cache of pos and, transitively,
// every cell reverse-reachable from pos via dependents edges. The
// acyclicity invariant guarantees termination; visited is still
// tracked defensively, per spec §4.4.
func (s *Sheet) invalidateCascade(pos Position) {
	visited := make(map[Position]bool)
	var walk func(Position)
	walk = func(p Position) {
		if visited[p] {
			return
		}
		visited[p] = true
		cell := s.cellAt(p)
		if cell == nil {
			return
		}
		cell.clearCache()
		for _, dep := range cell.dependentPositions() {
			walk(dep)
		}
	}
	walk(pos)
}

// cellAt returns the cell physically stored at pos, ignoring the
// printable window entirely — used internally by edge maintenance and
// cache invalidation, which must see the real graph regardless of what
// is currently printable.
func (s *Sheet) cellAt(pos Position) *Cell {
	if pos.Row < 0 || pos.Row >= len(s.cells) {
		return nil
	}
	row := s.cells[pos.Row]
	if pos.Col < 0 || pos.Col >= len(row) {
		return nil
	}
	return row[pos.Col]
}

// visibleCellAt returns the cell at pos if pos lies within the
// printable region, else nil — the rule GetCell and ClearCell apply.
// Formula lookups use cellAt instead; outside the region every stored
// cell is empty, so both read as 0 there.
func (s *Sheet) visibleCellAt(pos Position) *Cell {
	if pos.Row < 0 || pos.Row >= s.printable.Rows || pos.Col < 0 || pos.Col >= s.printable.Cols {
		return nil
	}
	return s.cellAt(pos)
}

// ensureSlot returns the cell at pos, growing storage and
// materializing an empty carrier cell if none exists yet. Used both
// for the edit target and for referents that must exist to carry a
// dependent edge (spec §4.4 step 5).
func (s *Sheet) ensureSlot(pos Position) *Cell {
	s.growTo(pos)
	if s.cells[pos.Row][pos.Col] == nil {
		s.cells[pos.Row][pos.Col] = newEmptyCell()
	}
	return s.cells[pos.Row][pos.Col]
}

// growTo extends storage so slot (pos.Row, pos.Col) exists, growing
// each row independently via append (ragged rows; idiomatic Go slice
// growth rather than the original's exact-resize-then-backfill policy).
func (s *Sheet) growTo(pos Position) {
	for len(s.cells) <= pos.Row {
		s.cells = append(s.cells, nil)
	}
	row := s.cells[pos.Row]
	for len(row) <= pos.Col {
		row = append(row, nil)
	}
	s.cells[pos.Row] = row
}

// recomputePrintable recomputes the printable rectangle from scratch:
// the highest row containing a non-Empty cell, then the highest column
// containing one within that row range. A slot that merely exists (a
// materialized empty carrier kept only to hold a dependents edge) does
// not count — only Literal/Formula content does (see DESIGN.md's Open
// Question resolution 6).
func (s *Sheet) recomputePrintable() {
	maxRow := -1
	for r := len(s.cells) - 1; r >= 0; r-- {
		if s.rowHasContent(r) {
			maxRow = r
			break
		}
	}
	if maxRow < 0 {
		s.printable = Size{}
		return
	}
	maxCol := -1
	width := s.rowWidthThrough(maxRow)
	for c := width - 1; c >= 0; c-- {
		if s.colHasContent(c, maxRow+1) {
			maxCol = c
			break
		}
	}
	s.printable = Size{Rows: maxRow + 1, Cols: maxCol + 1}
}

func (s *Sheet) rowHasContent(r int) bool {
	for _, cell := range s.cells[r] {
		if cellHasContent(cell) {
			return true
		}
	}
	return false
}

func (s *Sheet) colHasContent(c, rowLimit int) bool {
	for r := 0; r < rowLimit && r < len(s.cells); r++ {
		row := s.cells[r]
		if c < len(row) && cellHasContent(row[c]) {
			return true
		}
	}
	return false
}

func (s *Sheet) rowWidthThrough(maxRow int) int {
	width := 0
	for r := 0; r <= maxRow; r++ {
		if len(s.cells[r]) > width {
			width = len(s.cells[r])
		}
	}
	return width
}

func cellHasContent(c *Cell) bool {
	if c == nil {
		return false
	}
	_, empty := c.content.(emptyContent)
	return !empty
}
