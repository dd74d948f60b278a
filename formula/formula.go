package formula

// Handle is a parsed formula: an AST plus its deduplicated, in-order
// list of referenced positions. Parse and Handle, together with the
// Position, Lookup, EvalError and ErrorKind types their signatures use,
// are the surface cellgraph depends on (spec §6's "Formula module
// contract"); the AST node types and the parser are unexported.
type Handle struct {
	root       expr
	referenced []Position
}

// Parse parses a formula source string (without the leading '=') into
// a Handle. Failure wraps ErrParse.
func Parse(source string) (*Handle, error) {
	root, err := parse(source)
	if err != nil {
		return nil, err
	}
	return &Handle{root: root, referenced: referencedCells(root)}, nil
}

// ReferencedCells returns the positions named by the expression, in
// order of first occurrence, deduplicated.
func (h *Handle) ReferencedCells() []Position {
	out := make([]Position, len(h.referenced))
	copy(out, h.referenced)
	return out
}

// CanonicalExpression renders a normalized form of the expression:
// whitespace removed, parens minimized per standard precedence.
func (h *Handle) CanonicalExpression() string {
	return canonicalExpression(h.root)
}

// Execute evaluates the formula against lookup, returning a finite
// float64 or an *EvalError (ErrRef/ErrValue/ErrArithmetic).
func (h *Handle) Execute(lookup Lookup) (float64, error) {
	return execute(h.root, lookup)
}
