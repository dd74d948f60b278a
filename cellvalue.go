package cellgraph

import "strconv"

// valueKind tags the branch a CellValue currently holds.
type valueKind int

const (
	kindText valueKind = iota
	kindNumber
	kindError
)

// CellValue is the tagged result of reading a cell: text, a number, or
// an arithmetic error. Exactly one of the three fields is meaningful,
// selected by the internal kind tag (see IsText, IsNumber, IsError).
type CellValue struct {
	kind   valueKind
	text   string
	number float64
	errKin ArithmeticErrorKind
}

// TextValue constructs a text-branch CellValue.
func TextValue(s string) CellValue {
	return CellValue{kind: kindText, text: s}
}

// NumberValue constructs a number-branch CellValue.
func NumberValue(n float64) CellValue {
	return CellValue{kind: kindNumber, number: n}
}

// ErrorValue constructs an error-branch CellValue.
func ErrorValue(kind ArithmeticErrorKind) CellValue {
	return CellValue{kind: kindError, errKin: kind}
}

// IsText reports whether v holds a text value.
func (v CellValue) IsText() bool { return v.kind == kindText }

// IsNumber reports whether v holds a numeric value.
func (v CellValue) IsNumber() bool { return v.kind == kindNumber }

// IsError reports whether v holds an arithmetic error.
func (v CellValue) IsError() bool { return v.kind == kindError }

// Text returns the text payload; valid only when IsText is true.
func (v CellValue) Text() string { return v.text }

// Number returns the numeric payload; valid only when IsNumber is true.
func (v CellValue) Number() float64 { return v.number }

// ErrorKind returns the error payload; valid only when IsError is true.
func (v CellValue) ErrorKind() ArithmeticErrorKind { return v.errKin }

// String renders v the way PrintValues does: numbers with Go's default
// float formatting, text verbatim, errors as the canonical token.
func (v CellValue) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case kindError:
		return v.errKin.String()
	default:
		return v.text
	}
}
