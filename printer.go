package cellgraph

import (
	"fmt"
	"io"
)

// PrintValues writes the printable region row-major to w: values
// separated by tabs, rows terminated by newline. Absent slots emit
// nothing but still emit the separating tab.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.Value(s).String()
	})
}

// PrintTexts writes the printable region row-major to w: each cell's
// Text() representation, tab-separated, newline-terminated rows.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.Text()
	})
}

func (s *Sheet) print(w io.Writer, render func(*Cell) string) error {
	for r := 0; r < s.printable.Rows; r++ {
		for c := 0; c < s.printable.Cols; c++ {
			if c > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			var cell *Cell
			if r < len(s.cells) && c < len(s.cells[r]) {
				cell = s.cells[r][c]
			}
			if _, err := fmt.Fprint(w, render(cell)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
