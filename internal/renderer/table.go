package renderer

import (
	"io"
	"strings"
)

// alignment of a Markdown table column.
type alignment int

const (
	left alignment = iota
	right
)

// table accumulates a GitHub-flavored Markdown table.
type table struct {
	header []string
	align  []alignment
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header, align: make([]alignment, len(header))}
}

// alignRight right-aligns the given columns; numbers read better that way.
func (t *table) alignRight(cols ...int) *table {
	for _, c := range cols {
		t.align[c] = right
	}
	return t
}

func (t *table) row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer) {
	writeRow(w, t.header)
	sep := make([]string, len(t.header))
	for i, a := range t.align {
		if a == right {
			sep[i] = "---:"
		} else {
			sep[i] = ":---"
		}
	}
	writeRow(w, sep)
	for _, r := range t.rows {
		writeRow(w, r)
	}
	io.WriteString(w, "\n")
}

func writeRow(w io.Writer, cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	io.WriteString(w, "| "+strings.Join(escaped, " | ")+" |\n")
}
