// Package export writes the tables of one solver iteration as CSV.
//
// The format is what spreadsheet users of the tableau page expect: each
// table is preceded by a one-field title line ("Tableau" for the first,
// "Basic Solution" for the rest), every field is quoted, and tables are
// separated by an empty line.
package export

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bamreyes/Project-Green/internal/solver"
)

const (
	TableauTitle  = "Tableau"
	SolutionTitle = "Basic Solution"
)

var ErrEmptySection = errors.New("iteration section has no table content")

// Section is one iteration view: its number and its tables in page order.
type Section struct {
	Number int
	Tables [][][]string
}

// FromIteration builds the section the tableau page shows for it.
func FromIteration(it solver.Iteration) Section {
	return Section{
		Number: it.Number,
		Tables: [][][]string{it.TableauRows(), it.BasicSolutionRows()},
	}
}

func FileName(number int) string {
	return "Iteration_" + strconv.Itoa(number) + "_Data.csv"
}

func (s Section) FileName() string {
	return FileName(s.Number)
}

func (s Section) empty() bool {
	for _, t := range s.Tables {
		for _, row := range t {
			if len(row) > 0 {
				return false
			}
		}
	}
	return true
}

func title(i int) string {
	if i == 0 {
		return TableauTitle
	}
	return SolutionTitle
}

// Write writes s to w. A section without any cell returns ErrEmptySection
// and writes nothing.
func Write(w io.Writer, s Section) error {
	if s.empty() {
		return fmt.Errorf("iteration %d: %w", s.Number, ErrEmptySection)
	}
	bw := bufio.NewWriter(w)
	for i, table := range s.Tables {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if err := writeRecord(bw, []string{title(i)}); err != nil {
			return err
		}
		for _, row := range table {
			if err := writeRecord(bw, row); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Bytes returns the CSV text of s.
func Bytes(s Section) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Field quotes a cell: line breaks are dropped and quotes doubled.
func Field(cell string) string {
	cell = strings.NewReplacer("\r\n", "", "\r", "", "\n", "").Replace(cell)
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(Field(f)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
