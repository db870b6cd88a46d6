package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Dialect describes the separator and line terminator of a CSV flavour.
type Dialect struct {
	Name    string
	Comma   rune
	UseCRLF bool
}

var (
	// Excel is comma separated with CRLF line endings.
	Excel = Dialect{Name: "excel", Comma: ',', UseCRLF: true}
	// ExcelTab is tab separated with CRLF line endings.
	ExcelTab = Dialect{Name: "excel-tab", Comma: '\t', UseCRLF: true}
	// Unix is comma separated with LF line endings.
	Unix = Dialect{Name: "unix", Comma: ',', UseCRLF: false}
)

var dialects = []Dialect{Excel, ExcelTab, Unix}

// ParseDialect looks up a dialect by name. An empty name selects Excel.
func ParseDialect(name string) (Dialect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Excel, nil
	}
	for _, d := range dialects {
		if d.Name == name {
			return d, nil
		}
	}
	return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

func (d Dialect) isZero() bool {
	return d.Comma == 0
}

func (d Dialect) or(fallback Dialect) Dialect {
	if d.isZero() {
		return fallback
	}
	return d
}

func (d Dialect) newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = d.Comma
	cw.UseCRLF = d.UseCRLF
	return cw
}

func (d Dialect) newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = d.Comma
	cr.FieldsPerRecord = -1
	return cr
}
