// Package pathutil joins path fragments.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Separator is the separator used by Join regardless of the host OS.
const Separator = `\`

// Join concatenates first and parts with a backslash, formatting each part
// with fmt.Sprint. Nothing is cleaned or collapsed.
//
//	Join("C:", "data", 2020) == `C:\data\2020`
func Join(first any, parts ...any) string {
	var b strings.Builder
	b.WriteString(fmt.Sprint(first))
	for _, p := range parts {
		b.WriteString(Separator)
		b.WriteString(fmt.Sprint(p))
	}
	return b.String()
}

// Path builds a path with the host separator.
type Path struct {
	path string
}

// New returns a Path starting at init, cleaned. An empty init gives an empty
// Path.
func New(init string) *Path {
	p := &Path{}
	if init != "" {
		p.path = filepath.Clean(init)
	}
	return p
}

// Append joins part onto the path and returns p for chaining.
func (p *Path) Append(part any) *Path {
	p.path = filepath.Join(p.path, fmt.Sprint(part))
	return p
}

func (p *Path) String() string {
	return p.path
}
