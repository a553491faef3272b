// Package notebook consumes Jupyter notebook documents: parsing, shape
// validation, and code-cell extraction. It defines no notebook format of
// its own, it reads the existing nbformat 4 JSON.
package notebook

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// FormatVersion is the nbformat major version this package consumes.
const FormatVersion = 4

// Cell is a single notebook cell.
type Cell struct {
	// Type is the cell type: "code", "markdown", or "raw".
	Type string
	// Source is the cell's source text with line fragments joined.
	Source string
}

// Notebook is a parsed, validated notebook document. It retains the raw
// JSON so the document round-trips byte-for-byte through serialization.
type Notebook struct {
	raw    []byte
	format int
	cells  []Cell
}

// Parse validates and parses a notebook document from its JSON bytes.
func Parse(data []byte) (*Notebook, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	format := int(gjson.GetBytes(data, "nbformat").Int())
	if format != FormatVersion {
		return nil, fmt.Errorf("unsupported nbformat version %d (want %d)", format, FormatVersion)
	}

	nb := &Notebook{
		raw:    append([]byte(nil), data...),
		format: format,
	}

	gjson.GetBytes(data, "cells").ForEach(func(_, cell gjson.Result) bool {
		nb.cells = append(nb.cells, Cell{
			Type:   cell.Get("cell_type").String(),
			Source: joinSource(cell.Get("source")),
		})
		return true
	})

	return nb, nil
}

// Read parses a notebook document from a file.
func Read(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading notebook %s: %w", path, err)
	}

	nb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing notebook %s: %w", path, err)
	}
	return nb, nil
}

// Bytes returns the raw JSON document.
func (n *Notebook) Bytes() []byte {
	return append([]byte(nil), n.raw...)
}

// Format returns the nbformat major version.
func (n *Notebook) Format() int {
	return n.format
}

// Cells returns all cells in document order.
func (n *Notebook) Cells() []Cell {
	out := make([]Cell, len(n.cells))
	copy(out, n.cells)
	return out
}

// CodeCells returns the code cells in document order.
func (n *Notebook) CodeCells() []Cell {
	var out []Cell
	for _, cell := range n.cells {
		if cell.Type == "code" {
			out = append(out, cell)
		}
	}
	return out
}

// Write stores the raw document at the given path.
func (n *Notebook) Write(path string) error {
	if err := os.WriteFile(path, n.raw, 0644); err != nil {
		return fmt.Errorf("writing notebook %s: %w", path, err)
	}
	return nil
}

// joinSource handles both source encodings nbformat allows: a single string
// or an array of line fragments.
func joinSource(source gjson.Result) string {
	if source.IsArray() {
		var sb strings.Builder
		source.ForEach(func(_, line gjson.Result) bool {
			sb.WriteString(line.String())
			return true
		})
		return sb.String()
	}
	return source.String()
}
