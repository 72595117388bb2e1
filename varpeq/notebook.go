package varpeq

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// nbCell is one nbformat-4 code cell.
type nbCell struct {
	CellType       string         `json:"cell_type"`
	ExecutionCount *int           `json:"execution_count"`
	Metadata       map[string]any `json:"metadata"`
	Outputs        []any          `json:"outputs"`
	Source         []string       `json:"source"`
}

// nbDoc is the nbformat-4 notebook envelope.
type nbDoc struct {
	Cells         []nbCell       `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// newCodeCell splits source into the per-line form notebooks store.
func newCodeCell(source string) nbCell {
	lines := strings.SplitAfter(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	return nbCell{
		CellType: "code",
		Metadata: map[string]any{},
		Outputs:  []any{},
		Source:   lines,
	}
}

// nbPreamble is the import cell every generated notebook starts with.
const nbPreamble = `import sys, os
import numpy as np

from abipy import abilab
abilab.enable_notebook()`

// writeNotebook marshals the cells into a notebook document.
func writeNotebook(w io.Writer, cells []nbCell) error {
	doc := nbDoc{
		Cells:         append([]nbCell{newCodeCell(nbPreamble)}, cells...),
		Metadata:      map[string]any{},
		NBFormat:      4,
		NBFormatMinor: 5,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("varpeq: write notebook: %w", err)
	}

	return nil
}

// WriteNotebook writes an nbformat-4 notebook that opens this file with the
// Python analysis layer and prints the report.
func (f *File) WriteNotebook(w io.Writer) error {
	return writeNotebook(w, []nbCell{
		newCodeCell(fmt.Sprintf("varpeq = abilab.abiopen(%q)", f.Path())),
		newCodeCell("print(varpeq)"),
		newCodeCell("varpeq.plot_scf_cycle();"),
	})
}

// WriteNotebook writes an nbformat-4 notebook that rebuilds this robot in
// the Python analysis layer.
func (r *Robot) WriteNotebook(w io.Writer) error {
	args := make([]string, 0, r.Len())
	for _, label := range r.labels {
		args = append(args, fmt.Sprintf("(%q, %q)", label, r.files[label].Path()))
	}

	return writeNotebook(w, []nbCell{
		newCodeCell(fmt.Sprintf("robot = abilab.VarpeqRobot(*[%s])\nrobot.trim_paths()\nrobot",
			strings.Join(args, ", "))),
		newCodeCell("robot.plot_kconv();"),
	})
}
