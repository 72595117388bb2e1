package varpeq_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephtools/polaron/varpeq"
)

// notebookDoc mirrors the nbformat envelope for decoding in tests.
type notebookDoc struct {
	Cells []struct {
		CellType string   `json:"cell_type"`
		Source   []string `json:"source"`
	} `json:"cells"`
	NBFormat      int `json:"nbformat"`
	NBFormatMinor int `json:"nbformat_minor"`
}

// TestFile_WriteNotebook emits valid nbformat-4 JSON with the abiopen cell.
func TestFile_WriteNotebook(t *testing.T) {
	f, err := varpeq.NewFile(newFixtureFile("out_VARPEQ.nc", 2, [3]float64{}, "hole", fixtureIterHa))
	require.NoError(t, err)
	defer f.Close()

	var buf bytes.Buffer
	require.NoError(t, f.WriteNotebook(&buf))

	var doc notebookDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 4, doc.NBFormat)
	require.Len(t, doc.Cells, 4, "preamble plus three analysis cells")
	for _, cell := range doc.Cells {
		assert.Equal(t, "code", cell.CellType)
	}

	open := strings.Join(doc.Cells[1].Source, "")
	assert.Contains(t, open, `abilab.abiopen("out_VARPEQ.nc")`)
	assert.Contains(t, strings.Join(doc.Cells[3].Source, ""), "plot_scf_cycle")
}

// TestRobot_WriteNotebook rebuilds the robot with labels and paths.
func TestRobot_WriteNotebook(t *testing.T) {
	r := twoFileRobot(t)

	var buf bytes.Buffer
	require.NoError(t, r.WriteNotebook(&buf))

	var doc notebookDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Cells, 3)

	robotCell := strings.Join(doc.Cells[1].Source, "")
	assert.Contains(t, robotCell, "VarpeqRobot")
	assert.Contains(t, robotCell, `("coarse", "coarse.nc")`)
	assert.Contains(t, robotCell, `("dense", "dense.nc")`)
}
