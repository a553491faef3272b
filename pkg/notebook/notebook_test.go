package notebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNotebook = `{
	"nbformat": 4,
	"nbformat_minor": 5,
	"cells": [
		{"cell_type": "markdown", "source": "# Fibonacci", "metadata": {}},
		{"cell_type": "code", "source": ["import math\n", "import numpy as np, itertools\n"], "metadata": {}, "outputs": [], "execution_count": 1},
		{"cell_type": "code", "source": "from collections import deque\nx = deque()", "metadata": {}, "outputs": [], "execution_count": 2}
	],
	"metadata": {}
}`

func TestParse(t *testing.T) {
	nb, err := Parse([]byte(sampleNotebook))
	require.NoError(t, err)

	assert.Equal(t, 4, nb.Format())
	require.Len(t, nb.Cells(), 3)
	require.Len(t, nb.CodeCells(), 2)

	// Array-of-lines sources are joined.
	assert.Equal(t, "import math\nimport numpy as np, itertools\n", nb.CodeCells()[0].Source)
	// String sources pass through.
	assert.Equal(t, "from collections import deque\nx = deque()", nb.CodeCells()[1].Source)
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing cells",
			data: `{"nbformat": 4}`,
		},
		{
			name: "missing nbformat",
			data: `{"cells": []}`,
		},
		{
			name: "cell without type",
			data: `{"nbformat": 4, "cells": [{"source": "x = 1"}]}`,
		},
		{
			name: "unknown cell type",
			data: `{"nbformat": 4, "cells": [{"cell_type": "widget", "source": ""}]}`,
		},
		{
			name: "nbformat not an integer",
			data: `{"nbformat": "four", "cells": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsWrongFormatVersion(t *testing.T) {
	_, err := Parse([]byte(`{"nbformat": 3, "cells": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported nbformat version 3")
}

func TestReadAndWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "submission.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(sampleNotebook), 0644))

	nb, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(sampleNotebook), nb.Bytes())

	out := filepath.Join(dir, "executed.ipynb")
	require.NoError(t, nb.Write(out))

	again, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, nb.Bytes(), again.Bytes())
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.ipynb"))
	assert.Error(t, err)
}

func TestImports(t *testing.T) {
	nb, err := Parse([]byte(sampleNotebook))
	require.NoError(t, err)

	assert.Equal(t, []string{"collections", "itertools", "math", "numpy"}, nb.Imports())
}

func TestImportsIgnoresNonImportLines(t *testing.T) {
	nb, err := Parse([]byte(`{
		"nbformat": 4,
		"cells": [
			{"cell_type": "code", "source": "result = importer.run()\nprint('from x import y')"},
			{"cell_type": "markdown", "source": "import markdown_not_code"}
		]
	}`))
	require.NoError(t, err)

	assert.Empty(t, nb.Imports())
}
