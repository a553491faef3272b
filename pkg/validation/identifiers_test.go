package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReferenceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "fibonacci"},
		{name: "with version suffix", input: "fibonacci-v2"},
		{name: "with underscore and dot", input: "hw01_fib.graded"},
		{name: "empty", input: "", wantErr: true},
		{name: "leading dot", input: ".hidden", wantErr: true},
		{name: "path separator", input: "refs/fibonacci", wantErr: true},
		{name: "traversal attempt", input: "../../etc/passwd", wantErr: true},
		{name: "whitespace", input: "fib onacci", wantErr: true},
		{name: "too long", input: strings.Repeat("a", MaxIdentifierLength+1), wantErr: true},
		{name: "at length cap", input: strings.Repeat("a", MaxIdentifierLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReferenceName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, IsValidReferenceName(tt.input))
			} else {
				assert.NoError(t, err)
				assert.True(t, IsValidReferenceName(tt.input))
			}
		})
	}
}
