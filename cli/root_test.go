package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"gridfix/grid"
)

func TestExitCodeClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"missing file", fs.ErrNotExist, ExitInput},
		{"permission", fmt.Errorf("open: %w", fs.ErrPermission), ExitInput},
		{"bad grid", fmt.Errorf("parsing: %w", grid.ErrInvalidGrid), ExitParse},
		{"coded wins", withCode(ExitConfig, fmt.Errorf("wrapped: %w", fs.ErrNotExist)), ExitConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}

func TestWithCodeNilPassthrough(t *testing.T) {
	assert.NoError(t, withCode(ExitConfig, nil))
}

func TestCodedErrorUnwraps(t *testing.T) {
	base := errors.New("underneath")
	err := withCode(ExitParse, base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "underneath", err.Error())
}
