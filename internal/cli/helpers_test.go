package cli

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/kanban/internal/models"
)

// ============================================================================
// Argument Parsing Tests
// ============================================================================

func TestParseTaskID(t *testing.T) {
	id, err := ParseTaskID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseTaskID(raw)
			require.Error(t, err)
			assert.Equal(t, ExitUsage, ExitCode(err))
		})
	}
}

func TestParsePosition(t *testing.T) {
	pos, err := ParsePosition("0")
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	pos, err = ParsePosition("9999")
	require.NoError(t, err)
	assert.Equal(t, 9999, pos, "large positions are left for the move to clamp")

	_, err = ParsePosition("first")
	assert.Equal(t, ExitUsage, ExitCode(err))

	_, err = ParsePosition("-1")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.Equal(t, ExitValidation, ExitCode(err))
}

// ============================================================================
// Description Input Tests
// ============================================================================

func TestReadDescription(t *testing.T) {
	desc, err := ReadDescription("inline", strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "inline", desc)

	desc, err = ReadDescription("-", strings.NewReader("from\nstdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from\nstdin", desc)

	_, err = ReadDescription("-", iotest.ErrReader(errors.New("broken pipe")))
	require.Error(t, err)
	assert.Equal(t, ExitDataErr, ExitCode(err))
}
