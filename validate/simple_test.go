// ABOUTME: Tests for the lost-reason and entity-id validators
// ABOUTME: Small contracts exercised by every win/lose and delete flow
package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLostReason(t *testing.T) {
	reason, err := LostReason("  Went with a competitor  ")
	require.NoError(t, err)
	assert.Equal(t, "Went with a competitor", reason)

	_, err = LostReason("   ")
	require.Error(t, err)
	assert.Equal(t, Required, AsError(err).Kind)
	assert.Equal(t, "A reason is required.", err.Error())

	_, err = LostReason(strings.Repeat("x", 501))
	require.Error(t, err)
	assert.Equal(t, TooLong, AsError(err).Kind)
	assert.Equal(t, "Reason must be 500 characters or less.", err.Error())
}

func TestEntityID(t *testing.T) {
	id, err := EntityID(" deal-123 ")
	require.NoError(t, err)
	assert.Equal(t, "deal-123", id)

	_, err = EntityID("")
	require.Error(t, err)
	assert.Equal(t, "A valid id is required.", err.Error())

	// Stale UI state often arrives as whitespace; still rejected.
	_, err = EntityID("  ")
	require.Error(t, err)
	assert.Equal(t, Required, AsError(err).Kind)
}
