package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	v.Required("api_key", "user-1")
	assert.Equal(t, int64(42), v.Int64("amount", " 42 "))
	assert.True(t, v.Valid())
	assert.Empty(t, v.Error())

	v.Required("source", "  ")
	assert.Zero(t, v.Int64("amount", "1.5"))
	assert.Zero(t, v.Int64("count", ""))
	assert.False(t, v.Valid())
	assert.Equal(t, "source: is required; amount: must be an integer; count: is required", v.Error())
}
