package dotenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidate 测试必需键检查
func TestValidate(t *testing.T) {
	s := NewMemoryStoreFrom(map[string]string{
		"API_KEY": "secret",
		"EMPTY":   EmptyValue,
	})

	res := Validate(s, "API_KEY", "EMPTY", "MISSING")

	require.Equal(t, 2, res.Len())
	assert.Equal(t, "EMPTY", res.Issues()[0].Actual)
	assert.Equal(t, "MISSING", res.Issues()[1].Actual)
	assert.Equal(t, 2, res.Count(RequiredKeysNotPresent))

	assert.NoError(t, RequireKeys(s, "API_KEY"))

	err := RequireKeys(s, "MISSING")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequiredKeysNotPresent)
	assert.Equal(t, `error: the required key "MISSING" is not present`, err.Error())
}
