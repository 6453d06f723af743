package dotenv

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryStore 测试内存存储
func TestMemoryStore(t *testing.T) {
	src := map[string]string{"A": "1"}
	s := NewMemoryStoreFrom(src)
	src["B"] = "2"

	_, ok := s.Lookup("B")
	assert.False(t, ok, "store holds a copy of the initial map")

	require.NoError(t, s.Set("C", "3"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, map[string]string{"A": "1", "C": "3"}, ToMap(s))

	m := s.Map()
	m["A"] = "changed"
	assert.Equal(t, "1", Get(s, "A"), "Map returns a copy")
}

// TestProcessStore 测试进程环境变量存储
func TestProcessStore(t *testing.T) {
	t.Setenv("DOTENV_TEST_STORE", "")
	require.NoError(t, os.Unsetenv("DOTENV_TEST_STORE"))

	s := NewProcessStore()
	_, ok := s.Lookup("DOTENV_TEST_STORE")
	assert.False(t, ok)

	require.NoError(t, s.Set("DOTENV_TEST_STORE", "value=with=equals"))
	assert.Equal(t, "value=with=equals", os.Getenv("DOTENV_TEST_STORE"))

	found := false
	for k, v := range s.All() {
		if k == "DOTENV_TEST_STORE" {
			found = true
			assert.Equal(t, "value=with=equals", v)
		}
	}
	assert.True(t, found, "All should enumerate process variables")

	assert.Error(t, s.Set("", "x"), "empty key is rejected by the OS")
}

// TestGet 测试 Get 对缺失键返回空串
func TestGet(t *testing.T) {
	s := NewMemoryStoreFrom(map[string]string{"A": EmptyValue})

	assert.Equal(t, " ", Get(s, "A"))
	assert.Equal(t, "", Get(s, "MISSING"))
}
