package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2esource/internal/protocol"
)

func TestFileStore_MissingFileIsFreshStart(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	cp, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, cp)
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save(protocol.ColumnData{Column1: 5}))
	require.NoError(t, s.Save(protocol.ColumnData{Column1: 10}))

	cp, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, &protocol.ColumnData{Column1: 10}, cp)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"column1\":10}\n", string(raw))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not linger")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"column1":"x"}`), 0o644))
	_, err := NewFileStore(path).Load()
	assert.ErrorContains(t, err, "checkpoint")
}
