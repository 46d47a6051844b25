package fsutil

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystemWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("data/wells/log.csv", []byte("a,b\n1,2\n"), 0644))

	f, err := m.Open("data/wells/log.csv")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestMemoryFileSystemOpenMissing(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	_, err := m.Open("nope.csv")
	assert.Error(t, err)
	assert.False(t, m.Exists("nope.csv"))
}

func TestMemoryFileSystemStat(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("report.json", []byte("{}"), 0644))

	info, err := m.Stat("report.json")
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Size())
	assert.Equal(t, "report.json", info.Name())
	assert.False(t, info.IsDir())
}

func TestMemoryFileSystemMkdirAll(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	require.NoError(t, m.MkdirAll("docs/reports/archive", 0755))

	assert.True(t, m.Exists("docs"))
	assert.True(t, m.Exists("docs/reports"))
	assert.True(t, m.Exists("docs/reports/archive"))

	info, err := m.Stat("docs/reports")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
