package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockFileSystem_WriteRequiresParent(t *testing.T) {
	mfs := NewMockFileSystem()

	err := mfs.WriteFile("/data/a.json", []byte("{}"), 0644)
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, mfs.MkdirAll("/data", 0755))
	require.NoError(t, mfs.WriteFile("/data/a.json", []byte("{}"), 0644))

	data, err := mfs.ReadFile("/data/a.json")
	require.NoError(t, err)
	require.Equal(t, "{}", string(data))
}

func TestMockFileSystem_ReadReturnsCopy(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/data/a.json", []byte("abc"))

	data, err := mfs.ReadFile("/data/a.json")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := mfs.ReadFile("/data/a.json")
	require.NoError(t, err)
	require.Equal(t, "abc", string(again))
}

func TestMockFileSystem_Rename(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/data/a.tmp", []byte("1"))

	require.NoError(t, mfs.Rename("/data/a.tmp", "/data/a.json"))
	require.False(t, mfs.Exists("/data/a.tmp"))
	require.True(t, mfs.Exists("/data/a.json"))

	require.ErrorIs(t, mfs.Rename("/data/missing", "/data/b"), fs.ErrNotExist)
}

func TestMockFileSystem_ReadDirSorted(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/data/b.json", nil)
	mfs.AddFile("/data/a.json", nil)
	mfs.AddDir("/data/sub")
	mfs.AddFile("/data/sub/c.json", nil)

	entries, err := mfs.ReadDir("/data")
	require.NoError(t, err)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	require.Equal(t, []string{"a.json", "b.json", "sub"}, names)
	require.True(t, entries[2].IsDir())

	_, err = mfs.ReadDir("/missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMockFileSystem_FailOn(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/data/a.json", []byte("1"))
	boom := errors.New("disk full")

	mfs.FailOn("write", boom)
	require.ErrorIs(t, mfs.WriteFile("/data/b.json", nil, 0644), boom)

	mfs.FailOn("read", boom)
	_, err := mfs.ReadFile("/data/a.json")
	require.ErrorIs(t, err, boom)

	mfs.FailOn("read", nil)
	_, err = mfs.ReadFile("/data/a.json")
	require.NoError(t, err)

	mfs.FailOn("remove", boom)
	require.ErrorIs(t, mfs.Remove("/data/a.json"), boom)
}
