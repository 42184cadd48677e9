package leader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/sarmeta/pkg/codec"
	"github.com/ssargent/sarmeta/pkg/endian"
	"github.com/ssargent/sarmeta/pkg/records"
)

func TestFile_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ASA_IMS.lea")
	f := New(Config{FilePath: path, Writable: true}, nil)

	assert.Equal(t, StateClosed, f.State())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file must not be created before first use")

	first := &records.SRGRConversionParameters{FirstZeroDopplerTimeDay: 3000, GroundRangeOrigin: 12345}
	second := &records.SRGRConversionParameters{FirstZeroDopplerTimeDay: 3001, SlantRangeTime: 5.5e6}

	off, err := f.WriteRecord(endian.BigEndian, first)
	require.NoError(t, err)
	assert.Equal(t, int64(0), off)
	assert.Equal(t, StateOpen, f.State())

	off, err = f.WriteRecord(endian.BigEndian, second)
	require.NoError(t, err)
	assert.Equal(t, int64(55), off)

	require.NoError(t, f.Close())
	assert.Equal(t, StateClosed, f.State())
	require.NoError(t, f.Close())

	// reading reopens the handle
	var got records.SRGRConversionParameters
	next, err := f.ReadRecord(0, endian.BigEndian, &got)
	require.NoError(t, err)
	assert.Equal(t, StateOpen, f.State())
	assert.Equal(t, int64(55), next)
	assert.Equal(t, *first, got)

	next, err = f.ReadRecord(next, endian.BigEndian, &got)
	require.NoError(t, err)
	assert.Equal(t, int64(110), next)
	assert.Equal(t, *second, got)

	size, err := f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(110), size)
	require.NoError(t, f.Close())
}

func TestFile_AppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lea_01.001")
	require.NoError(t, os.WriteFile(path, []byte("HEADER"), 0600))

	f := New(Config{FilePath: path, Writable: true}, codec.NewRecordCodec())
	defer f.Close()

	off, err := f.WriteRecord(endian.LittleEndian, &records.InfoSceneCoord{RefRow: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(6), off)

	var got records.InfoSceneCoord
	_, err = f.ReadRecord(6, endian.LittleEndian, &got)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), got.RefRow)
}

func TestFile_ReadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.lea")
	require.NoError(t, os.WriteFile(path, make([]byte, 20), 0600))

	f := New(Config{FilePath: path}, nil)
	defer f.Close()

	var rec records.SRGRConversionParameters
	_, err := f.ReadRecord(0, endian.BigEndian, &rec)
	assert.True(t, errors.Is(err, codec.ErrTruncatedStream))

	_, err = f.ReadRecord(21, endian.BigEndian, &rec)
	assert.True(t, errors.Is(err, ErrInvalidOffset))

	_, err = f.ReadRecord(-1, endian.BigEndian, &rec)
	assert.True(t, errors.Is(err, ErrInvalidOffset))

	_, err = f.WriteRecord(endian.BigEndian, &rec)
	assert.True(t, errors.Is(err, ErrReadOnly))
}

func TestFile_WriteRecordFailureLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()

	// the count says two corners but only one is present, so encoding fails
	// after the fixed part, well past the buffer size
	bad := &records.SceneCoord{
		NumberOfSceneCornerCoord: 2,
		SceneCornerCoord:         []records.InfoSceneCoord{{RefRow: 1}},
	}

	t.Run("new file is not created", func(t *testing.T) {
		path := filepath.Join(dir, "new.lea")
		f := New(Config{FilePath: path, Writable: true, BufferSize: 16}, nil)
		defer f.Close()

		_, err := f.WriteRecord(endian.BigEndian, bad)
		assert.True(t, errors.Is(err, codec.ErrCountMismatch))
		assert.Equal(t, StateClosed, f.State())
		assert.NoFileExists(t, path)
	})

	t.Run("existing records are kept whole", func(t *testing.T) {
		path := filepath.Join(dir, "existing.lea")
		f := New(Config{FilePath: path, Writable: true, BufferSize: 16}, nil)
		defer f.Close()

		_, err := f.WriteRecord(endian.BigEndian, &records.SRGRConversionParameters{AttachFlag: 1})
		require.NoError(t, err)

		_, err = f.WriteRecord(endian.BigEndian, bad)
		assert.True(t, errors.Is(err, codec.ErrCountMismatch))

		size, err := f.Size()
		require.NoError(t, err)
		assert.Equal(t, int64(55), size)
	})
}

func TestFile_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.lea")
	f := New(Config{FilePath: path, Writable: true}, nil)
	defer f.Close()

	off, err := f.Append([]byte("ABC"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), off)
	off, err = f.Append([]byte("DE"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), off)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("ABCDE"), data)

	ro := New(Config{FilePath: path}, nil)
	_, err = ro.Append([]byte("X"))
	assert.True(t, errors.Is(err, ErrReadOnly))
}

func TestFile_MissingFile(t *testing.T) {
	f := New(Config{FilePath: filepath.Join(t.TempDir(), "absent.lea")}, nil)

	var rec records.SRGRConversionParameters
	_, err := f.ReadRecord(0, endian.BigEndian, &rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, StateClosed, f.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
}
