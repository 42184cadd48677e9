// Package leader gives record-level access to satellite leader and header
// files through a lazily opened handle.
package leader

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/sarmeta/pkg/codec"
	"github.com/ssargent/sarmeta/pkg/endian"
	"github.com/ssargent/sarmeta/pkg/logger"
)

var (
	// ErrInvalidOffset means a read was requested outside the file.
	ErrInvalidOffset = errors.New("offset outside leader file")
	// ErrReadOnly means a write was attempted on a read-only handle.
	ErrReadOnly = errors.New("leader file opened read-only")
)

// State is the lifecycle state of a File.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Config holds the settings of a leader file handle.
type Config struct {
	FilePath   string
	Writable   bool
	BufferSize int
	Logger     logger.ILogger
}

// File is a leader file handle. It touches the disk only when a record is
// first read or written, and Close returns it to StateClosed; the next
// access opens it again. A File is owned by one goroutine at a time.
type File struct {
	config Config
	codec  *codec.RecordCodec
	file   *os.File
}

// New creates a closed handle. No file is opened or created yet.
func New(config Config, c *codec.RecordCodec) *File {
	if config.BufferSize <= 0 {
		config.BufferSize = 4096
	}
	if config.Logger == nil {
		config.Logger = &logger.NullLogger{}
	}
	if c == nil {
		c = codec.NewRecordCodec(codec.WithLogger(config.Logger))
	}
	return &File{config: config, codec: c}
}

// State reports whether the underlying file is currently open.
func (f *File) State() State {
	if f.file != nil {
		return StateOpen
	}
	return StateClosed
}

// Path returns the file path
func (f *File) Path() string {
	return f.config.FilePath
}

func (f *File) open() error {
	if f.file != nil {
		return nil
	}

	var (
		file *os.File
		err  error
	)
	if f.config.Writable {
		if err = os.MkdirAll(filepath.Dir(f.config.FilePath), 0750); err != nil {
			return errors.Wrapf(err, "create directory for %s", f.config.FilePath)
		}
		file, err = os.OpenFile(f.config.FilePath, os.O_CREATE|os.O_RDWR, 0600)
	} else {
		file, err = os.Open(f.config.FilePath)
	}
	if err != nil {
		return errors.Wrapf(err, "open leader file %s", f.config.FilePath)
	}

	f.file = file
	f.config.Logger.Debugf("opened %s (writable=%t)", f.config.FilePath, f.config.Writable)
	return nil
}

// Size returns the current length of the file.
func (f *File) Size() (int64, error) {
	if err := f.open(); err != nil {
		return 0, err
	}
	stat, err := f.file.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "stat %s", f.config.FilePath)
	}
	return stat.Size(), nil
}

// ReadRecord parses rec from the bytes starting at offset and returns the
// offset just past it, so consecutive records can be read in sequence.
func (f *File) ReadRecord(offset int64, order endian.Order, rec codec.Record) (int64, error) {
	size, err := f.Size()
	if err != nil {
		return offset, err
	}
	if offset < 0 || offset > size {
		return offset, errors.Wrapf(ErrInvalidOffset, "offset %d, size %d", offset, size)
	}

	section := io.NewSectionReader(f.file, offset, size-offset)
	r := bufio.NewReaderSize(section, f.config.BufferSize)
	if err := f.codec.ParseStream(r, order, rec); err != nil {
		return offset, errors.Wrapf(err, "%s at offset %d", f.config.FilePath, offset)
	}
	return offset + int64(codec.Size(rec)), nil
}

// WriteRecord appends the binary form of rec and returns the offset it was
// written at. The record is encoded before the file is touched, so a record
// that cannot be encoded leaves the file as it was.
func (f *File) WriteRecord(order endian.Order, rec codec.Record) (int64, error) {
	if !f.config.Writable {
		return 0, errors.Wrapf(ErrReadOnly, "%s", f.config.FilePath)
	}
	data, err := f.codec.Encode(rec, order)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", f.config.FilePath)
	}
	return f.Append(data)
}

// Append writes data, one or more encoded records, at the end of the file
// in a single write and returns the offset it starts at. A failed write is
// cut back off so no partial record remains.
func (f *File) Append(data []byte) (int64, error) {
	if !f.config.Writable {
		return 0, errors.Wrapf(ErrReadOnly, "%s", f.config.FilePath)
	}
	if err := f.open(); err != nil {
		return 0, err
	}

	offset, err := f.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.Wrapf(err, "seek to end of %s", f.config.FilePath)
	}

	if _, err := f.file.Write(data); err != nil {
		if terr := f.file.Truncate(offset); terr != nil {
			f.config.Logger.Errorf("%s: cannot remove partial record at %d: %v", f.config.FilePath, offset, terr)
		}
		return 0, errors.Mark(errors.Wrapf(err, "write %s at offset %d", f.config.FilePath, offset), codec.ErrStreamWrite)
	}
	return offset, nil
}

// Sync commits written records to stable storage.
func (f *File) Sync() error {
	if f.file == nil {
		return nil
	}
	return errors.Wrapf(f.file.Sync(), "sync %s", f.config.FilePath)
}

// Close releases the file. Closing a closed handle is a no-op.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}

	var err error
	if f.config.Writable {
		err = f.file.Sync()
	}
	if closeErr := f.file.Close(); err == nil {
		err = closeErr
	}
	f.file = nil
	f.config.Logger.Debugf("closed %s", f.config.FilePath)
	return errors.Wrapf(err, "close %s", f.config.FilePath)
}
