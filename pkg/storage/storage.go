// Package storage archives keyword lists in a Pebble database under
// time-ordered KSUID identifiers.
package storage

import (
	"bytes"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/sarmeta/pkg/kwl"
	"github.com/ssargent/sarmeta/pkg/logger"
	"github.com/ssargent/sarmeta/pkg/metrics"
)

var (
	// ErrNotFound means no entry exists for an identifier.
	ErrNotFound = errors.New("archive entry not found")
	// ErrInvalidID means a string is not an archive identifier.
	ErrInvalidID = errors.New("invalid archive identifier")
)

var (
	keyPrefix = []byte("kwl/")
	keyLimit  = []byte("kwl0")
)

// Item is an archived keyword list.
type Item struct {
	ID         ksuid.KSUID
	RecordType string
	Created    time.Time
	Keywords   *kwl.Keywordlist
}

// Summary describes an entry without its keyword list.
type Summary struct {
	ID         ksuid.KSUID
	RecordType string
	Created    time.Time
	Keys       int
}

// Archive is a keyword-list store. It is safe for concurrent use.
type Archive struct {
	db      *pebble.DB
	logger  logger.ILogger
	metrics *metrics.Metrics
}

// Option configures an Archive.
type Option func(*Archive)

// WithLogger sets the archive logger.
func WithLogger(l logger.ILogger) Option {
	return func(a *Archive) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics enables archive operation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Archive) {
		a.metrics = m
	}
}

// Open opens or creates the archive in dir.
func Open(dir string, opts ...Option) (*Archive, error) {
	return OpenWithOptions(dir, &pebble.Options{}, opts...)
}

// OpenWithOptions is Open with explicit Pebble options, e.g. an in-memory
// file system for tests.
func OpenWithOptions(dir string, pebbleOpts *pebble.Options, opts ...Option) (*Archive, error) {
	db, err := pebble.Open(dir, pebbleOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", dir)
	}

	a := &Archive{db: db, logger: &logger.NullLogger{}}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debugf("opened archive %s", dir)
	return a, nil
}

func entryKey(id ksuid.KSUID) []byte {
	return append(append([]byte{}, keyPrefix...), id.Bytes()...)
}

// Put stores k, saved from a record of recordType, and returns its new
// identifier.
func (a *Archive) Put(recordType string, k *kwl.Keywordlist) (ksuid.KSUID, error) {
	id := ksuid.New()

	var body bytes.Buffer
	if _, err := k.WriteTo(&body); err != nil {
		a.metrics.RecordOperation(metrics.OpArchive, recordType, err)
		return ksuid.Nil, errors.Wrapf(err, "encode %s", recordType)
	}

	err := a.db.Set(entryKey(id), NewEntry(recordType, body.Bytes()).Encode(), pebble.NoSync)
	a.metrics.RecordOperation(metrics.OpArchive, recordType, err)
	if err != nil {
		return ksuid.Nil, errors.Wrapf(err, "store %s", id)
	}

	a.logger.Debugf("archived %s as %s (%d keys)", recordType, id, k.Len())
	return id, nil
}

// Get loads the entry stored under id.
func (a *Archive) Get(id ksuid.KSUID) (*Item, error) {
	data, closer, err := a.db.Get(entryKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", id)
	}
	defer closer.Close()

	e, err := DecodeEntry(data)
	if err != nil {
		a.logger.Errorf("entry %s: %v", id, err)
		return nil, errors.Wrapf(err, "entry %s", id)
	}

	keywords, err := kwl.Parse(bytes.NewReader(e.Body))
	if err != nil {
		return nil, errors.Wrapf(err, "entry %s", id)
	}

	return &Item{
		ID:         id,
		RecordType: string(e.Type),
		Created:    e.Time(),
		Keywords:   keywords,
	}, nil
}

// Delete removes the entry stored under id.
func (a *Archive) Delete(id ksuid.KSUID) error {
	key := entryKey(id)
	_, closer, err := a.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return errors.Wrapf(ErrNotFound, "%s", id)
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", id)
	}
	closer.Close()

	if err := a.db.Delete(key, pebble.NoSync); err != nil {
		return errors.Wrapf(err, "delete %s", id)
	}
	a.logger.Debugf("deleted %s", id)
	return nil
}

// List returns every entry ordered by identifier, which orders them by
// creation time to the second. Corrupted entries are logged and skipped.
func (a *Archive) List() ([]Summary, error) {
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: keyPrefix,
		UpperBound: keyLimit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "iterate archive")
	}
	defer iter.Close()

	var out []Summary
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(bytes.TrimPrefix(iter.Key(), keyPrefix))
		if err != nil {
			a.logger.Warnf("skipping malformed archive key %x", iter.Key())
			continue
		}

		e, err := DecodeEntry(iter.Value())
		if err != nil {
			a.logger.Warnf("skipping entry %s: %v", id, err)
			continue
		}

		out = append(out, Summary{
			ID:         id,
			RecordType: string(e.Type),
			Created:    e.Time(),
			Keys:       bytes.Count(e.Body, []byte{'\n'}),
		})
	}
	return out, errors.Wrap(iter.Error(), "iterate archive")
}

// Close flushes and closes the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// ParseID parses the string form of an archive identifier.
func ParseID(s string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return ksuid.Nil, errors.Wrapf(ErrInvalidID, "%q", s)
	}
	return id, nil
}
