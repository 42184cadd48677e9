package codec

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/sarmeta/pkg/kwl"
	"github.com/ssargent/sarmeta/pkg/metrics"
)

// Warning kinds used in logs and metrics.
const (
	WarningMissingKeyword = "missing_keyword"
	WarningCountMismatch  = "count_mismatch"
)

// LoadReport is the outcome of loading one record from a keyword list.
type LoadReport struct {
	Record   string
	Prefix   string
	Warnings []error
}

// OK reports whether every field was found.
func (r *LoadReport) OK() bool {
	return len(r.Warnings) == 0
}

// Missing returns the keys that were absent or did not convert.
func (r *LoadReport) Missing() []string {
	var keys []string
	for _, w := range r.Warnings {
		var mk *MissingKeywordWarning
		if errors.As(w, &mk) {
			keys = append(keys, mk.Key)
		}
	}
	return keys
}

// Err summarizes the warnings as one error, or returns nil when there are
// none. The first warning stays reachable through errors.As.
func (r *LoadReport) Err() error {
	if r.OK() {
		return nil
	}
	return errors.Wrapf(r.Warnings[0], "load %s: %d keyword-list warnings", r.Record, len(r.Warnings))
}

// SaveState stores every field of rec in k under prefix.
func (c *RecordCodec) SaveState(k *kwl.Keywordlist, prefix string, rec Record) {
	rec.Layout(&stateSaver{kwl: k, prefix: prefix})
	c.metrics.RecordOperation(metrics.OpSave, rec.RecordName(), nil)
	c.logger.Debugf("saved %s under %q", rec.RecordName(), prefix)
}

// LoadState populates rec from k and reports whether every field was
// present. Missing fields are left at their zero value.
func (c *RecordCodec) LoadState(k *kwl.Keywordlist, prefix string, rec Record) bool {
	return c.LoadStateReport(k, prefix, rec).OK()
}

// LoadStateReport is LoadState returning the individual warnings.
func (c *RecordCodec) LoadStateReport(k *kwl.Keywordlist, prefix string, rec Record) *LoadReport {
	l := &stateLoader{
		codec:  c,
		kwl:    k,
		prefix: prefix,
		limit:  c.maxTableEntries,
		report: &LoadReport{Record: rec.RecordName(), Prefix: prefix},
	}
	rec.Layout(l)

	c.metrics.RecordOperation(metrics.OpLoad, rec.RecordName(), l.report.Err())
	if l.report.OK() {
		c.logger.Debugf("loaded %s from %q", rec.RecordName(), prefix)
	}
	return l.report
}

type stateSaver struct {
	kwl    *kwl.Keywordlist
	prefix string
}

func (s *stateSaver) add(name, value string) {
	s.kwl.Add(kwl.BuildKey(s.prefix, name), value)
}

func (s *stateSaver) Text(name string, _ int, v *string) { s.add(name, *v) }
func (s *stateSaver) Int8(name string, v *int8)          { s.add(name, strconv.FormatInt(int64(*v), 10)) }
func (s *stateSaver) Uint8(name string, v *uint8)        { s.add(name, strconv.FormatUint(uint64(*v), 10)) }
func (s *stateSaver) Int16(name string, v *int16)        { s.add(name, strconv.FormatInt(int64(*v), 10)) }
func (s *stateSaver) Uint16(name string, v *uint16)      { s.add(name, strconv.FormatUint(uint64(*v), 10)) }
func (s *stateSaver) Int32(name string, v *int32)        { s.add(name, strconv.FormatInt(int64(*v), 10)) }
func (s *stateSaver) Uint32(name string, v *uint32)      { s.add(name, strconv.FormatUint(uint64(*v), 10)) }
func (s *stateSaver) Int64(name string, v *int64)        { s.add(name, strconv.FormatInt(*v, 10)) }
func (s *stateSaver) Uint64(name string, v *uint64)      { s.add(name, strconv.FormatUint(*v, 10)) }
func (s *stateSaver) Float32(name string, v *float32) {
	s.add(name, strconv.FormatFloat(float64(*v), 'g', -1, 32))
}
func (s *stateSaver) Float64(name string, v *float64) {
	s.add(name, strconv.FormatFloat(*v, 'g', -1, 64))
}
func (s *stateSaver) NumericInt(name string, _ int, v *int64) {
	s.add(name, strconv.FormatInt(*v, 10))
}
func (s *stateSaver) NumericFloat(name string, _ int, v *float64) {
	s.add(name, strconv.FormatFloat(*v, 'g', -1, 64))
}

// Reserved bytes carry no metadata and are not persisted.
func (s *stateSaver) Reserved(string, []byte) {}

func (s *stateSaver) Record(name string, r Record) {
	saved := s.prefix
	s.prefix = kwl.BuildKey(saved, name)
	r.Layout(s)
	s.prefix = saved
}

func (s *stateSaver) Table(name string, _ int, t Table) {
	saved := s.prefix
	for i := 0; i < t.Len(); i++ {
		s.prefix = kwl.BuildIndexedKey(saved, name, i)
		t.At(i).Layout(s)
	}
	s.prefix = saved
}

// stateLoader looks every field up independently and keeps going after a
// miss, accumulating warnings in report.
type stateLoader struct {
	codec  *RecordCodec
	kwl    *kwl.Keywordlist
	prefix string
	limit  int
	report *LoadReport
}

func (l *stateLoader) key(name string) string {
	return kwl.BuildKey(l.prefix, name)
}

func (l *stateLoader) missing(name string) {
	key := l.key(name)
	l.report.Warnings = append(l.report.Warnings, &MissingKeywordWarning{Key: key})
	l.codec.logger.Warnf("%s: keyword %s not found", l.report.Record, key)
	l.codec.metrics.KeywordWarning(WarningMissingKeyword)
}

func loadField[T any](l *stateLoader, name string, v *T, find func(*kwl.Keywordlist, string) (T, bool)) {
	x, ok := find(l.kwl, l.key(name))
	if !ok {
		var zero T
		*v = zero
		l.missing(name)
		return
	}
	*v = x
}

func (l *stateLoader) Text(name string, _ int, v *string) { loadField(l, name, v, kwl.FindString) }
func (l *stateLoader) Int8(name string, v *int8)          { loadField(l, name, v, kwl.FindInt8) }
func (l *stateLoader) Uint8(name string, v *uint8)        { loadField(l, name, v, kwl.FindUint8) }
func (l *stateLoader) Int16(name string, v *int16)        { loadField(l, name, v, kwl.FindInt16) }
func (l *stateLoader) Uint16(name string, v *uint16)      { loadField(l, name, v, kwl.FindUint16) }
func (l *stateLoader) Int32(name string, v *int32)        { loadField(l, name, v, kwl.FindInt32) }
func (l *stateLoader) Uint32(name string, v *uint32)      { loadField(l, name, v, kwl.FindUint32) }
func (l *stateLoader) Int64(name string, v *int64)        { loadField(l, name, v, kwl.FindInt64) }
func (l *stateLoader) Uint64(name string, v *uint64)      { loadField(l, name, v, kwl.FindUint64) }
func (l *stateLoader) Float32(name string, v *float32)    { loadField(l, name, v, kwl.FindFloat32) }
func (l *stateLoader) Float64(name string, v *float64)    { loadField(l, name, v, kwl.FindFloat64) }

func (l *stateLoader) NumericInt(name string, _ int, v *int64) {
	loadField(l, name, v, kwl.FindInt64)
}

func (l *stateLoader) NumericFloat(name string, _ int, v *float64) {
	loadField(l, name, v, kwl.FindFloat64)
}

func (l *stateLoader) Reserved(_ string, v []byte) {
	clear(v)
}

func (l *stateLoader) Record(name string, r Record) {
	saved := l.prefix
	l.prefix = kwl.BuildKey(saved, name)
	r.Layout(l)
	l.prefix = saved
}

// Table looks up name[0] .. name[count-1] and keeps the entries that have at
// least one key. A shortfall is a warning, not an error.
func (l *stateLoader) Table(name string, count int, t Table) {
	n := count
	if n < 0 {
		n = 0
	}
	if n > l.limit {
		n = l.limit
	}

	t.Reset(n)
	saved := l.prefix
	present := l.kwl.Indices(saved, name)
	found := 0
	for i := 0; i < n; i++ {
		if _, ok := present[i]; !ok {
			continue
		}
		l.prefix = kwl.BuildIndexedKey(saved, name, i)
		t.At(found).Layout(l)
		found++
	}
	l.prefix = saved
	t.Truncate(found)

	if found != count {
		key := kwl.BuildKey(saved, name)
		l.report.Warnings = append(l.report.Warnings, &CountMismatchWarning{Key: key, Declared: count, Found: found})
		l.codec.logger.Warnf("%s: %s declares %d entries but %d were found", l.report.Record, key, count, found)
		l.codec.metrics.KeywordWarning(WarningCountMismatch)
	}
}
