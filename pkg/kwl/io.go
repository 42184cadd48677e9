package kwl

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Delimiter separates a key from its value on a line.
const Delimiter = ':'

// ErrBinaryContent is returned by Parse when the input holds a DEL byte,
// which means it is not a keyword list at all. WriteTo refuses to emit one.
var ErrBinaryContent = errors.New("keyword list contains binary content")

const del = 0x7f

// Parse reads a keyword list in "key: value" line format.
//
// Control characters and bytes at or above 0x80 are dropped, the key is everything before the first
// delimiter and both key and value are trimmed. Lines without a delimiter
// and lines whose key begins with "//" are ignored. Later duplicates do not
// replace earlier ones.
func Parse(r io.Reader) (*Keywordlist, error) {
	k := New()
	br := bufio.NewReader(r)

	var line strings.Builder
	lineNo := 1
	for {
		c, err := br.ReadByte()
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "read keyword list")
		}
		if err == io.EOF || c == '\n' {
			k.addLine(line.String())
			line.Reset()
			if err == io.EOF {
				return k, nil
			}
			lineNo++
			continue
		}
		if c == del {
			return nil, errors.Wrapf(ErrBinaryContent, "byte 0x%02x on line %d", c, lineNo)
		}
		if c >= 0x20 && c < 0x80 {
			line.WriteByte(c)
		}
	}
}

func (k *Keywordlist) addLine(line string) {
	if line == "" {
		return
	}
	pos := strings.IndexByte(line, Delimiter)
	if pos < 0 {
		return
	}
	key := strings.TrimSpace(line[:pos])
	if key == "" || strings.HasPrefix(key, "//") {
		return
	}
	k.AddIfAbsent(key, strings.TrimSpace(line[pos+1:]))
}

// ParseFile reads a keyword list from path.
func ParseFile(path string) (*Keywordlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open keyword list %s", path)
	}
	defer f.Close()

	k, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse keyword list %s", path)
	}
	return k, nil
}

// WriteTo writes the list as sorted "key: value" lines. Nothing is written
// when a key or value holds a byte that Parse would reject.
func (k *Keywordlist) WriteTo(w io.Writer) (int64, error) {
	keys := k.Keys()
	for _, key := range keys {
		if strings.IndexByte(key, del) >= 0 || strings.IndexByte(k.entries[key], del) >= 0 {
			return 0, errors.Wrapf(ErrBinaryContent, "key %q", key)
		}
	}

	bw := bufio.NewWriter(w)
	var total int64
	for _, key := range keys {
		n, err := bw.WriteString(key + string(Delimiter) + " " + k.entries[key] + "\n")
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, "write keyword list")
		}
	}
	if err := bw.Flush(); err != nil {
		return total, errors.Wrap(err, "flush keyword list")
	}
	return total, nil
}

// String renders the list in its text format.
func (k *Keywordlist) String() string {
	var sb strings.Builder
	_, _ = k.WriteTo(&sb)
	return sb.String()
}

// WriteFile writes the list to path, creating parent directories.
func (k *Keywordlist) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return errors.Wrap(err, "create keyword list directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, "create keyword list %s", path)
	}

	if _, err := k.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
