// Package kwl implements the OSSIM keyword list: a flat, string-valued map
// whose keys are dotted paths such as "sceneCoord.sceneCornerCoord[2].lat".
//
// A Keywordlist is not safe for concurrent mutation. Like the records it
// serializes, it is owned by a single caller at a time.
package kwl

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Keywordlist is a flat key -> value mapping.
type Keywordlist struct {
	entries map[string]string
}

// New creates an empty keyword list.
func New() *Keywordlist {
	return &Keywordlist{entries: make(map[string]string)}
}

// FromMap creates a keyword list holding a copy of m.
func FromMap(m map[string]string) *Keywordlist {
	k := New()
	for key, value := range m {
		k.entries[key] = value
	}
	return k
}

// Add sets key to value, replacing any previous value.
func (k *Keywordlist) Add(key, value string) {
	if key == "" {
		return
	}
	k.entries[key] = value
}

// AddIfAbsent sets key to value only if key is not already present. It
// reports whether the value was stored.
func (k *Keywordlist) AddIfAbsent(key, value string) bool {
	if key == "" {
		return false
	}
	if _, ok := k.entries[key]; ok {
		return false
	}
	k.entries[key] = value
	return true
}

// AddPrefixed sets BuildKey(prefix, key) to value.
func (k *Keywordlist) AddPrefixed(prefix, key, value string) {
	k.Add(BuildKey(prefix, key), value)
}

// Find returns the value stored under key.
func (k *Keywordlist) Find(key string) (string, bool) {
	v, ok := k.entries[key]
	return v, ok
}

// FindPrefixed returns the value stored under BuildKey(prefix, key).
func (k *Keywordlist) FindPrefixed(prefix, key string) (string, bool) {
	return k.Find(BuildKey(prefix, key))
}

// Remove deletes key if present.
func (k *Keywordlist) Remove(key string) {
	delete(k.entries, key)
}

// Clear removes every entry.
func (k *Keywordlist) Clear() {
	k.entries = make(map[string]string)
}

// Len returns the number of entries.
func (k *Keywordlist) Len() int {
	return len(k.entries)
}

// Keys returns all keys in sorted order.
func (k *Keywordlist) Keys() []string {
	keys := make([]string, 0, len(k.entries))
	for key := range k.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// HasPrefix reports whether any key starts with prefix.
func (k *Keywordlist) HasPrefix(prefix string) bool {
	for key := range k.entries {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// NumberOf counts the keys that contain substr.
func (k *Keywordlist) NumberOf(substr string) int {
	count := 0
	for key := range k.entries {
		if strings.Contains(key, substr) {
			count++
		}
	}
	return count
}

// AddList copies every entry of src. Existing keys are replaced only when
// overwrite is set.
func (k *Keywordlist) AddList(src *Keywordlist, overwrite bool) {
	for key, value := range src.entries {
		if overwrite {
			k.Add(key, value)
		} else {
			k.AddIfAbsent(key, value)
		}
	}
}

// Extract returns the entries whose key starts with prefix. When strip is
// set the prefix and the separating dot are removed from the copied keys.
func (k *Keywordlist) Extract(prefix string, strip bool) *Keywordlist {
	out := New()
	for key, value := range k.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		newKey := key
		if strip {
			newKey = strings.TrimPrefix(strings.TrimPrefix(key, prefix), Separator)
		}
		out.Add(newKey, value)
	}
	return out
}

// AddPrefixToAll rewrites every key as BuildKey(prefix, key).
func (k *Keywordlist) AddPrefixToAll(prefix string) {
	if prefix == "" {
		return
	}
	entries := make(map[string]string, len(k.entries))
	for key, value := range k.entries {
		entries[BuildKey(prefix, key)] = value
	}
	k.entries = entries
}

// FindAllKeysThatMatch returns, sorted, the keys matching the regular
// expression expr.
func (k *Keywordlist) FindAllKeysThatMatch(expr string) ([]string, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "compile key pattern %q", expr)
	}

	var keys []string
	for key := range k.entries {
		if re.MatchString(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Map returns a copy of the entries.
func (k *Keywordlist) Map() map[string]string {
	out := make(map[string]string, len(k.entries))
	for key, value := range k.entries {
		out[key] = value
	}
	return out
}

// Equal reports whether both lists hold exactly the same entries.
func (k *Keywordlist) Equal(other *Keywordlist) bool {
	if k.Len() != other.Len() {
		return false
	}
	for key, value := range k.entries {
		if v, ok := other.entries[key]; !ok || v != value {
			return false
		}
	}
	return true
}
