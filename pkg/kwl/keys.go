package kwl

import (
	"strconv"
	"strings"
)

// Separator joins the components of a dotted key.
const Separator = "."

// BuildKey joins prefix and field with a dot. An empty prefix yields the
// bare field name so top-level records need no special casing.
func BuildKey(prefix, field string) string {
	if prefix == "" {
		return field
	}
	if field == "" {
		return prefix
	}
	return prefix + Separator + field
}

// IndexedName returns field[index].
func IndexedName(field string, index int) string {
	return field + "[" + strconv.Itoa(index) + "]"
}

// BuildIndexedKey returns the prefix of the index-th entry of an array
// field, e.g. BuildIndexedKey("sceneCoord", "sceneCornerCoord", 2) is
// "sceneCoord.sceneCornerCoord[2]".
func BuildIndexedKey(prefix, field string, index int) string {
	return BuildKey(prefix, IndexedName(field, index))
}

// Indices returns, in one pass over the list, the indices i for which some
// key lies under BuildIndexedKey(prefix, field, i), that is starts with it
// followed by the separator.
func (k *Keywordlist) Indices(prefix, field string) map[int]struct{} {
	base := BuildKey(prefix, field) + "["
	found := make(map[int]struct{})
	for key := range k.entries {
		if !strings.HasPrefix(key, base) {
			continue
		}
		rest := key[len(base):]
		end := strings.IndexByte(rest, ']')
		if end <= 0 || !strings.HasPrefix(rest[end+1:], Separator) {
			continue
		}
		i, err := strconv.Atoi(rest[:end])
		if err != nil || i < 0 || strconv.Itoa(i) != rest[:end] {
			continue
		}
		found[i] = struct{}{}
	}
	return found
}
