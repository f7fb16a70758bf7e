package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dolthub/swiss"
)

// Dict is a mapping from Str keys to Value, backed by a swiss-table hash
// map. Like the reference implementation's Map value, a Dict has reference
// semantics: Clone does not deep-copy it.
type Dict struct {
	m *swiss.Map[string, Value]
}

func (*Dict) sealed()      {}
func (*Dict) Type() string { return "dict" }

// NewDict returns an empty Dict with initial capacity for at least size
// entries.
func NewDict(size int) *Dict {
	return &Dict{m: swiss.NewMap[string, Value](uint32(size))}
}

// Get returns the value bound to key and whether it was present.
func (d *Dict) Get(key string) (Value, bool) {
	return d.m.Get(key)
}

// Set binds key to v, overwriting any previous binding.
func (d *Dict) Set(key string, v Value) {
	d.m.Put(key, v)
}

// Delete removes key, returning whether it was present.
func (d *Dict) Delete(key string) bool {
	return d.m.Delete(key)
}

// Len returns the number of entries.
func (d *Dict) Len() int { return d.m.Count() }

// Keys returns the dict's keys in sorted order, for deterministic display
// and iteration.
func (d *Dict) Keys() []string {
	keys := make([]string, 0, d.m.Count())
	d.m.Iter(func(k string, _ Value) bool {
		keys = append(keys, k)
		return false
	})
	sort.Strings(keys)
	return keys
}

func (d *Dict) String() string {
	keys := d.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		v, _ := d.Get(k)
		parts[i] = fmt.Sprintf("%q: %s", k, v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
