package value

import (
	"fmt"
	"iter"
	"reflect"
)

// Entry is a single key/value pair of a Dict.
type Entry struct {
	Key   Value
	Value Value
}

// Dict is an insertion-ordered mapping. Keys are usually Str, but any value
// is accepted so callers can express malformed keyword mappings.
type Dict struct {
	entries []Entry
	index   map[any]int
}

// NewDict builds a Dict from entries. Later duplicates replace earlier values
// while keeping the first insertion position.
func NewDict(entries ...Entry) *Dict {
	d := &Dict{}
	for _, e := range entries {
		d.Set(e.Key, e.Value)
	}

	return d
}

// Kw is shorthand for a string-keyed Entry.
func Kw(name string, v Value) Entry {
	return Entry{Key: Str(name), Value: v}
}

func (*Dict) TypeName() string { return "dict" }

func (d *Dict) Truth() bool { return d.Len() > 0 }

// Len returns the number of entries. A nil Dict is empty.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}

	return len(d.entries)
}

// Set inserts or replaces the value for key.
func (d *Dict) Set(key, v Value) {
	if d.index == nil {
		d.index = make(map[any]int)
	}

	k := hashKey(key)
	if i, ok := d.index[k]; ok {
		d.entries[i].Value = v
		return
	}

	d.index[k] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: key, Value: v})
}

// Get returns the value stored under the string key name.
func (d *Dict) Get(name string) (Value, bool) {
	return d.Lookup(Str(name))
}

// Lookup returns the value stored under key.
func (d *Dict) Lookup(key Value) (Value, bool) {
	if d == nil || d.index == nil {
		return nil, false
	}

	i, ok := d.index[hashKey(key)]
	if !ok {
		return nil, false
	}

	return d.entries[i].Value, true
}

// All iterates over the entries in insertion order.
func (d *Dict) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		if d == nil {
			return
		}

		for _, e := range d.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Value {
	if d == nil {
		return nil
	}

	keys := make([]Value, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}

	return keys
}

type typedKey struct {
	typ string
	key any
}

func hashKey(v Value) any {
	switch k := v.(type) {
	case Str, Int, Float, Bool, NoneType:
		return typedKey{typ: v.TypeName(), key: k}
	default:
		return typedKey{typ: Describe(v), key: fmtKey(v)}
	}
}

// fmtKey falls back to the printed form for values that cannot be map keys.
func fmtKey(v Value) any {
	if v == nil {
		return nil
	}

	if reflect.TypeOf(v).Comparable() {
		return v
	}

	return fmt.Sprint(v)
}
