package attr

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Bag maps field names to values. Key order is irrelevant.
type Bag map[string]Value

// Get returns the value stored under key.
func (b Bag) Get(key string) (Value, bool) {
	v, ok := b[key]
	return v, ok
}

// Keys returns the keys in sorted order.
func (b Bag) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of b.
func (b Bag) Clone() Bag {
	if b == nil {
		return nil
	}
	out := make(Bag, len(b))
	for k, v := range b {
		out[k] = v.clone()
	}
	return out
}

// Equal reports whether both bags hold the same keys with equal values.
// A nil bag equals an empty one.
func (b Bag) Equal(o Bag) bool {
	if len(b) != len(o) {
		return false
	}
	for k, v := range b {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Merge returns a new bag with overlay applied on top of b. Nested maps
// present on both sides merge recursively, a null in overlay removes the key,
// and any other overlay value replaces the base value.
func (b Bag) Merge(overlay Bag) Bag {
	out := b.Clone()
	if out == nil {
		out = Bag{}
	}
	for k, v := range overlay {
		if v.IsNull() {
			delete(out, k)
			continue
		}
		base, ok := out[k]
		if ok && base.kind == KindMap && v.kind == KindMap {
			out[k] = Map(base.m.Merge(v.m))
			continue
		}
		out[k] = v.clone()
	}
	return out
}

// Value implements driver.Valuer. Bags are stored as JSON text.
func (b Bag) Value() (driver.Value, error) {
	if b == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (b *Bag) Scan(src any) error {
	var raw []byte
	switch t := src.(type) {
	case nil:
		*b = Bag{}
		return nil
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		return fmt.Errorf("attr: cannot scan %T into Bag", src)
	}
	out := Bag{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("attr: scan bag: %w", err)
	}
	if out == nil {
		out = Bag{}
	}
	*b = out
	return nil
}

// GormDataType tells gorm which column type to use for bags.
func (Bag) GormDataType() string {
	return "json"
}
