package goap

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind is the tag of a fact value.
type Kind uint8

const (
	// KindBool tags a boolean fact
	KindBool Kind = iota + 1

	// KindNumber tags an unsigned integer fact
	KindNumber

	// KindString tags a string fact
	KindString
)

// String returns the lower-case tag name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single tagged fact value. The zero Value has no kind and never
// compares equal to a constructed one.
type Value struct {
	kind Kind
	b    bool
	n    uint32
	s    string
}

// BoolValue returns a bool-tagged value.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// NumberValue returns a number-tagged value.
func NumberValue(v uint32) Value { return Value{kind: KindNumber, n: v} }

// StringValue returns a string-tagged value.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean and true when the value is bool-tagged.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number and true when the value is number-tagged.
func (v Value) AsNumber() (uint32, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string and true when the value is string-tagged.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatUint(uint64(v.n), 10)
	case KindString:
		return strconv.Quote(v.s)
	default:
		return "<nil>"
	}
}

// Facts is the fact store (blackboard): an unordered map of named facts.
//
// A nil *Facts reads as an empty store. Facts attached to a closed search node
// must not be mutated.
type Facts struct {
	m map[string]Value
}

// NewFacts returns an empty fact store.
func NewFacts() *Facts {
	return &Facts{m: make(map[string]Value)}
}

func (f *Facts) set(key string, v Value) {
	if f.m == nil {
		f.m = make(map[string]Value)
	}
	f.m[key] = v
}

// SetBool stores a boolean fact, replacing any previous value for key.
func (f *Facts) SetBool(key string, v bool) { f.set(key, BoolValue(v)) }

// SetNumber stores a number fact, replacing any previous value for key.
func (f *Facts) SetNumber(key string, v uint32) { f.set(key, NumberValue(v)) }

// SetString stores a string fact, replacing any previous value for key.
func (f *Facts) SetString(key string, v string) { f.set(key, StringValue(v)) }

// Get returns the raw value stored under key.
func (f *Facts) Get(key string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.m[key]
	return v, ok
}

// Bool returns the boolean stored under key. A missing key or a value with
// another tag reports false.
func (f *Facts) Bool(key string) (bool, bool) {
	v, ok := f.Get(key)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// Number returns the number stored under key.
func (f *Facts) Number(key string) (uint32, bool) {
	v, ok := f.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}

// Text returns the string stored under key.
func (f *Facts) Text(key string) (string, bool) {
	v, ok := f.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Remove deletes key and returns the value it held.
func (f *Facts) Remove(key string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.m[key]
	if ok {
		delete(f.m, key)
	}
	return v, ok
}

// Len returns the number of facts.
func (f *Facts) Len() int {
	if f == nil {
		return 0
	}
	return len(f.m)
}

// Keys returns the fact names in sorted order.
func (f *Facts) Keys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, 0, len(f.m))
	for k := range f.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy. Values are immutable so a shallow map
// copy is enough.
func (f *Facts) Clone() *Facts {
	out := &Facts{m: make(map[string]Value, f.Len())}
	if f == nil {
		return out
	}
	for k, v := range f.m {
		out.m[k] = v
	}
	return out
}

// Equal reports whether both stores hold exactly the same keys with equal values.
// Insertion order never matters.
func (f *Facts) Equal(other *Facts) bool {
	if f.Len() != other.Len() {
		return false
	}
	if f.Len() == 0 {
		return true
	}
	// equal sizes make the one-way check cover the reverse direction too
	for k, v := range f.m {
		ov, ok := other.m[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal: per-entry hashes are combined by
// wrapping addition, so iteration order has no effect.
func (f *Facts) Hash() uint64 {
	if f.Len() == 0 {
		return 0
	}
	var sum uint64
	d := xxhash.New()
	var buf [5]byte
	for k, v := range f.m {
		d.Reset()
		_, _ = d.WriteString(k)
		buf[0] = byte(v.kind)
		switch v.kind {
		case KindBool:
			if v.b {
				buf[1] = 1
			} else {
				buf[1] = 0
			}
			_, _ = d.Write(buf[:2])
		case KindNumber:
			binary.LittleEndian.PutUint32(buf[1:], v.n)
			_, _ = d.Write(buf[:5])
		case KindString:
			_, _ = d.Write(buf[:1])
			_, _ = d.WriteString(v.s)
		}
		sum += d.Sum64()
	}
	return sum
}

// String renders the facts as "{a=true, b=3}" with sorted keys.
func (f *Facts) String() string {
	keys := f.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, f.m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON encodes the facts as a flat JSON object.
func (f *Facts) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, f.Len())
	if f != nil {
		for k, v := range f.m {
			switch v.kind {
			case KindBool:
				out[k] = v.b
			case KindNumber:
				out[k] = v.n
			case KindString:
				out[k] = v.s
			}
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a flat JSON object. Numbers must be whole and fit in a
// uint32.
func (f *Facts) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.m = make(map[string]Value, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case bool:
			f.m[k] = BoolValue(tv)
		case string:
			f.m[k] = StringValue(tv)
		case float64:
			if tv < 0 || tv > math.MaxUint32 || tv != math.Trunc(tv) {
				return fmt.Errorf("fact %q: %v is not a uint32", k, tv)
			}
			f.m[k] = NumberValue(uint32(tv))
		default:
			return fmt.Errorf("fact %q: unsupported JSON type %T", k, v)
		}
	}
	return nil
}
