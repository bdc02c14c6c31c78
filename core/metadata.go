package core

import "encoding/json"

// Json is a minimal JSON-like value used as Metadata's value type. It holds
// whatever encoding/json would decode a scalar, array or object into.
type Json struct {
	Value any
}

func NewJson(v any) Json { return Json{Value: v} }

// Metadata is an ordered mapping from Name to Json. Iteration order is the
// insertion order, which keeps it deterministic across nodes that apply the
// same sequence of SetKeyValue instructions.
type Metadata struct {
	keys   []Name
	values map[Name]Json
}

// NewMetadata returns an empty, ready-to-use Metadata.
func NewMetadata() Metadata {
	return Metadata{values: make(map[Name]Json)}
}

// Clone returns a deep-enough copy: the key order slice and map are both
// copied so mutating the clone never affects the original.
func (m Metadata) Clone() Metadata {
	out := Metadata{
		keys:   append([]Name(nil), m.keys...),
		values: make(map[Name]Json, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// Get returns the value for key and whether it was present.
func (m Metadata) Get(key Name) (Json, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Insert sets key to value, appending key to the iteration order if it is
// new. Returns the previous value, if any.
func (m *Metadata) Insert(key Name, value Json) (Json, bool) {
	if m.values == nil {
		m.values = make(map[Name]Json)
	}
	prev, existed := m.values[key]
	if !existed {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return prev, existed
}

// Remove deletes key, returning its value and whether it was present.
func (m *Metadata) Remove(key Name) (Json, bool) {
	v, ok := m.values[key]
	if !ok {
		return Json{}, false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Len reports the number of entries.
func (m Metadata) Len() int { return len(m.keys) }

// Each calls fn for every entry in deterministic insertion order.
func (m Metadata) Each(fn func(key Name, value Json)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// MarshalJSON emits Metadata as an ordered array of {key, value} pairs
// rather than a JSON object, since a plain object would not preserve the
// insertion order Each relies on.
func (m Metadata) MarshalJSON() ([]byte, error) {
	type pair struct {
		Key   Name `json:"key"`
		Value any  `json:"value"`
	}
	pairs := make([]pair, 0, m.Len())
	m.Each(func(key Name, value Json) { pairs = append(pairs, pair{Key: key, Value: value.Value}) })
	return json.Marshal(pairs)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	var pairs []struct {
		Key   Name `json:"key"`
		Value any  `json:"value"`
	}
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	out := NewMetadata()
	for _, p := range pairs {
		out.Insert(p.Key, NewJson(p.Value))
	}
	*m = out
	return nil
}
