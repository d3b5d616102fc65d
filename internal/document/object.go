package document

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/goccy/go-yaml"
)

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that remembers the order in which members were added.
// Setting an existing key replaces its value in place, so the last duplicate wins
// while the first occurrence keeps its position.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject builds an Object from members in order.
func NewObject(members ...Member) *Object {
	o := &Object{
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Set adds or replaces a member.
func (o *Object) Set(key string, value any) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Keys returns member names in order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for k := range o.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates members in order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// MarshalJSON writes members in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalYAML renders the object as an ordered mapping.
func (o *Object) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, o.Len())
	for k, v := range o.All() {
		out = append(out, yaml.MapItem{Key: k, Value: v})
	}
	return out, nil
}
