package types

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Answers is the ordered answer context built key by key by the resolution
// engine. Once frozen it is read-only.
type Answers struct {
	values *orderedmap.OrderedMap[string, interface{}]
	frozen bool
}

// NewAnswers creates an empty answer context
func NewAnswers() *Answers {
	return &Answers{values: orderedmap.New[string, interface{}]()}
}

// Set inserts or replaces a key. Replacing keeps the original position.
func (a *Answers) Set(key string, value interface{}) error {
	if a.frozen {
		return fmt.Errorf("answers are frozen, cannot set %q", key)
	}
	a.values.Set(key, value)
	return nil
}

// Get returns the value stored for key
func (a *Answers) Get(key string) (interface{}, bool) {
	return a.values.Get(key)
}

// Len returns the number of answers
func (a *Answers) Len() int {
	return a.values.Len()
}

// Keys returns the keys in insertion order
func (a *Answers) Keys() []string {
	keys := make([]string, 0, a.values.Len())
	for pair := a.values.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Freeze makes the context read-only
func (a *Answers) Freeze() {
	a.frozen = true
}

// Frozen reports whether Freeze was called
func (a *Answers) Frozen() bool {
	return a.frozen
}

// Clone returns an unfrozen copy with the same order
func (a *Answers) Clone() *Answers {
	clone := NewAnswers()
	for pair := a.values.Oldest(); pair != nil; pair = pair.Next() {
		clone.values.Set(pair.Key, pair.Value)
	}
	return clone
}

// Map returns a plain map view of the answers, used as rendering context.
// The map is a copy; mutating it does not affect the answers.
func (a *Answers) Map() map[string]interface{} {
	if a == nil {
		return map[string]interface{}{}
	}
	m := make(map[string]interface{}, a.values.Len())
	for pair := a.values.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

// MarshalJSON encodes the answers as a JSON object in insertion order
func (a *Answers) MarshalJSON() ([]byte, error) {
	return a.values.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object keeping the key order of the input
func (a *Answers) UnmarshalJSON(data []byte) error {
	values := orderedmap.New[string, interface{}]()
	if err := json.Unmarshal(data, values); err != nil {
		return err
	}
	a.values = values
	return nil
}
