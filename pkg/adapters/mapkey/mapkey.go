// Package mapkey provides a StateAccessor that tracks a subject's state under
// a key of a map[string]any. Two accessors with different keys can track
// independent state machines on the same subject.
package mapkey

import (
	"fmt"

	"github.com/aretw0/cambium/pkg/domain"
)

// DefaultKey is used when no key is configured.
const DefaultKey = "state"

// Accessor reads and writes state on a map[string]any subject.
type Accessor struct {
	key string
}

// New creates an accessor for the given key. An empty key means DefaultKey.
func New(key string) Accessor {
	if key == "" {
		key = DefaultKey
	}
	return Accessor{key: key}
}

// Key returns the map key this accessor tracks.
func (a Accessor) Key() string { return a.key }

// GetState returns the value stored under the key, or the subject itself when
// it is not a map, so the dispatcher can report the bad value.
func (a Accessor) GetState(subject any) any {
	m, ok := subject.(map[string]any)
	if !ok {
		return subject
	}
	return m[a.key]
}

// SetState stores the new state under the key.
func (a Accessor) SetState(subject any, previous, next *domain.State) error {
	m, ok := subject.(map[string]any)
	if !ok {
		return fmt.Errorf("subject %v is not a map[string]any", subject)
	}
	m[a.key] = next
	return nil
}
