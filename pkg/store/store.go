// Package store models the normalized client-side object graph the form
// engine operates on: a flat mapping from Ident to Entity where relations are
// expressed as Idents (to-one) or slices of Idents (to-many).
//
// Every helper is copy-on-write. Nothing in this package mutates a Store or
// Entity it was handed; callers hold the single canonical reference and swap
// in the returned value.
package store

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Ident names one entity in the store: the table it lives in plus its primary
// key. Idents are plain comparable values and safe to use as map keys.
type Ident struct {
	Table string
	Key   any
}

// String renders the ident as table/key for error messages and logs.
func (id Ident) String() string {
	return fmt.Sprintf("%s/%v", id.Table, id.Key)
}

// Nil reports whether the trailing key component is absent.
func (id Ident) Nil() bool { return id.Key == nil }

// Temp reports whether the ident's key is a not-yet-persisted TempKey.
func (id Ident) Temp() bool {
	_, ok := id.Key.(TempKey)
	return ok
}

// TempKey is a placeholder primary key for entities that have not been
// persisted yet. A remote persistence layer is expected to remap temp keys to
// real ones after a successful write.
type TempKey string

var (
	tempMu      sync.Mutex
	tempEntropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewTempKey returns a fresh ULID-backed temporary key. Keys generated within
// one process are monotonically ordered.
func NewTempKey() TempKey {
	tempMu.Lock()
	defer tempMu.Unlock()
	return TempKey(ulid.MustNew(ulid.Timestamp(time.Now()), tempEntropy).String())
}

// Entity is one record: field name to value. Values are JSON-compatible
// scalars, Idents, or slices of Idents.
type Entity map[string]any

// Clone returns a shallow copy of the entity.
func (e Entity) Clone() Entity {
	if e == nil {
		return nil
	}
	out := make(Entity, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// With returns a copy of the entity with one property set.
func (e Entity) With(name string, value any) Entity {
	out := e.Clone()
	if out == nil {
		out = Entity{}
	}
	out[name] = value
	return out
}

// Store maps Ident to Entity.
type Store map[Ident]Entity

// Entity looks up one entity by ident.
func (s Store) Entity(id Ident) (Entity, bool) {
	e, ok := s[id]
	return e, ok
}

// Clone returns a shallow copy of the store. Entities are shared; use
// Entity.With / Entity.Clone before modifying one.
func (s Store) Clone() Store {
	out := make(Store, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// With returns a copy of the store with the entity at id replaced.
func (s Store) With(id Ident, e Entity) Store {
	out := s.Clone()
	out[id] = e
	return out
}

// Without returns a copy of the store with the entity at id removed.
func (s Store) Without(id Ident) Store {
	out := s.Clone()
	delete(out, id)
	return out
}

// Refs normalizes a relation value into a slice of idents. It accepts a bare
// Ident, []Ident, or []any whose members are Idents. The second return is
// false when the value does not look like a relation at all.
func Refs(v any) ([]Ident, bool) {
	switch rel := v.(type) {
	case Ident:
		return []Ident{rel}, true
	case []Ident:
		return rel, true
	case []any:
		out := make([]Ident, 0, len(rel))
		for _, item := range rel {
			id, ok := item.(Ident)
			if !ok {
				return nil, false
			}
			out = append(out, id)
		}
		return out, true
	default:
		return nil, false
	}
}
