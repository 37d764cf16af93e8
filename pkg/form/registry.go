package form

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// ValidatorFunc decides whether a field value is acceptable. Args carry the
// validator arguments recorded on the field declaration.
type ValidatorFunc func(value any, args map[string]any) bool

// Registry is an open mapping from validator identifier to predicate,
// populated at composition time. A field referencing an unregistered
// validator is never valid: silently passing unvalidated input is unsafe.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]ValidatorFunc
}

// NewRegistry creates an empty validator registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]ValidatorFunc)}
}

// Register adds a validator by id. Duplicate ids return an error.
func (r *Registry) Register(id string, fn ValidatorFunc) error {
	if id == "" {
		return fmt.Errorf("form: validator id is required")
	}
	if fn == nil {
		return fmt.Errorf("form: validator %q: function is required", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.validators[id]; exists {
		return fmt.Errorf("form: validator %q already registered", id)
	}
	r.validators[id] = fn
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(id string, fn ValidatorFunc) {
	if err := r.Register(id, fn); err != nil {
		panic(err)
	}
}

// Get retrieves a validator by id.
func (r *Registry) Get(id string) (ValidatorFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.validators[id]
	if !ok {
		return nil, fmt.Errorf("form: validator %q not registered", id)
	}
	return fn, nil
}

// Has reports whether a validator is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.validators[id]
	return ok
}

// List returns the sorted registered validator ids.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.validators))
	for id := range r.validators {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRegistry returns a registry pre-populated with the built-in
// validators: "words" (min/max word count), "in-range" (numeric bounds,
// inclusive) and "matches" (full regexp match).
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("words", validateWords)
	r.MustRegister("in-range", validateInRange)
	r.MustRegister("matches", validateMatches)
	return r
}

func validateWords(value any, args map[string]any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	count := len(strings.Fields(s))
	if min, ok := argNumber(args, "min"); ok && float64(count) < min {
		return false
	}
	if max, ok := argNumber(args, "max"); ok && float64(count) > max {
		return false
	}
	return count > 0
}

func validateInRange(value any, args map[string]any) bool {
	n, ok := asNumber(value)
	if !ok {
		return false
	}
	if min, ok := argNumber(args, "min"); ok && n < min {
		return false
	}
	if max, ok := argNumber(args, "max"); ok && n > max {
		return false
	}
	return true
}

func validateMatches(value any, args map[string]any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	pattern, _ := args["pattern"].(string)
	if pattern == "" {
		return false
	}
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^(?:" + pattern + ")$"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func argNumber(args map[string]any, key string) (float64, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	return asNumber(v)
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
