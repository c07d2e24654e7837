package vars

import "fmt"

// Store holds the variables of one shell session. Names are unique across
// all kinds.
//
// Store isn't safe for concurrent use; a shell handles one line at a time.
type Store struct {
	byName map[string]*Variable
	// order holds the variables in insertion order for listing.
	order []*Variable
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byName: make(map[string]*Variable)}
}

// Add inserts v, failing with ErrDuplicateName if its name is taken. A failed
// Add leaves the store unchanged.
func (s *Store) Add(v *Variable) error {
	if _, ok := s.byName[v.name]; ok {
		return newError("add", v.name, ErrDuplicateName)
	}
	if v.owner != nil {
		return newError("add", v.name, fmt.Errorf("%w in another store", ErrDuplicateName))
	}

	v.owner = s
	s.byName[v.name] = v
	s.order = append(s.order, v)
	return nil
}

// Find looks up a variable by name.
func (s *Store) Find(name string) (*Variable, bool) {
	v, ok := s.byName[name]
	return v, ok
}

// Lookup returns the text of the named variable. It reports false if there's
// no such variable or it can't produce a value.
func (s *Store) Lookup(name string) (string, bool) {
	v, ok := s.Find(name)
	if !ok {
		return "", false
	}
	text, err := v.Text()
	if err != nil {
		return "", false
	}
	return text, true
}

// Remove deletes v from the store. It's a no-op if v isn't in the store.
// Operation variables derived from v report ErrNotFound afterwards.
func (s *Store) Remove(v *Variable) {
	if s.byName[v.name] != v {
		return
	}

	delete(s.byName, v.name)
	for i, candidate := range s.order {
		if candidate == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	v.owner = nil
}

// RemoveName deletes the named variable.
func (s *Store) RemoveName(name string) error {
	v, ok := s.Find(name)
	if !ok {
		return newError("remove", name, ErrNotFound)
	}
	s.Remove(v)
	return nil
}

// All returns a snapshot of the variables in insertion order.
func (s *Store) All() []*Variable {
	out := make([]*Variable, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of variables.
func (s *Store) Len() int {
	return len(s.order)
}

// Clear removes all variables.
func (s *Store) Clear() {
	for _, v := range s.order {
		v.owner = nil
	}
	s.byName = make(map[string]*Variable)
	s.order = nil
}
