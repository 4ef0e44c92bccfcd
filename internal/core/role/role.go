// Package role provides the caller role model and the process-wide role store.
// The dashboard distinguishes exactly two roles: admin (full mutation rights)
// and user (read-only).
package role

import (
	"fmt"
	"sync"
)

// Role identifies the capability level of the current caller.
type Role string

const (
	// Admin may edit, delete and hide inventory rows.
	Admin Role = "admin"

	// User has read-only access to the dashboard.
	User Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == Admin || r == User
}

// Parse converts a string into a Role.
func Parse(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// CanMutate reports whether the role is allowed to invoke mutating
// operations. Enforcement happens at the call site (HTTP layer), not
// inside the reconciler, so both layers stay independently testable.
func CanMutate(r Role) bool {
	return r == Admin
}

// Store holds the current role for the process. It is the Go rendition of
// the client-side role flag: a single mutable value with a toggle, observed
// by everything else. Change subscribers let dependents react to role
// transitions (closing an open edit draft when admin rights are lost).
type Store struct {
	mu      sync.RWMutex
	current Role
	subs    []func(Role)
}

// NewStore creates a Store with the default role (admin).
func NewStore() *Store {
	return &Store{current: Admin}
}

// Current returns the current role.
func (s *Store) Current() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Toggle flips admin <-> user and returns the new role.
func (s *Store) Toggle() Role {
	s.mu.Lock()
	next := User
	if s.current == User {
		next = Admin
	}
	s.current = next
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Set replaces the current role.
func (s *Store) Set(r Role) error {
	if !r.Valid() {
		return fmt.Errorf("unknown role %q", r)
	}
	s.mu.Lock()
	if s.current == r {
		s.mu.Unlock()
		return nil
	}
	s.current = r
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(r)
	}
	return nil
}

// OnChange registers a subscriber invoked after every role transition.
// Subscribers run outside the store lock.
func (s *Store) OnChange(fn func(Role)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
