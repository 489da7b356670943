// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package strings

import "sync"

// Set holds unique strings in the order they were first added.
type Set struct {
	sync.RWMutex

	order []string
	data  map[string]struct{}
}

// NewSet returns an initialized Set.
//
// It returns a pointer to support use as a map's value type and avoid the "cannot call pointer method" error.
func NewSet() *Set {
	return &Set{
		data: make(map[string]struct{}),
	}
}

func (s *Set) Add(el string) bool {
	s.Lock()
	defer s.Unlock()

	return s.add(el)
}

func (s *Set) add(el string) bool {
	if _, ok := s.data[el]; ok {
		return false
	}

	s.data[el] = struct{}{}
	s.order = append(s.order, el)

	return true
}

func (s *Set) AddSlice(slices ...[]string) *Set {
	s.Lock()
	defer s.Unlock()

	for _, slice := range slices {
		for _, el := range slice {
			s.add(el)
		}
	}

	return s
}

func (s *Set) Contains(el string) bool {
	s.RLock()
	defer s.RUnlock()

	_, ok := s.data[el]
	return ok
}

func (s *Set) Len() int {
	s.RLock()
	defer s.RUnlock()

	return len(s.order)
}

// Slice returns the elements in insertion order.
func (s *Set) Slice() []string {
	s.RLock()
	defer s.RUnlock()

	return Copy(s.order)
}

func (s *Set) SortedSlice() []string {
	// Do not lock -- Slice locks internally.

	all := s.Slice()
	SortStable(all)
	return all
}

// Equals reports whether both sets hold the same elements, regardless of order.
func (s *Set) Equals(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}

	otherSlice := other.SortedSlice()
	for n, v := range s.SortedSlice() {
		if v != otherSlice[n] {
			return false
		}
	}

	return true
}
