// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// Struct is a scalar record of named fields. Fields keep the order in
// which they were first assigned.
type Struct struct {
	fields map[string]Value
	order  []string
}

// NewStruct returns a struct with no fields.
func NewStruct() *Struct {
	return &Struct{fields: map[string]Value{}}
}

func (s *Struct) Size() (int, int) { return 1, 1 }

func (s *Struct) String() string { return "[1x1 struct]" }

// Get returns the named field.
func (s *Struct) Get(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// Field returns the named field, raising an error if there is none.
func (s *Struct) Field(name string) Value {
	v, ok := s.fields[name]
	if !ok {
		Errorf(UndefinedName, "Reference to non-existent field '%s'.", name)
	}
	return v
}

// Fields returns the field names in order. The caller must not modify them.
func (s *Struct) Fields() []string { return s.order }

// Len returns the number of fields.
func (s *Struct) Len() int { return len(s.order) }

// With returns a copy of s with the field set to v.
func (s *Struct) With(name string, v Value) *Struct {
	t := &Struct{fields: make(map[string]Value, len(s.fields)+1)}
	for k, x := range s.fields {
		t.fields[k] = x
	}
	t.order = append([]string(nil), s.order...)
	if _, ok := t.fields[name]; !ok {
		t.order = append(t.order, name)
	}
	t.fields[name] = v
	return t
}

// Without returns a copy of s with the field removed.
func (s *Struct) Without(name string) *Struct {
	t := NewStruct()
	for _, k := range s.order {
		if k != name {
			t = t.With(k, s.fields[k])
		}
	}
	return t
}
