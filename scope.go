// Copyright 2026 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arc

import (
	"strings"
)

// Scope is a stack of variable layers. Names are looked up from the
// innermost layer to the outermost one.
//
// A Scope is never modified after its creation; Push returns a new Scope
// and does not change the receiver, so a Scope can be shared by concurrent
// renders.
type Scope struct {
	layers []layer
}

// layer is a layer of a scope.
type layer struct {
	vars Mapping
	loop bool // it binds a loop variable.
}

// NewScope returns a new scope with the given layers, the first is the
// outermost.
func NewScope(layers ...Mapping) *Scope {
	s := &Scope{layers: make([]layer, 0, len(layers))}
	for _, vars := range layers {
		s.layers = append(s.layers, layer{vars: vars})
	}
	return s
}

// Push returns a new scope with vars as innermost layer.
func (s *Scope) Push(vars Mapping) *Scope {
	return s.push(layer{vars: vars})
}

// bind returns a new scope with a loop layer binding name to v.
func (s *Scope) bind(name string, v Value) *Scope {
	return s.push(layer{vars: Mapping{name: v}, loop: true})
}

func (s *Scope) push(l layer) *Scope {
	if s == nil {
		return &Scope{layers: []layer{l}}
	}
	// The full slice expression makes append copy the layers, so sibling
	// scopes never share the new layer.
	layers := s.layers[:len(s.layers):len(s.layers)]
	return &Scope{layers: append(layers, l)}
}

// Lookup returns the value bound to name in the innermost layer that binds
// it, and reports whether name is bound. A name bound to a nil value is bound
// to Absent.
func (s *Scope) Lookup(name string) (Value, bool) {
	v, ok, _ := s.lookup(name)
	return v, ok
}

// lookup is like Lookup but also reports whether name is bound by a loop.
func (s *Scope) lookup(name string) (Value, bool, bool) {
	if s == nil {
		return Absent{}, false, false
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		if v, ok := s.layers[i].vars[name]; ok {
			if v == nil {
				v = Absent{}
			}
			return v, true, s.layers[i].loop
		}
	}
	return Absent{}, false, false
}

// Resolve resolves a variable path, as "post.title". If a variable is named
// as the whole path, as a metadata key "og.image", its value is returned,
// otherwise the path is resolved walking the mappings of the successive
// segments. It returns Absent if a segment is not bound or if the value of
// a segment, other than the last, is not a Mapping.
//
// A path starting with a loop variable is always resolved walking the
// element of the loop.
func (s *Scope) Resolve(path string) Value {
	name, rest, dotted := strings.Cut(path, ".")
	v, _, loop := s.lookup(name)
	if !dotted {
		return v
	}
	if !loop {
		if w, ok := s.Lookup(path); ok {
			return w
		}
	}
	return field(v, rest)
}

// field resolves the dotted path in v.
func field(v Value, path string) Value {
	for _, name := range strings.Split(path, ".") {
		m, ok := v.(Mapping)
		if !ok {
			return Absent{}
		}
		v = m.Get(name)
	}
	return v
}
