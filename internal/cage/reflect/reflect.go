// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reflect

import std_reflect "reflect"

// GetFieldTag returns the value of a struct field's tag, e.g. a flag's usage string.
//
// The value may be a struct or a pointer to one. It returns an empty string if the field
// or tag is not found.
func GetFieldTag(val interface{}, field string, key string) string {
	t := std_reflect.TypeOf(val)
	if t == nil {
		return ""
	}
	if t.Kind() == std_reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != std_reflect.Struct {
		return ""
	}
	f, found := t.FieldByName(field)
	if found {
		return f.Tag.Get(key)
	}
	return ""
}
