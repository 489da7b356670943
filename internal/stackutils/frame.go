// Copyright (C) 2026 The stackutils Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stackutils

// Frame describes one parsed trace line.
//
// Every field is optional: nil means the line did not report it.
type Frame struct {
	Line   *int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column *int    `json:"column,omitempty" yaml:"column,omitempty"`
	File   *string `json:"file,omitempty" yaml:"file,omitempty"`

	// Constructor is only ever set to true, for "new X" frames.
	Constructor *bool `json:"constructor,omitempty" yaml:"constructor,omitempty"`

	// EvalOrigin, EvalFile, EvalLine and EvalColumn are set together for eval frames.
	EvalOrigin *string `json:"evalOrigin,omitempty" yaml:"evalOrigin,omitempty"`
	EvalFile   *string `json:"evalFile,omitempty" yaml:"evalFile,omitempty"`
	EvalLine   *int    `json:"evalLine,omitempty" yaml:"evalLine,omitempty"`
	EvalColumn *int    `json:"evalColumn,omitempty" yaml:"evalColumn,omitempty"`

	// Native is only ever set to true.
	Native *bool `json:"native,omitempty" yaml:"native,omitempty"`

	Function *string `json:"function,omitempty" yaml:"function,omitempty"`

	// Method is only set if it differs from Function.
	Method *string `json:"method,omitempty" yaml:"method,omitempty"`
}

// Map returns the reported fields indexed by their JSON names.
//
// Integers are stored as int64 for encoders which only accept that width.
func (f Frame) Map() map[string]interface{} {
	m := map[string]interface{}{}
	putInt(m, "line", f.Line)
	putInt(m, "column", f.Column)
	putString(m, "file", f.File)
	putBool(m, "constructor", f.Constructor)
	putString(m, "evalOrigin", f.EvalOrigin)
	putString(m, "evalFile", f.EvalFile)
	putInt(m, "evalLine", f.EvalLine)
	putInt(m, "evalColumn", f.EvalColumn)
	putBool(m, "native", f.Native)
	putString(m, "function", f.Function)
	putString(m, "method", f.Method)
	return m
}

// CallSiteLike is a serialization friendly copy of a CallSite's reported fields.
type CallSiteLike struct {
	Line        *int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column      *int    `json:"column,omitempty" yaml:"column,omitempty"`
	File        *string `json:"file,omitempty" yaml:"file,omitempty"`
	Constructor *bool   `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	EvalOrigin  *string `json:"evalOrigin,omitempty" yaml:"evalOrigin,omitempty"`
	Native      *bool   `json:"native,omitempty" yaml:"native,omitempty"`

	// Type is omitted for the generic object type.
	Type *string `json:"type,omitempty" yaml:"type,omitempty"`

	Function *string `json:"function,omitempty" yaml:"function,omitempty"`
	Method   *string `json:"method,omitempty" yaml:"method,omitempty"`
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func putInt(m map[string]interface{}, key string, v *int) {
	if v != nil {
		m[key] = int64(*v)
	}
}

func putString(m map[string]interface{}, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putBool(m map[string]interface{}, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}
