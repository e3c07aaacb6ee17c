// Package linejson parses JSON into a value tree whose object keys remember
// the source line they were read from.
package linejson

import (
	"errors"
	"fmt"
	"time"
)

// ErrTypeMismatch is returned by Value accessors when the value holds a
// different kind than the one requested.
var ErrTypeMismatch = errors.New("type mismatch")

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindTime
	KindObject
	KindArray
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Key is an object key. Equality is defined on Text only; Line is the 1-based
// line the key was read from, or 0 when the key was not produced by parsing.
type Key struct {
	Text string
	Line int
}

// IsZero reports whether both text and line are unset.
func (k Key) IsZero() bool {
	return k.Text == "" && k.Line == 0
}

func (k Key) String() string {
	return k.Text
}

// SyntaxError describes where and why parsing stopped.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Value is a parsed JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	t    time.Time
	obj  *Object
	arr  []Value
	err  *SyntaxError
}

func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Error returns an error value carrying a syntax error.
func Error(line int, msg string) Value {
	return Value{kind: KindError, err: &SyntaxError{Line: line, Msg: msg}}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsError() bool { return v.kind == KindError }

// Err returns the syntax error for an error value and nil otherwise.
func (v Value) Err() error {
	if v.kind != KindError {
		return nil
	}
	return v.err
}

// Len returns the number of entries of an object or array, and 0 for
// every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return v.obj.Len()
	case KindArray:
		return len(v.arr)
	}
	return 0
}

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("%w: want %s, have %s", ErrTypeMismatch, want, v.kind)
}

func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

func (v Value) Number() (float64, error) {
	if v.kind != KindNumber {
		return 0, v.mismatch(KindNumber)
	}
	return v.n, nil
}

func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

func (v Value) Time() (time.Time, error) {
	if v.kind != KindTime {
		return time.Time{}, v.mismatch(KindTime)
	}
	return v.t, nil
}

func (v Value) Object() (*Object, error) {
	if v.kind != KindObject {
		return nil, v.mismatch(KindObject)
	}
	return v.obj, nil
}

func (v Value) Array() ([]Value, error) {
	if v.kind != KindArray {
		return nil, v.mismatch(KindArray)
	}
	return v.arr, nil
}

// Equal reports structural equality. Object keys compare by text, and key
// order is significant. Error values are never equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindTime:
		return v.t.Equal(o.t)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.equal(o.obj)
	}
	return false
}

// Object is an insertion-ordered map from Key to Value with unique key text.
type Object struct {
	keys   []Key
	values []Value
	index  map[string]int
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Set inserts or replaces the entry for k.Text. A replaced entry keeps its
// position but takes the new key's line and the new value.
func (o *Object) Set(k Key, v Value) {
	if i, ok := o.index[k.Text]; ok {
		o.keys[i] = k
		o.values[i] = v
		return
	}
	o.index[k.Text] = len(o.keys)
	o.keys = append(o.keys, k)
	o.values = append(o.values, v)
}

// Lookup finds the entry whose key text equals text.
func (o *Object) Lookup(text string) (Key, Value, bool) {
	if o == nil {
		return Key{}, Value{}, false
	}
	i, ok := o.index[text]
	if !ok {
		return Key{}, Value{}, false
	}
	return o.keys[i], o.values[i], true
}

// Get returns the value stored under text.
func (o *Object) Get(text string) (Value, bool) {
	_, v, ok := o.Lookup(text)
	return v, ok
}

// KeyAt and ValueAt give positional access in insertion order.
func (o *Object) KeyAt(i int) Key { return o.keys[i] }
func (o *Object) ValueAt(i int) Value { return o.values[i] }

// Keys returns a copy of the keys in insertion order.
func (o *Object) Keys() []Key {
	if o == nil {
		return nil
	}
	return append([]Key(nil), o.keys...)
}

func (o *Object) equal(p *Object) bool {
	if o.Len() != p.Len() {
		return false
	}
	for i := range o.keys {
		if o.keys[i].Text != p.keys[i].Text || !o.values[i].Equal(p.values[i]) {
			return false
		}
	}
	return true
}
