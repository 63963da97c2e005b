package wire

import (
	"github.com/waygo/waygo/lib/protocol"
)

// Object is the view of a proxy the codec needs: its wire identity and
// whether it still accepts marshaling.
type Object interface {
	ID() uint32
	Alive() bool
}

// Value is one runtime argument of a message; exactly one kind is set.
type Value struct {
	kind protocol.ArgumentType
	null bool

	i int32
	u uint32
	f Fixed
	s string
	o Object
	a []byte
	h int
}

func NewInt(v int32) Value {
	return Value{kind: protocol.Int, i: v}
}

func NewUint(v uint32) Value {
	return Value{kind: protocol.Uint, u: v}
}

func NewFixed(f Fixed) Value {
	return Value{kind: protocol.Fixed, f: f}
}

func NewString(s string) Value {
	return Value{kind: protocol.String, s: s}
}

func NullString() Value {
	return Value{kind: protocol.String, null: true}
}

func NewObject(o Object) Value {
	if o == nil {
		return NullObject()
	}
	return Value{kind: protocol.Object, o: o}
}

func NullObject() Value {
	return Value{kind: protocol.Object, null: true}
}

func NewArray(b []byte) Value {
	return Value{kind: protocol.Array, a: b}
}

func NewFD(fd int) Value {
	return Value{kind: protocol.Fd, h: fd}
}

func (v Value) Kind() protocol.ArgumentType {
	return v.kind
}

// IsNull reports a wire-null String or Object.
func (v Value) IsNull() bool {
	return v.null
}

func (v Value) Int() int32 {
	return v.i
}

func (v Value) Uint() uint32 {
	return v.u
}

func (v Value) Fixed() Fixed {
	return v.f
}

// Str returns the string content, "" when null.
func (v Value) Str() string {
	return v.s
}

// Object returns the referenced object, nil when null.
func (v Value) Object() Object {
	return v.o
}

func (v Value) Bytes() []byte {
	return v.a
}

func (v Value) FD() int {
	return v.h
}
