package protocol

import (
	"github.com/waygo/waygo/lib/errors"
)

// ArgumentType enumerates the wire-level value kinds.
type ArgumentType int

const (
	Int ArgumentType = iota
	Uint
	Fixed
	String
	Object
	NewID
	Array
	Fd
)

// ParseArgumentType maps the type names found in protocol descriptions.
func ParseArgumentType(s string) (ArgumentType, error) {
	switch s {
	case "int":
		return Int, nil
	case "uint":
		return Uint, nil
	case "fixed":
		return Fixed, nil
	case "string":
		return String, nil
	case "object":
		return Object, nil
	case "new_id":
		return NewID, nil
	case "array":
		return Array, nil
	case "fd":
		return Fd, nil
	}

	return 0, errors.InvalidArgumentType.Clone().SetData("type", s)
}

func (t ArgumentType) String() string {
	switch t {
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Fixed:
		return "fixed"
	case String:
		return "string"
	case Object:
		return "object"
	case NewID:
		return "new_id"
	case Array:
		return "array"
	case Fd:
		return "fd"
	}

	return "unknown"
}

func (t ArgumentType) signatureChar() string {
	switch t {
	case Int:
		return "i"
	case Uint:
		return "u"
	case Fixed:
		return "f"
	case String:
		return "s"
	case Object:
		return "o"
	case NewID:
		return "n"
	case Array:
		return "a"
	case Fd:
		return "h"
	}

	return ""
}

// Argument describes one parameter of one message. It is immutable once
// built; `NewArgument` is the only way descriptors come into existence, so
// the invariants hold for every Argument in a model.
type Argument struct {
	Name     string
	Type     ArgumentType
	Nullable bool

	// Interface is the referenced interface; present iff Type is Object or
	// a bound NewID.
	Interface *Interface

	// Enum names the associated enum, for documentation only.
	Enum string
}

func NewArgument(name string, typ ArgumentType, nullable bool, iface *Interface, enum string) (Argument, error) {
	switch typ {
	case Object:
		if iface == nil {
			return Argument{}, errors.BadDescriptor.Clone().SetData("argument", name).SetData("reason", "object argument without interface")
		}
	case NewID:
		// bound iff iface is set
	default:
		if iface != nil {
			return Argument{}, errors.BadDescriptor.Clone().SetData("argument", name).SetData("reason", "interface reference on non-object argument")
		}
	}

	if nullable {
		switch {
		case typ == String || typ == Object:
		case typ == NewID && iface == nil:
		default:
			return Argument{}, errors.BadDescriptor.Clone().SetData("argument", name).SetData("reason", "argument type is not nullable")
		}
	}

	return Argument{
		Name:      name,
		Type:      typ,
		Nullable:  nullable,
		Interface: iface,
		Enum:      enum,
	}, nil
}

// Bound reports whether a new_id argument names its interface in the
// descriptor rather than inline on the wire.
func (a Argument) Bound() bool {
	return a.Type == NewID && a.Interface != nil
}

// Signature returns the argument's part of the wire signature: one char per
// type, "sun" for an unbound new_id, '?'-prefixed when nullable.
func (a Argument) Signature() string {
	var s string
	if a.Type == NewID && a.Interface == nil {
		s = "sun"
	} else {
		s = a.Type.signatureChar()
	}

	if a.Nullable {
		return "?" + s
	}
	return s
}
