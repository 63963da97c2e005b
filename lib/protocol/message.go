package protocol

import (
	"strconv"
)

// Message describes one request or event of an interface. Its opcode is its
// index within the interface's direction, see `Interface`.
type Message struct {
	Name string
	Args []Argument

	// Since is the minimum interface version carrying this message; 0 means
	// unversioned.
	Since int
}

func NewMessage(name string, since int, args ...Argument) *Message {
	return &Message{Name: name, Args: args, Since: since}
}

// Signature returns the wire signature: the concatenated argument
// signatures, prefixed with the version number when the message is
// versioned.
func (m *Message) Signature() string {
	var sig string
	for _, a := range m.Args {
		sig += a.Signature()
	}

	if m.Since > 0 {
		return strconv.Itoa(m.Since) + sig
	}
	return sig
}

// Marshaled returns the argument list as laid out on the wire: an unbound
// new_id expands to (interface name string, version uint, new object). The
// expansion never shows up in `Args`, callers of a request supply one value
// per declared argument only.
func (m *Message) Marshaled() []Argument {
	args := make([]Argument, 0, len(m.Args))
	for _, a := range m.Args {
		if a.Type == NewID && a.Interface == nil {
			args = append(args, Argument{Name: a.Name + "_interface", Type: String})
			args = append(args, Argument{Name: a.Name + "_version", Type: Uint})
		}
		args = append(args, a)
	}

	return args
}
