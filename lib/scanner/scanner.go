// Package scanner builds the protocol model from a protocol description
// file. Only the data model comes out of here; code generation works from
// the same `[]*protocol.Interface` the runtime consults.
package scanner

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"

	"github.com/waygo/waygo/lib/errors"
	"github.com/waygo/waygo/lib/protocol"
)

type xmlArg struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	Interface string `xml:"interface,attr"`
	AllowNull string `xml:"allow-null,attr"`
	Enum      string `xml:"enum,attr"`
}

type xmlMessage struct {
	Name  string   `xml:"name,attr"`
	Since string   `xml:"since,attr"`
	Args  []xmlArg `xml:"arg"`
}

type xmlInterface struct {
	Name     string       `xml:"name,attr"`
	Version  string       `xml:"version,attr"`
	Requests []xmlMessage `xml:"request"`
	Events   []xmlMessage `xml:"event"`
}

type xmlProtocol struct {
	XMLName    xml.Name       `xml:"protocol"`
	Name       string         `xml:"name,attr"`
	Interfaces []xmlInterface `xml:"interface"`
}

// LoadFile reads a protocol description from path.
func LoadFile(path string) ([]*protocol.Interface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Load parses a protocol description and returns its interfaces in document
// order. Cross-references between interfaces are resolved within the
// document; a reference to an interface the document does not declare is a
// BadDescriptor.
func Load(r io.Reader) ([]*protocol.Interface, error) {
	var doc xmlProtocol
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.BadDescriptor.Clone().SetData("reason", err.Error())
	}

	// interface shells first, so argument references resolve regardless of
	// declaration order
	byName := map[string]*protocol.Interface{}
	ifaces := make([]*protocol.Interface, 0, len(doc.Interfaces))
	for _, xi := range doc.Interfaces {
		version, err := strconv.Atoi(xi.Version)
		if err != nil || version < 1 {
			return nil, errors.BadDescriptor.Clone().
				SetData("interface", xi.Name).
				SetData("reason", "bad interface version")
		}
		iface := &protocol.Interface{Name: xi.Name, Version: version}
		byName[xi.Name] = iface
		ifaces = append(ifaces, iface)
	}

	for i, xi := range doc.Interfaces {
		iface := ifaces[i]
		for _, xm := range xi.Requests {
			msg, err := buildMessage(xi.Name, xm, byName)
			if err != nil {
				return nil, err
			}
			iface.Requests = append(iface.Requests, msg)
		}
		for _, xm := range xi.Events {
			msg, err := buildMessage(xi.Name, xm, byName)
			if err != nil {
				return nil, err
			}
			iface.Events = append(iface.Events, msg)
		}
	}

	return ifaces, nil
}

func buildMessage(ifaceName string, xm xmlMessage, byName map[string]*protocol.Interface) (*protocol.Message, error) {
	since := 0
	if xm.Since != "" {
		var err error
		if since, err = strconv.Atoi(xm.Since); err != nil || since < 1 {
			return nil, errors.BadDescriptor.Clone().
				SetData("interface", ifaceName).
				SetData("message", xm.Name).
				SetData("reason", "bad since version")
		}
	}

	args := make([]protocol.Argument, 0, len(xm.Args))
	for _, xa := range xm.Args {
		typ, err := protocol.ParseArgumentType(xa.Type)
		if err != nil {
			return nil, err
		}

		var ref *protocol.Interface
		if xa.Interface != "" {
			var found bool
			if ref, found = byName[xa.Interface]; !found {
				return nil, errors.BadDescriptor.Clone().
					SetData("interface", ifaceName).
					SetData("message", xm.Name).
					SetData("argument", xa.Name).
					SetData("reason", "reference to undeclared interface "+xa.Interface)
			}
		}

		arg, err := protocol.NewArgument(xa.Name, typ, xa.AllowNull == "true", ref, xa.Enum)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return protocol.NewMessage(xm.Name, since, args...), nil
}
