package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/waygo/waygo/lib/errors"
	"github.com/waygo/waygo/lib/protocol"
)

const testProtocolXML = `<?xml version="1.0" encoding="UTF-8"?>
<protocol name="test">
  <interface name="test_registry" version="1">
    <request name="bind">
      <arg name="name" type="uint"/>
      <arg name="id" type="new_id"/>
    </request>
    <event name="global">
      <arg name="name" type="uint"/>
      <arg name="interface" type="string"/>
      <arg name="version" type="uint"/>
    </event>
  </interface>
  <interface name="test_surface" version="4">
    <request name="attach" since="2">
      <arg name="buffer" type="object" interface="test_buffer" allow-null="true"/>
      <arg name="x" type="int"/>
      <arg name="y" type="int"/>
    </request>
    <request name="frame">
      <arg name="callback" type="new_id" interface="test_callback"/>
    </request>
  </interface>
  <interface name="test_buffer" version="1">
    <request name="destroy"/>
    <event name="release"/>
  </interface>
  <interface name="test_callback" version="1">
    <event name="done">
      <arg name="data" type="uint" enum="payload"/>
    </event>
  </interface>
</protocol>
`

func TestLoad(t *testing.T) {
	ifaces, err := Load(strings.NewReader(testProtocolXML))
	require.NoError(t, err)
	require.Len(t, ifaces, 4)

	registry, surface, buffer, callback := ifaces[0], ifaces[1], ifaces[2], ifaces[3]

	require.Equal(t, "test_registry", registry.Name)
	require.Equal(t, 1, registry.Version)
	require.Equal(t, 4, surface.Version)

	// opcode is the index within the direction
	bind, err := registry.Request(0)
	require.NoError(t, err)
	require.Equal(t, "bind", bind.Name)
	require.Equal(t, "usun", bind.Signature())

	global, err := registry.Event(0)
	require.NoError(t, err)
	require.Equal(t, "usu", global.Signature())

	attach, err := surface.Request(0)
	require.NoError(t, err)
	require.Equal(t, "2?oii", attach.Signature())

	// cross-references resolve to the shared descriptor values
	require.Equal(t, buffer, attach.Args[0].Interface)

	frame, err := surface.Request(1)
	require.NoError(t, err)
	require.Equal(t, "n", frame.Signature())
	require.Equal(t, callback, frame.Args[0].Interface)
	require.True(t, frame.Args[0].Bound())

	done, err := callback.Event(0)
	require.NoError(t, err)
	require.Equal(t, "payload", done.Args[0].Enum)
}

func TestLoadBadType(t *testing.T) {
	const doc = `<protocol name="test">
  <interface name="test_thing" version="1">
    <request name="poke"><arg name="v" type="double"/></request>
  </interface>
</protocol>`

	_, err := Load(strings.NewReader(doc))
	require.True(t, errors.InvalidArgumentType.Is(err))
}

func TestLoadUndeclaredInterface(t *testing.T) {
	const doc = `<protocol name="test">
  <interface name="test_thing" version="1">
    <request name="poke"><arg name="v" type="object" interface="test_missing"/></request>
  </interface>
</protocol>`

	_, err := Load(strings.NewReader(doc))
	require.True(t, errors.BadDescriptor.Is(err))
}

func TestLoadBadVersion(t *testing.T) {
	const doc = `<protocol name="test">
  <interface name="test_thing" version="zero"/>
</protocol>`

	_, err := Load(strings.NewReader(doc))
	require.True(t, errors.BadDescriptor.Is(err))
}

func TestLoadModelMatchesHandBuilt(t *testing.T) {
	ifaces, err := Load(strings.NewReader(testProtocolXML))
	require.NoError(t, err)

	registry := ifaces[0]

	name, err := protocol.NewArgument("name", protocol.Uint, false, nil, "")
	require.NoError(t, err)
	id, err := protocol.NewArgument("id", protocol.NewID, false, nil, "")
	require.NoError(t, err)
	expected := protocol.NewMessage("bind", 0, name, id)

	require.Equal(t, expected, registry.Requests[0])
}
