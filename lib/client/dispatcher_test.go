package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/waygo/waygo/lib/errors"
	"github.com/waygo/waygo/lib/wire"
)

func TestDispatchDecodeFailureIsFatal(t *testing.T) {
	_, _, outputIface := testInterfaces(t)

	r := NewRegistry()
	d := NewDispatcher(r)

	p := newProxy(nil, outputIface, 3, 5)
	require.NoError(t, r.Register(5, p))

	cell := make([]byte, 4)

	{ // null object for the non-nullable "enter" argument
		err := d.Dispatch(5, 1, cell, nil)
		require.True(t, errors.ProtocolViolation.Is(err))
	}

	{ // reference to an identity nothing registered
		wire.ByteOrder.PutUint32(cell, 77)
		err := d.Dispatch(5, 1, cell, nil)
		require.True(t, errors.DanglingObject.Is(err))
	}
}

func TestDispatchNonReentrant(t *testing.T) {
	_, _, outputIface := testInterfaces(t)

	r := NewRegistry()
	d := NewDispatcher(r)

	p := newProxy(nil, outputIface, 3, 5)
	require.NoError(t, r.Register(5, p))

	cell := make([]byte, 4)
	wire.ByteOrder.PutUint32(cell, 4)

	var inner error
	reenter := func(p *Proxy, args []wire.Value) {
		inner = d.Dispatch(5, 0, cell, nil)
	}
	p.On("scale", reenter)

	require.NoError(t, d.Dispatch(5, 0, cell, nil))
	require.True(t, errors.ReentrantDispatch.Is(inner))

	// the guard resets once the first dispatch completes
	p.Off("scale", reenter)
	require.NoError(t, d.Dispatch(5, 0, cell, nil))
}

func TestDispatchResolvesObjectArguments(t *testing.T) {
	_, _, outputIface := testInterfaces(t)

	r := NewRegistry()
	d := NewDispatcher(r)

	p := newProxy(nil, outputIface, 3, 5)
	sibling := newProxy(nil, outputIface, 3, 6)
	require.NoError(t, r.Register(5, p))
	require.NoError(t, r.Register(6, sibling))

	cell := make([]byte, 4)
	wire.ByteOrder.PutUint32(cell, 6)

	var got *Proxy
	p.On("enter", func(p *Proxy, args []wire.Value) {
		got = args[0].Object().(*Proxy)
	})

	require.NoError(t, d.Dispatch(5, 1, cell, nil))
	require.Equal(t, sibling, got)
}
