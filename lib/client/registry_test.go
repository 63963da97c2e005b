package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/waygo/waygo/lib/errors"
	"github.com/waygo/waygo/lib/protocol"
)

func TestRegistryUniqueness(t *testing.T) {
	iface := &protocol.Interface{Name: "test_output", Version: 1}
	r := NewRegistry()

	proxyA := newProxy(nil, iface, 1, 5)
	proxyB := newProxy(nil, iface, 1, 5)

	require.NoError(t, r.Register(5, proxyA))

	err := r.Register(5, proxyB)
	require.True(t, errors.DuplicateIdentity.Is(err))

	// the losing registration never displaces the live one
	require.Equal(t, proxyA, r.Resolve(5))
}

func TestRegistryUnregister(t *testing.T) {
	iface := &protocol.Interface{Name: "test_output", Version: 1}
	r := NewRegistry()

	require.NoError(t, r.Register(5, newProxy(nil, iface, 1, 5)))
	r.Unregister(5)
	require.Nil(t, r.Resolve(5))

	// the identity is free again once the slot is invalidated
	require.NoError(t, r.Register(5, newProxy(nil, iface, 1, 5)))
}

func TestRegistryResolveUnknown(t *testing.T) {
	r := NewRegistry()
	require.Nil(t, r.Resolve(99))
}
