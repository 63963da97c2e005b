package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, DuplicateIdentity, DuplicateIdentity)

	e := DuplicateIdentity
	e0 := DuplicateIdentity.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.SetData("showme", "killme")
		require.NotEqual(t, e.Data, e0.Data)
	}
}

func TestErrorsIs(t *testing.T) {
	e := NullNotAllowed.Clone().SetData("argument", "surface")
	require.True(t, NullNotAllowed.Is(e))
	require.False(t, ValueOutOfRange.Is(e))
	require.False(t, NullNotAllowed.Is(fmt.Errorf("null for non-nullable argument")))
}
