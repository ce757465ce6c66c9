package evmrt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsFrameFatal_ClassifiesKnownErrors(t *testing.T) {
	t.Parallel()
	require.True(t, IsFrameFatal(ErrOutOfGas))
	require.True(t, IsFrameFatal(ErrBadJumpDestination))
	require.True(t, IsFrameFatal(ErrMutableCallInStaticContext))
	require.True(t, IsFrameFatal(&ErrBuiltIn{Name: "ecrecover", Err: errors.New("boom")}))
	require.True(t, IsFrameFatal(&ErrWasm{Detail: "trap"}))
}

func TestIsFrameFatal_InternalEscalates(t *testing.T) {
	t.Parallel()
	require.False(t, IsFrameFatal(&ErrInternal{Detail: "backend corrupted"}))
}

func TestIsFrameFatal_UnknownErrorIsNotFatal(t *testing.T) {
	t.Parallel()
	require.False(t, IsFrameFatal(errors.New("some other error")))
}

func TestErrBuiltIn_Unwraps(t *testing.T) {
	t.Parallel()
	inner := errors.New("precompile failed")
	wrapped := &ErrBuiltIn{Name: "modexp", Err: inner}
	require.ErrorIs(t, wrapped, inner)
}
