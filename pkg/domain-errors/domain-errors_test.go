package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapPreservesExistingCode(t *testing.T) {
	inner := New(CodeIllegalTransition, "freeze requires a verified wallet")
	wrapped := Wrap(inner, CodeInternal, "admin action failed")

	var de *Error
	require.True(t, errors.As(wrapped, &de))
	require.Equal(t, CodeIllegalTransition, de.Code)
	require.Equal(t, "admin action failed", de.Message)
	require.True(t, errors.Is(wrapped, inner))
}

func TestWrapAssignsCodeToForeignError(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	wrapped := Wrap(inner, CodeRemoteCall, "submit request")

	require.True(t, HasCode(wrapped, CodeRemoteCall))
	require.False(t, HasCode(wrapped, CodeInternal))
	require.True(t, errors.Is(wrapped, inner))
}

func TestIsMatchesByCode(t *testing.T) {
	a := New(CodePurchasePrecondition, "sale inactive")
	b := New(CodePurchasePrecondition, "price invalid")
	require.True(t, errors.Is(a, b))
	require.False(t, errors.Is(a, New(CodeValidation, "")))
}

func TestErrorStringFallsBackToCode(t *testing.T) {
	require.Equal(t, "partially_applied", New(CodePartiallyApplied, "").Error())
	require.Equal(t, "boom", New(CodeInternal, "boom").Error())
}

func TestErrorStringIncludesCause(t *testing.T) {
	inner := New(CodeRemoteCall, "execution reverted: sold out")
	wrapped := Wrap(inner, CodeRemoteCall, "buy transaction failed")

	require.Equal(t, "buy transaction failed: execution reverted: sold out", wrapped.Error())
}

func TestWrapAsForcesOuterCode(t *testing.T) {
	inner := New(CodeRemoteCall, "node unreachable")
	wrapped := WrapAs(inner, CodePartiallyApplied, "freeze failed after a prior write")

	require.True(t, HasCode(wrapped, CodePartiallyApplied))
	require.False(t, HasCode(wrapped, CodeRemoteCall))
	require.True(t, errors.Is(wrapped, inner))
	require.Contains(t, wrapped.Error(), "node unreachable")
}
