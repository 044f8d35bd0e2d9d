package otpinput

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestInput(t *testing.T) *Input {
	t.Helper()
	in := New(time.Hour)
	t.Cleanup(in.Stop)
	return in
}

func typeCode(in *Input, code string) {
	for i, r := range code {
		in.Type(i, r)
	}
}

func TestTypeAdvancesFocusAndEnablesSubmit(t *testing.T) {
	in := newTestInput(t)

	require.False(t, in.CanSubmit())

	typeCode(in, "123456")

	require.Equal(t, "123456", in.Code())
	require.Equal(t, Length-1, in.Focus())
	require.True(t, in.CanSubmit())
}

func TestTypeIgnoresNonDigits(t *testing.T) {
	in := newTestInput(t)

	in.Type(0, 'a')
	in.Type(0, '-')

	require.Empty(t, in.Code())
	require.Equal(t, 0, in.Focus())
}

func TestBackspaceDisablesSubmit(t *testing.T) {
	in := newTestInput(t)
	typeCode(in, "123456")
	require.True(t, in.CanSubmit())

	in.Backspace(5)

	require.False(t, in.CanSubmit())
	require.Equal(t, "12345", in.Code())
}

func TestBackspaceOnEmptyCellRetreatsFocus(t *testing.T) {
	in := newTestInput(t)
	in.Type(0, '1')
	in.Type(1, '2')

	// cell 2 is empty: backspace clears cell 1 and moves focus there
	in.Backspace(2)

	require.Equal(t, "1", in.Code())
	require.Equal(t, 1, in.Focus())
}

func TestPastePopulatesFromFirstCell(t *testing.T) {
	in := newTestInput(t)
	in.Type(0, '9')
	in.Type(1, '9')

	// paste into the middle still fills from cell zero
	in.Paste("123456")

	require.Equal(t, "123456", in.Code())
	require.Equal(t, Length-1, in.Focus())
	require.True(t, in.CanSubmit())
}

func TestPasteFiltersNonDigitsAndTruncates(t *testing.T) {
	in := newTestInput(t)

	in.Paste("code: 12-34-56-78")

	require.Equal(t, "123456", in.Code())
}

func TestPartialPasteLeavesSubmitDisabled(t *testing.T) {
	in := newTestInput(t)

	in.Paste("123")

	require.Equal(t, "123", in.Code())
	require.Equal(t, 2, in.Focus())
	require.False(t, in.CanSubmit())
}

func TestSubmitLifecycle(t *testing.T) {
	in := newTestInput(t)
	typeCode(in, "654321")

	code, err := in.BeginSubmit()
	require.NoError(t, err)
	require.Equal(t, "654321", code)
	require.Equal(t, StateSubmitting, in.State())

	// edits are blocked while the check is in flight
	in.Type(0, '9')
	require.Equal(t, "654321", in.Code())
	require.False(t, in.CanSubmit())

	in.FinishSubmit(false)
	require.Equal(t, StateCollecting, in.State())
	require.True(t, in.CanSubmit())

	_, err = in.BeginSubmit()
	require.NoError(t, err)
	in.FinishSubmit(true)
	require.Equal(t, StateVerified, in.State())
	require.False(t, in.CanSubmit())
	require.False(t, in.CanResend())
}

func TestBeginSubmitRequiresCompleteCode(t *testing.T) {
	in := newTestInput(t)
	typeCode(in, "12345")

	_, err := in.BeginSubmit()
	require.ErrorIs(t, err, ErrNotSubmittable)
	require.Equal(t, StateCollecting, in.State())
}

func TestCountdownExpiryDisablesSubmitAndAllowsResend(t *testing.T) {
	in := New(3 * time.Second)
	t.Cleanup(in.Stop)
	typeCode(in, "123456")

	for in.timer.tick() {
	}

	require.Equal(t, 0, in.Remaining())
	require.True(t, in.Expired())
	require.False(t, in.CanSubmit())
	require.True(t, in.CanResend())

	in.Type(0, '9')
	require.Equal(t, "123456", in.Code())
}

func TestExpiryDuringSubmitResolvesOnFinish(t *testing.T) {
	in := New(2 * time.Second)
	t.Cleanup(in.Stop)
	typeCode(in, "123456")

	_, err := in.BeginSubmit()
	require.NoError(t, err)

	for in.timer.tick() {
	}
	// the in-flight submission keeps its state until the outcome arrives
	require.Equal(t, StateSubmitting, in.State())

	in.FinishSubmit(false)
	require.Equal(t, StateExpired, in.State())
}

func TestRearmOnlyWhenExpired(t *testing.T) {
	in := newTestInput(t)
	require.ErrorIs(t, in.Rearm(time.Minute), ErrNotExpired)

	for in.timer.tick() {
	}
	require.True(t, in.Expired())

	require.NoError(t, in.Rearm(time.Minute))
	require.Equal(t, StateCollecting, in.State())
	require.Empty(t, in.Code())
	require.Equal(t, 0, in.Focus())
	require.Equal(t, 60, in.Remaining())
}

func TestStopIsIdempotent(t *testing.T) {
	in := New(time.Minute)
	in.Stop()
	in.Stop()
}
