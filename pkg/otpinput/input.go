// Package otpinput models the six-cell one-time-passcode entry widget used
// by the mobile and web clients: per-cell digit entry with automatic focus
// movement, paste handling, submit gating and a code-expiry countdown. The
// package holds presentation state only; the actual code check is performed
// by the caller against the verification endpoint.
package otpinput

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// Length is the number of code cells.
const Length = 6

// DefaultExpiry matches the server-side challenge lifetime.
const DefaultExpiry = 600 * time.Second

type State int

const (
	StateCollecting State = iota
	StateSubmitting
	StateVerified
	StateExpired
)

var (
	ErrNotSubmittable = errors.New("code is not submittable")
	ErrNotExpired     = errors.New("code has not expired yet")
)

// Input is safe for concurrent use; the countdown fires from its own
// goroutine while UI events arrive from another.
type Input struct {
	mu    sync.Mutex
	cells [Length]byte
	focus int
	state State
	timer *countdown
}

// New creates an input with the countdown already running. expiresIn falls
// back to DefaultExpiry when non-positive. Callers must Stop the input once
// it leaves the screen.
func New(expiresIn time.Duration) *Input {
	if expiresIn <= 0 {
		expiresIn = DefaultExpiry
	}

	in := &Input{}
	in.timer = newCountdown(int(expiresIn/time.Second), in.expire)
	return in
}

// Type enters a single character into the cell at index. Non-digit input is
// ignored. Entering a digit advances focus to the next cell.
func (in *Input) Type(index int, ch rune) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.editable() || index < 0 || index >= Length {
		return
	}
	if ch < '0' || ch > '9' {
		return
	}

	in.cells[index] = byte(ch)
	if index < Length-1 {
		in.focus = index + 1
	} else {
		in.focus = index
	}
}

// Backspace clears the cell at index, or retreats focus into the previous
// cell and clears it when the current cell is already empty.
func (in *Input) Backspace(index int) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.editable() || index < 0 || index >= Length {
		return
	}

	if in.cells[index] != 0 {
		in.cells[index] = 0
		in.focus = index
		return
	}
	if index > 0 {
		in.cells[index-1] = 0
		in.focus = index - 1
	}
}

// Paste distributes the digits of text across all cells starting at the
// first one, regardless of which cell received the paste. Focus lands on the
// last populated cell.
func (in *Input) Paste(text string) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.editable() {
		return
	}

	var digits []byte
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r))
		}
		if len(digits) == Length {
			break
		}
	}
	if len(digits) == 0 {
		return
	}

	for i, d := range digits {
		in.cells[i] = d
	}
	in.focus = len(digits) - 1
}

// Code returns the entered digits in order, skipping empty cells.
func (in *Input) Code() string {
	in.mu.Lock()
	defer in.mu.Unlock()

	var b strings.Builder
	for _, c := range in.cells {
		if c != 0 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Complete reports whether all cells are filled.
func (in *Input) Complete() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.completeLocked()
}

// CanSubmit reports whether the submit control is enabled: exactly six
// digits, not already submitting, not verified and not expired.
func (in *Input) CanSubmit() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state == StateCollecting && in.completeLocked()
}

// BeginSubmit transitions into the submitting state, blocking further edits
// until FinishSubmit is called.
func (in *Input) BeginSubmit() (string, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.state != StateCollecting || !in.completeLocked() {
		return "", ErrNotSubmittable
	}
	in.state = StateSubmitting
	return string(in.cells[:]), nil
}

// FinishSubmit records the verification outcome. On success the countdown is
// stopped for good. On failure the input returns to collecting, unless the
// countdown ran out mid-flight, in which case it lands on expired.
func (in *Input) FinishSubmit(verified bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.state != StateSubmitting {
		return
	}
	if verified {
		in.state = StateVerified
		in.timer.Stop()
		return
	}
	if in.timer.Remaining() <= 0 {
		in.state = StateExpired
		return
	}
	in.state = StateCollecting
}

// Remaining returns the countdown value in seconds.
func (in *Input) Remaining() int {
	return in.timer.Remaining()
}

func (in *Input) State() State {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

func (in *Input) Expired() bool {
	return in.State() == StateExpired
}

// CanResend reports whether the resend affordance should be shown. It only
// appears once the current code has expired.
func (in *Input) CanResend() bool {
	return in.State() == StateExpired
}

// Rearm clears the cells and restarts the countdown after a new code has
// been requested.
func (in *Input) Rearm(expiresIn time.Duration) error {
	if expiresIn <= 0 {
		expiresIn = DefaultExpiry
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	if in.state != StateExpired {
		return ErrNotExpired
	}
	in.cells = [Length]byte{}
	in.focus = 0
	in.state = StateCollecting
	in.timer.rearm(int(expiresIn / time.Second))
	return nil
}

// Focus returns the index of the currently focused cell.
func (in *Input) Focus() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.focus
}

// Stop cancels the countdown. It is safe to call on every teardown path.
func (in *Input) Stop() {
	in.timer.Stop()
}

func (in *Input) expire() {
	in.mu.Lock()
	defer in.mu.Unlock()

	// A submission already in flight decides its own fate in FinishSubmit.
	if in.state == StateCollecting {
		in.state = StateExpired
	}
}

func (in *Input) editable() bool {
	return in.state == StateCollecting
}

func (in *Input) completeLocked() bool {
	for _, c := range in.cells {
		if c == 0 {
			return false
		}
	}
	return true
}
