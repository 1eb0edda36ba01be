package confirm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signsheet/internal/confirm"
)

func TestGate_FirstRequestArms(t *testing.T) {
	g := confirm.New(time.Minute)

	confirmed := g.Request(confirm.TargetRecord(7))
	assert.False(t, confirmed)

	pending, ok := g.Pending()
	require.True(t, ok)
	assert.Equal(t, confirm.TargetRecord(7), pending)
}

func TestGate_SecondRequestSameTargetConfirms(t *testing.T) {
	g := confirm.New(time.Minute)

	require.False(t, g.Request(confirm.TargetRecord(7)))
	assert.True(t, g.Request(confirm.TargetRecord(7)))

	_, ok := g.Pending()
	assert.False(t, ok, "gate should be idle after a confirmation")
}

func TestGate_ThirdRequestArmsAgain(t *testing.T) {
	g := confirm.New(time.Minute)

	g.Request(confirm.TargetRecord(7))
	g.Request(confirm.TargetRecord(7))
	assert.False(t, g.Request(confirm.TargetRecord(7)), "after a confirmation the cycle restarts")
}

func TestGate_SwitchingTargetCancelsPrevious(t *testing.T) {
	g := confirm.New(time.Minute)

	require.False(t, g.Request(confirm.TargetRecord(1)))
	require.False(t, g.Request(confirm.TargetRecord(2)), "different target must arm, not confirm")

	// The first target lost its pending state: requesting it again only arms.
	assert.False(t, g.Request(confirm.TargetRecord(1)))
}

func TestGate_RecordAndAllScopesShareOnePendingSlot(t *testing.T) {
	g := confirm.New(time.Minute)

	require.False(t, g.Request(confirm.TargetRecord(3)))
	require.False(t, g.Request(confirm.TargetAll))

	pending, ok := g.Pending()
	require.True(t, ok)
	assert.True(t, pending.All)

	// Clear-all is still pending, so it confirms.
	assert.True(t, g.Request(confirm.TargetAll))
}

func TestGate_TimeoutResets(t *testing.T) {
	g := confirm.New(20 * time.Millisecond)

	require.False(t, g.Request(confirm.TargetRecord(9)))
	time.Sleep(60 * time.Millisecond)

	_, ok := g.Pending()
	assert.False(t, ok, "timer should have reset the gate")
	assert.False(t, g.Request(confirm.TargetRecord(9)), "after timeout the first request only arms")
}

func TestGate_StaleTimerDoesNotResetLaterConfirmation(t *testing.T) {
	g := confirm.New(50 * time.Millisecond)

	require.False(t, g.Request(confirm.TargetRecord(1)))
	time.Sleep(30 * time.Millisecond)

	// Switching targets restarts the window; the first timer must not fire
	// into the new pending state.
	require.False(t, g.Request(confirm.TargetRecord(2)))
	time.Sleep(30 * time.Millisecond) // past target 1's deadline, inside target 2's

	pending, ok := g.Pending()
	require.True(t, ok, "target 2 should still be pending")
	assert.Equal(t, confirm.TargetRecord(2), pending)
	assert.True(t, g.Request(confirm.TargetRecord(2)))
}

func TestGate_ResetDropsPending(t *testing.T) {
	g := confirm.New(time.Minute)

	g.Request(confirm.TargetAll)
	g.Reset()

	_, ok := g.Pending()
	assert.False(t, ok)
	assert.False(t, g.Request(confirm.TargetAll), "reset forces the two-step process to restart")
}

func TestGate_DefaultWindow(t *testing.T) {
	g := confirm.New(0)
	assert.Equal(t, confirm.DefaultWindow, g.Window())
}
