package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

func TestQueue_ShowExpiresAfterDuration(t *testing.T) {
	sched := NewManualScheduler(epoch)
	q := NewQueue(sched, 0)

	shown := q.Show(KindSuccess, "Note created")
	assert.Equal(t, epoch, shown.CreatedAt)

	sched.Advance(DefaultDuration - time.Millisecond)
	n, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "Note created", n.Message)

	sched.Advance(time.Millisecond)
	_, ok = q.Current()
	assert.False(t, ok, "Expected notification to expire after 3s")
}

func TestQueue_NewerReplacesOlderAndRestartsCountdown(t *testing.T) {
	sched := NewManualScheduler(epoch)
	q := NewQueue(sched, 3*time.Second)

	q.Show(KindInfo, "first")
	sched.Advance(2 * time.Second)
	q.Show(KindFailure, "second")

	assert.Equal(t, 1, sched.Pending(), "Expected previous timer token to be cancelled")

	// Истечение первого срока не должно очищать второе уведомление
	sched.Advance(1 * time.Second)
	n, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "second", n.Message)
	assert.Equal(t, KindFailure, n.Kind)

	sched.Advance(2 * time.Second)
	_, ok = q.Current()
	assert.False(t, ok)
}

func TestQueue_StaleTimerIsNoOp(t *testing.T) {
	sched := NewManualScheduler(epoch)
	q := NewQueue(sched, time.Second)

	q.Show(KindInfo, "first")
	staleGen := q.gen
	q.Show(KindInfo, "second")

	q.expire(staleGen)

	n, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "second", n.Message)
}

func TestQueue_SubscribersReceiveShownAndExpired(t *testing.T) {
	sched := NewManualScheduler(epoch)
	q := NewQueue(sched, time.Second)
	ch := q.Subscribe()

	q.Show(KindSuccess, "saved")
	sched.Advance(time.Second)

	ev := <-ch
	assert.Equal(t, EventShown, ev.Type)
	assert.Equal(t, "saved", ev.Notification.Message)

	ev = <-ch
	assert.Equal(t, EventExpired, ev.Type)

	q.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open, "Expected channel to be closed after Unsubscribe")
}

func TestQueue_DismissAndClose(t *testing.T) {
	sched := NewManualScheduler(epoch)
	q := NewQueue(sched, time.Second)
	ch := q.Subscribe()

	q.Dismiss()
	q.Show(KindInfo, "x")
	q.Dismiss()
	_, ok := q.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, sched.Pending())

	assert.Equal(t, EventShown, (<-ch).Type)
	assert.Equal(t, EventDismissed, (<-ch).Type)

	q.Close()
	_, open := <-ch
	assert.False(t, open)
}

func TestKind_IsError(t *testing.T) {
	assert.False(t, KindSuccess.IsError())
	assert.False(t, KindInfo.IsError())
	assert.True(t, KindValidationError.IsError())
	assert.True(t, KindConnectionError.IsError())
	assert.Equal(t, "connection_error", KindConnectionError.String())
}
