package notify_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/notify"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, ch <-chan domain.NotificationEvent) domain.NotificationEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for notification event")
		return domain.NotificationEvent{}
	}
}

func TestBoard_Lifecycle(t *testing.T) {
	board := notify.NewBoard(notify.WithDuration(20*time.Millisecond, 10*time.Millisecond))
	events, unsubscribe := board.Subscribe()
	defer unsubscribe()

	board.Show("JSON отформатирован", domain.SeveritySuccess)

	shown := nextEvent(t, events)
	assert.Equal(t, domain.NotificationShown, shown.Kind)
	assert.Equal(t, "JSON отформатирован", shown.Notification.Message)
	assert.Equal(t, domain.SeveritySuccess, shown.Notification.Severity)
	assert.NotEmpty(t, shown.Notification.ID)

	active := board.Active()
	require.Len(t, active, 1)
	assert.Equal(t, shown.Notification.ID, active[0].ID)

	dismissed := nextEvent(t, events)
	assert.Equal(t, domain.NotificationDismissed, dismissed.Kind)
	assert.Equal(t, shown.Notification.ID, dismissed.Notification.ID)

	removed := nextEvent(t, events)
	assert.Equal(t, domain.NotificationRemoved, removed.Kind)
	assert.Empty(t, board.Active())
}

func TestBoard_IndependentNotifications(t *testing.T) {
	board := notify.NewBoard(notify.WithDuration(time.Hour, time.Hour))

	board.Show("first", domain.SeverityInfo)
	board.Show("second", domain.SeverityError)

	active := board.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Message)
	assert.Equal(t, "second", active[1].Message)
	assert.NotEqual(t, active[0].ID, active[1].ID)
}

func TestBoard_DefaultDurations(t *testing.T) {
	assert.Equal(t, 3*time.Second, notify.DefaultDuration)
	assert.Equal(t, 300*time.Millisecond, notify.DefaultFade)
}

func TestBoard_Unsubscribe(t *testing.T) {
	board := notify.NewBoard(notify.WithDuration(time.Hour, time.Hour))
	events, unsubscribe := board.Subscribe()
	unsubscribe()
	unsubscribe()

	board.Show("ignored", domain.SeverityInfo)

	_, open := <-events
	assert.False(t, open)
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	var logs bytes.Buffer
	sm := notify.NewStreamManager(slog.New(slog.NewTextHandler(&logs, nil)))
	ch, unsubscribe := sm.Subscribe()
	defer unsubscribe()

	for i := 0; i < 20; i++ {
		sm.Broadcast(domain.NotificationEvent{Kind: domain.NotificationShown})
	}

	assert.Len(t, ch, 16)
	assert.Contains(t, logs.String(), "dropping event")
}

func TestRecorder(t *testing.T) {
	rec := &notify.Recorder{}
	rec.Show("a", domain.SeverityInfo)
	rec.Show("b", domain.SeverityError)

	got := rec.Notifications()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Message)
	assert.Equal(t, domain.SeverityError, got[1].Severity)
}

func TestMulti(t *testing.T) {
	a, b := &notify.Recorder{}, &notify.Recorder{}
	p := notify.Multi(a, nil, b, notify.Nop{})

	p.Show("hello", domain.SeveritySuccess)

	assert.Len(t, a.Notifications(), 1)
	assert.Len(t, b.Notifications(), 1)
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	term := notify.NewTerminal(&buf, termenv.WithProfile(termenv.Ascii))

	term.Show("Добавлен шаг \"X\"", domain.SeveritySuccess)
	term.Show("second", domain.Severity("unknown"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Добавлен шаг \"X\"", lines[0])
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := notify.Logger{Log: slog.New(slog.NewTextHandler(&buf, nil))}

	l.Show("Ошибка в JSON: x", domain.SeverityError)
	l.Show("ok", domain.SeverityInfo)
	notify.Logger{}.Show("no logger", domain.SeverityInfo)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=INFO")
	assert.NotContains(t, out, "no logger")
}
