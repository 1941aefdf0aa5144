package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/stretchr/testify/assert"
)

var dispatchNow = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

func setupDispatcher(t *testing.T) (*Dispatcher, *StubReminderRepo, *StubNotifier) {
	repo := NewStubReminderRepo()
	notifier := NewStubNotifier()
	dispatcher := NewDispatcher(repo, notifier, &utils.MockClock{FixedNow: dispatchNow})
	t.Cleanup(repo.Cleanup)
	return dispatcher, repo, notifier
}

func TestDispatcher_DispatchDue_SendsAndMarks(t *testing.T) {
	// given
	dispatcher, repo, notifier := setupDispatcher(t)
	repo.SetEmail(1, "user@example.com")
	_, err := repo.Store(context.Background(), 1, Reminder{
		Title:        "Pay rent",
		Message:      "Transfer before noon",
		ReminderDate: dispatchNow.Add(-time.Hour),
	})
	assert.NoError(t, err)

	// when
	sent, err := dispatcher.DispatchDue(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, notifier.Sent, 1)
	assert.Equal(t, "user@example.com", notifier.Sent[0].To)
	assert.Equal(t, "Reminder: Pay rent", notifier.Sent[0].Subject)
	assert.Contains(t, notifier.Sent[0].Body, "Transfer before noon")

	stored, _ := repo.GetAll(context.Background(), 1)
	assert.True(t, stored[0].EmailSent)
}

func TestDispatcher_DispatchDue_DoesNotResend(t *testing.T) {
	// given
	dispatcher, repo, notifier := setupDispatcher(t)
	repo.SetEmail(1, "user@example.com")
	_, err := repo.Store(context.Background(), 1, Reminder{
		Title:        "Pay rent",
		ReminderDate: dispatchNow.Add(-time.Hour),
	})
	assert.NoError(t, err)
	_, err = dispatcher.DispatchDue(context.Background())
	assert.NoError(t, err)

	// when
	sent, err := dispatcher.DispatchDue(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, notifier.Sent, 1)
}

func TestDispatcher_DispatchDue_SkipsFutureReminders(t *testing.T) {
	// given
	dispatcher, repo, notifier := setupDispatcher(t)
	repo.SetEmail(1, "user@example.com")
	_, err := repo.Store(context.Background(), 1, Reminder{
		Title:        "Renew insurance",
		ReminderDate: dispatchNow.Add(24 * time.Hour),
	})
	assert.NoError(t, err)

	// when
	sent, err := dispatcher.DispatchDue(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, notifier.Sent)
}

func TestDispatcher_DispatchDue_CompletedIsNeverSent(t *testing.T) {
	// given
	dispatcher, repo, notifier := setupDispatcher(t)
	repo.SetEmail(1, "user@example.com")
	created, err := repo.Store(context.Background(), 1, Reminder{
		Title:        "Pay rent",
		ReminderDate: dispatchNow.Add(-time.Hour),
	})
	assert.NoError(t, err)
	completed, err := repo.Complete(context.Background(), 1, created.ID)
	assert.NoError(t, err)
	assert.True(t, completed)

	// when
	sent, err := dispatcher.DispatchDue(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, notifier.Sent)
}

func TestDispatcher_DispatchDue_SkipsUserWithoutEmail(t *testing.T) {
	// given
	dispatcher, repo, notifier := setupDispatcher(t)
	_, err := repo.Store(context.Background(), 1, Reminder{
		Title:        "Pay rent",
		ReminderDate: dispatchNow.Add(-time.Hour),
	})
	assert.NoError(t, err)

	// when
	sent, err := dispatcher.DispatchDue(context.Background())

	// then the reminder is skipped but stays eligible
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, notifier.Sent)
	stored, _ := repo.GetAll(context.Background(), 1)
	assert.False(t, stored[0].EmailSent)
}

func TestDispatcher_DispatchDue_FailedSendStaysEligible(t *testing.T) {
	// given
	dispatcher, repo, notifier := setupDispatcher(t)
	repo.SetEmail(1, "user@example.com")
	_, err := repo.Store(context.Background(), 1, Reminder{
		Title:        "Pay rent",
		ReminderDate: dispatchNow.Add(-time.Hour),
	})
	assert.NoError(t, err)
	notifier.Fail = true

	// when
	sent, err := dispatcher.DispatchDue(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	stored, _ := repo.GetAll(context.Background(), 1)
	assert.False(t, stored[0].EmailSent)

	// and the next run, after the outage, delivers it
	notifier.Fail = false
	sent, err = dispatcher.DispatchDue(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestDispatcher_DispatchDue_OneFailureDoesNotStopOthers(t *testing.T) {
	// given
	dispatcher, repo, notifier := setupDispatcher(t)
	repo.SetEmail(1, "") // no address, will be skipped
	repo.SetEmail(2, "second@example.com")
	_, err := repo.Store(context.Background(), 1, Reminder{
		Title:        "First",
		ReminderDate: dispatchNow.Add(-2 * time.Hour),
	})
	assert.NoError(t, err)
	_, err = repo.Store(context.Background(), 2, Reminder{
		Title:        "Second",
		ReminderDate: dispatchNow.Add(-time.Hour),
	})
	assert.NoError(t, err)

	// when
	sent, err := dispatcher.DispatchDue(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, notifier.Sent, 1)
	assert.Equal(t, "second@example.com", notifier.Sent[0].To)
}
