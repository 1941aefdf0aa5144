package reminder

import (
	"context"
	"fmt"

	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Dispatcher emails due reminders. A reminder is due when its date has passed
// and it is neither completed nor already sent. Delivery is at-least-once: the
// sent flag is only set after a successful send, so a crash between send and
// mark may repeat an email but never lose one.
type Dispatcher struct {
	repo     Repo
	notifier Notifier
	clock    utils.Clock
}

func NewDispatcher(repo Repo, notifier Notifier, clock utils.Clock) *Dispatcher {
	return &Dispatcher{repo: repo, notifier: notifier, clock: clock}
}

// DispatchDue sends one email per due reminder and returns how many were
// delivered. A failure on one reminder does not stop the rest.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	due, err := d.repo.FindDue(ctx, d.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to find due reminders: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}
	log.Infof("Dispatching %d due reminder(s)", len(due))

	sent := 0
	for _, r := range due {
		if r.Email == "" {
			log.Warnf("Skipping reminder %d: user %d has no email address", r.ID, r.UserId)
			continue
		}

		subject := fmt.Sprintf("Reminder: %s", r.Title)
		body := composeBody(r.Reminder)
		if err := d.notifier.Send(r.Email, subject, body); err != nil {
			log.Errorf("Failed to send reminder %d to %s: %v", r.ID, r.Email, err)
			continue
		}

		marked, err := d.repo.MarkSent(ctx, r.ID)
		if err != nil {
			log.Errorf("Failed to mark reminder %d as sent: %v", r.ID, err)
			continue
		}
		if !marked {
			log.Warnf("Reminder %d was already marked as sent", r.ID)
			continue
		}
		sent++
	}
	return sent, nil
}

func composeBody(r Reminder) string {
	body := fmt.Sprintf("This is a reminder for: %s\n\nDue: %s\n", r.Title, r.ReminderDate.Format("2006-01-02 15:04"))
	if r.Message != "" {
		body += fmt.Sprintf("\n%s\n", r.Message)
	}
	return body
}

// DispatchJob adapts the dispatcher to the background scheduler.
type DispatchJob struct {
	dispatcher *Dispatcher
}

func NewDispatchJob(dispatcher *Dispatcher) *DispatchJob {
	return &DispatchJob{dispatcher: dispatcher}
}

func (j *DispatchJob) Name() string {
	return "reminder-dispatch"
}

func (j *DispatchJob) Run(ctx context.Context) error {
	sent, err := j.dispatcher.DispatchDue(ctx)
	if err != nil {
		return err
	}
	if sent > 0 {
		log.Infof("Reminder dispatch sent %d email(s)", sent)
	}
	return nil
}
