package reminder

import (
	"context"
	"sort"
	"time"
)

type StubReminderRepo struct {
	nextId int
	data   map[int]Reminder
	owners map[int]int
	emails map[int]string
}

func NewStubReminderRepo() *StubReminderRepo {
	return &StubReminderRepo{data: map[int]Reminder{}, owners: map[int]int{}, emails: map[int]string{}}
}

// SetEmail registers the delivery address FindDue reports for a user.
func (s *StubReminderRepo) SetEmail(userId int, email string) {
	s.emails[userId] = email
}

func (s *StubReminderRepo) Store(ctx context.Context, userId int, reminder Reminder) (Reminder, error) {
	s.nextId++
	reminder.ID = s.nextId
	s.data[reminder.ID] = reminder
	s.owners[reminder.ID] = userId
	return reminder, nil
}

func (s *StubReminderRepo) Update(ctx context.Context, userId int, reminder Reminder) (bool, error) {
	if _, ok := s.data[reminder.ID]; !ok || s.owners[reminder.ID] != userId {
		return false, nil
	}
	s.data[reminder.ID] = reminder
	return true, nil
}

func (s *StubReminderRepo) Delete(ctx context.Context, userId int, reminderId int) (bool, error) {
	if _, ok := s.data[reminderId]; !ok || s.owners[reminderId] != userId {
		return false, nil
	}
	delete(s.data, reminderId)
	delete(s.owners, reminderId)
	return true, nil
}

func (s *StubReminderRepo) GetAll(ctx context.Context, userId int) ([]Reminder, error) {
	var reminders []Reminder
	for id, reminder := range s.data {
		if s.owners[id] == userId {
			reminders = append(reminders, reminder)
		}
	}
	sortByDate(reminders)
	return reminders, nil
}

func (s *StubReminderRepo) FindIncomplete(ctx context.Context, userId int) ([]Reminder, error) {
	var reminders []Reminder
	for id, reminder := range s.data {
		if s.owners[id] == userId && !reminder.IsCompleted {
			reminders = append(reminders, reminder)
		}
	}
	sortByDate(reminders)
	return reminders, nil
}

func (s *StubReminderRepo) Complete(ctx context.Context, userId int, reminderId int) (bool, error) {
	reminder, ok := s.data[reminderId]
	if !ok || s.owners[reminderId] != userId {
		return false, nil
	}
	reminder.IsCompleted = true
	s.data[reminderId] = reminder
	return true, nil
}

func (s *StubReminderRepo) FindDue(ctx context.Context, now time.Time) ([]DueReminder, error) {
	var due []DueReminder
	for id, reminder := range s.data {
		if reminder.ReminderDate.After(now) || reminder.IsCompleted || reminder.EmailSent {
			continue
		}
		due = append(due, DueReminder{
			Reminder: reminder,
			UserId:   s.owners[id],
			Email:    s.emails[s.owners[id]],
		})
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ReminderDate.Before(due[j].ReminderDate) })
	return due, nil
}

func (s *StubReminderRepo) MarkSent(ctx context.Context, reminderId int) (bool, error) {
	reminder, ok := s.data[reminderId]
	if !ok || reminder.EmailSent {
		return false, nil
	}
	reminder.EmailSent = true
	s.data[reminderId] = reminder
	return true, nil
}

func (s *StubReminderRepo) Cleanup() {
	s.data = map[int]Reminder{}
	s.owners = map[int]int{}
	s.emails = map[int]string{}
}

func sortByDate(reminders []Reminder) {
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ReminderDate.Before(reminders[j].ReminderDate)
	})
}
