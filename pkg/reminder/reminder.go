package reminder

import "time"

type Reminder struct {
	ID           int
	Title        string
	Message      string
	ReminderDate time.Time
	IsCompleted  bool
	EmailSent    bool
}

// DueReminder pairs a due reminder with its owner's delivery address. Email is
// empty when the owner has no address on file.
type DueReminder struct {
	Reminder
	UserId int
	Email  string
}
