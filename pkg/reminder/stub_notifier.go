package reminder

import "errors"

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// StubNotifier records sends in memory. Set Fail to make every send error.
type StubNotifier struct {
	Sent []SentMail
	Fail bool
}

func NewStubNotifier() *StubNotifier {
	return &StubNotifier{}
}

func (n *StubNotifier) Send(to string, subject string, body string) error {
	if n.Fail {
		return errors.New("smtp connection refused")
	}
	n.Sent = append(n.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}
