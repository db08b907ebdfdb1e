package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *recordingSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to+"|"+subject)
	return nil
}

func TestEmailNotifierDeliversQueuedMessages(t *testing.T) {
	sender := &recordingSender{}
	notifier := NewEmailNotifier(sender, 8, zap.NewNop())

	notifier.Dispatch(StatusNotification{
		To: "ada@example.com", StudentName: "Ada",
		JobTitle: "Backend Engineer", CompanyName: "Acme", Status: "SHORTLISTED",
	})
	notifier.Close()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ada@example.com|Application Status Update: Backend Engineer at Acme", sender.sent[0])
}

func TestRenderStatusEmailMessages(t *testing.T) {
	base := StatusNotification{
		StudentName: "Ada", JobTitle: "Backend Engineer", CompanyName: "Acme",
	}

	cases := []struct {
		status   string
		contains string
	}{
		{"SHORTLISTED", "You have been shortlisted"},
		{"HIRED", "Welcome aboard!"},
		{"REJECTED", "we will not be moving forward"},
		{"APPLIED", "has been received"},
		{"ON_HOLD", "has been updated to ON_HOLD"},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			n := base
			n.Status = tc.status
			subject, body := renderStatusEmail(n)
			assert.Equal(t, "Application Status Update: Backend Engineer at Acme", subject)
			assert.Contains(t, body, "Hi Ada,")
			assert.Contains(t, body, tc.contains)
			assert.Contains(t, body, "New Status: "+tc.status)
		})
	}
}

func TestRenderStatusEmailShortlistedText(t *testing.T) {
	_, body := renderStatusEmail(StatusNotification{
		StudentName: "Ada", JobTitle: "Backend Engineer", CompanyName: "Acme", Status: "SHORTLISTED",
	})
	assert.Contains(t, body, "Congratulations! You have been shortlisted for the Backend Engineer position at Acme.")
}
