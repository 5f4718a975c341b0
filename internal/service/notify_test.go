package service_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forkful/recipebook/backend/internal/service"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *recordingMailer) SendWelcomeEmail(to, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return m.err
}

func TestDispatcherDeliversWelcome(t *testing.T) {
	mailer := &recordingMailer{}
	d := service.NewDispatcher(mailer, 8)

	d.NotifyWelcome("a@x.com", "alice")
	d.NotifyWelcome("b@x.com", "bob")
	d.Close()

	assert.Equal(t, []string{"a@x.com", "b@x.com"}, mailer.sent)
}

func TestDispatcherSwallowsMailerFailure(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	d := service.NewDispatcher(mailer, 8)

	// Failure is logged, never propagated to the caller.
	d.NotifyWelcome("a@x.com", "alice")
	d.Close()

	assert.Equal(t, []string{"a@x.com"}, mailer.sent)
}
