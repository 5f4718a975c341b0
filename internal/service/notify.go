package service

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Mailer is the outbound mail collaborator the dispatcher drives.
type Mailer interface {
	SendWelcomeEmail(to, username string) error
}

type welcomeJob struct {
	email    string
	username string
}

// Dispatcher delivers welcome notifications in the background. Enqueueing
// never blocks the caller: when the queue is full the job is dropped and
// logged. Delivery failures are logged, never propagated.
type Dispatcher struct {
	mailer Mailer
	jobs   chan welcomeJob
	wg     sync.WaitGroup
}

func NewDispatcher(mailer Mailer, queueSize int) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		jobs:   make(chan welcomeJob, queueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for job := range d.jobs {
		if err := d.mailer.SendWelcomeEmail(job.email, job.username); err != nil {
			logrus.WithError(err).WithField("email", job.email).Warn("welcome email failed")
		}
	}
}

// NotifyWelcome enqueues a welcome mail for the given address.
func (d *Dispatcher) NotifyWelcome(email, username string) {
	select {
	case d.jobs <- welcomeJob{email: email, username: username}:
	default:
		logrus.WithField("email", email).Warn("welcome email queue full, dropping notification")
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	close(d.jobs)
	d.wg.Wait()
}
