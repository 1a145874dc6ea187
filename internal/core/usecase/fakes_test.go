package usecase

import (
	"context"
	"errors"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

type extractorFake struct {
	text string
	err  error
}

func (f extractorFake) Extract(context.Context, domain.NoticeDocument) (string, error) {
	return f.text, f.err
}

type generatorFake struct {
	reply string
	err   error
	calls int
	last  domain.GenerationRequest
}

func (f *generatorFake) Generate(_ context.Context, req domain.GenerationRequest) (string, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type parserFake struct {
	table domain.Table
	err   error
}

func (f parserFake) Parse([]byte) (domain.Table, error) {
	return f.table, f.err
}

type recordRepoFake struct {
	nextID       int64
	clients      []domain.Client
	tasks        []domain.Task
	appointments []domain.Appointment
	err          error
}

func (f *recordRepoFake) assign() int64 {
	f.nextID++
	return f.nextID
}

func (f *recordRepoFake) CreateClient(_ context.Context, c *domain.Client) error {
	if f.err != nil {
		return f.err
	}
	c.ID = f.assign()
	f.clients = append(f.clients, *c)
	return nil
}

func (f *recordRepoFake) ListClients(context.Context) ([]domain.Client, error) {
	return f.clients, f.err
}

func (f *recordRepoFake) CreateTask(_ context.Context, t *domain.Task) error {
	if f.err != nil {
		return f.err
	}
	t.ID = f.assign()
	f.tasks = append(f.tasks, *t)
	return nil
}

func (f *recordRepoFake) ListTasks(context.Context) ([]domain.Task, error) {
	return f.tasks, f.err
}

func (f *recordRepoFake) CreateAppointment(_ context.Context, a *domain.Appointment) error {
	if f.err != nil {
		return f.err
	}
	a.ID = f.assign()
	f.appointments = append(f.appointments, *a)
	return nil
}

func (f *recordRepoFake) ListAppointments(context.Context) ([]domain.Appointment, error) {
	return f.appointments, f.err
}

type eventsFake struct {
	events []domain.RecordCreated
	err    error
}

func (f *eventsFake) PublishRecordCreated(_ context.Context, event domain.RecordCreated) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

var errBoom = errors.New("boom")
