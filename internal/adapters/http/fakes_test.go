package httpadapter

import (
	"context"
	"net/http"

	"github.com/kirillkom/ca-suite-backend/internal/config"
	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

type noticeFake struct {
	analysis *domain.NoticeAnalysis
	err      error

	gotNotice      domain.NoticeDocument
	gotAttachments []domain.NoticeDocument
}

func (f *noticeFake) Analyze(_ context.Context, notice domain.NoticeDocument, attachments []domain.NoticeDocument) (*domain.NoticeAnalysis, error) {
	f.gotNotice = notice
	f.gotAttachments = attachments
	if f.err != nil {
		return nil, f.err
	}
	if f.analysis != nil {
		return f.analysis, nil
	}
	return &domain.NoticeAnalysis{Reply: "Respected Sir", MissingDocuments: []string{}}, nil
}

type replyFake struct {
	reply string
	err   error

	gotPrompt string
}

func (f *replyFake) GenerateReply(_ context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.reply, f.err
}

type tallyFake struct {
	summary *domain.TallySummary
	err     error

	gotFilename string
	gotContent  []byte
}

func (f *tallyFake) Import(_ context.Context, filename string, content []byte) (*domain.TallySummary, error) {
	f.gotFilename = filename
	f.gotContent = content
	return f.summary, f.err
}

type recordsFake struct {
	clients      []domain.Client
	tasks        []domain.Task
	appointments []domain.Appointment
	err          error
}

func (f *recordsFake) CreateClient(_ context.Context, c domain.Client) (*domain.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	c.ID = int64(len(f.clients) + 1)
	f.clients = append(f.clients, c)
	return &c, nil
}

func (f *recordsFake) ListClients(context.Context) ([]domain.Client, error) {
	if f.clients == nil {
		return []domain.Client{}, f.err
	}
	return f.clients, f.err
}

func (f *recordsFake) CreateTask(_ context.Context, task domain.Task) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	if task.Status == "" {
		task.Status = domain.DefaultTaskStatus
	}
	task.ID = int64(len(f.tasks) + 1)
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *recordsFake) ListTasks(context.Context) ([]domain.Task, error) {
	return f.tasks, f.err
}

func (f *recordsFake) CreateAppointment(_ context.Context, a domain.Appointment) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	a.ID = int64(len(f.appointments) + 1)
	f.appointments = append(f.appointments, a)
	return &a, nil
}

func (f *recordsFake) ListAppointments(context.Context) ([]domain.Appointment, error) {
	return f.appointments, f.err
}

type testDeps struct {
	notices *noticeFake
	replies *replyFake
	tally   *tallyFake
	records *recordsFake
}

func newTestDeps() *testDeps {
	return &testDeps{
		notices: &noticeFake{},
		replies: &replyFake{reply: "ok"},
		tally:   &tallyFake{summary: &domain.TallySummary{Totals: map[string]float64{}}},
		records: &recordsFake{},
	}
}

func (d *testDeps) handler(cfg config.Config) http.Handler {
	return NewRouter(cfg, d.notices, d.replies, d.tally, d.records).Handler()
}
