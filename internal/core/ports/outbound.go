package ports

import (
	"context"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

// ClientRepository persists client records.
type ClientRepository interface {
	CreateClient(ctx context.Context, client *domain.Client) error
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// TaskRepository persists task records.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	ListTasks(ctx context.Context) ([]domain.Task, error)
}

// AppointmentRepository persists appointment records.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *domain.Appointment) error
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
}

// RecordEventPublisher announces newly created records.
type RecordEventPublisher interface {
	PublishRecordCreated(ctx context.Context, event domain.RecordCreated) error
}

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc domain.NoticeDocument) (string, error)
}

// TextGenerator calls an external chat-completion service.
type TextGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// TableParser parses one tabular export format.
type TableParser interface {
	Parse(content []byte) (domain.Table, error)
}
