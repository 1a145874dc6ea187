package ports

import (
	"context"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

// NoticeAnalyzer is the inbound contract for GST/IT notice intake.
type NoticeAnalyzer interface {
	Analyze(ctx context.Context, notice domain.NoticeDocument, attachments []domain.NoticeDocument) (*domain.NoticeAnalysis, error)
}

// ReplyGenerator drafts free-form replies from a user prompt.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

// TallyImporter summarizes numeric columns of an exported ledger file.
type TallyImporter interface {
	Import(ctx context.Context, filename string, content []byte) (*domain.TallySummary, error)
}

// RecordService is the inbound contract for client/task/appointment records.
type RecordService interface {
	CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
}
