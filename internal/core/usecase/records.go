package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/core/ports"
)

type RecordsUseCase struct {
	clients      ports.ClientRepository
	tasks        ports.TaskRepository
	appointments ports.AppointmentRepository
	events       ports.RecordEventPublisher
}

func NewRecordsUseCase(
	clients ports.ClientRepository,
	tasks ports.TaskRepository,
	appointments ports.AppointmentRepository,
	events ports.RecordEventPublisher,
) *RecordsUseCase {
	return &RecordsUseCase{
		clients:      clients,
		tasks:        tasks,
		appointments: appointments,
		events:       events,
	}
}

func (uc *RecordsUseCase) CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	client.ID = 0
	if err := uc.clients.CreateClient(ctx, &client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	uc.announce(ctx, domain.RecordClient, client.ID)
	return &client, nil
}

func (uc *RecordsUseCase) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := uc.clients.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (uc *RecordsUseCase) CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	task.ID = 0
	if task.Status == "" {
		task.Status = domain.DefaultTaskStatus
	}
	if err := uc.tasks.CreateTask(ctx, &task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	uc.announce(ctx, domain.RecordTask, task.ID)
	return &task, nil
}

func (uc *RecordsUseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := uc.tasks.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (uc *RecordsUseCase) CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	appointment.ID = 0
	if err := uc.appointments.CreateAppointment(ctx, &appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	uc.announce(ctx, domain.RecordAppointment, appointment.ID)
	return &appointment, nil
}

func (uc *RecordsUseCase) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	appointments, err := uc.appointments.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

// announce publishes a creation event. The record is already committed, so a
// publish failure is logged and never fails the request.
func (uc *RecordsUseCase) announce(ctx context.Context, kind domain.RecordKind, id int64) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishRecordCreated(ctx, domain.RecordCreated{Kind: kind, ID: id}); err != nil {
		slog.Warn("record_event_publish_failed", "kind", string(kind), "id", id, "error", err)
	}
}
