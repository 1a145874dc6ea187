package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

func (s *Store) CreateClient(ctx context.Context, client *domain.Client) error {
	err := s.db.QueryRowContext(ctx, `
INSERT INTO client (name, email)
VALUES ($1, $2)
RETURNING id
`, client.Name, nullableString(client.Email)).Scan(&client.ID)
	if err != nil {
		return insertError("insert client", err)
	}
	return nil
}

func (s *Store) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email FROM client ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		var (
			client domain.Client
			email  sql.NullString
		)
		if err := rows.Scan(&client.ID, &client.Name, &email); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		client.Email = stringPtr(email)
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	err := s.db.QueryRowContext(ctx, `
INSERT INTO task (description, status, client_id)
VALUES ($1, $2, $3)
RETURNING id
`, task.Description, task.Status, nullableInt(task.ClientID)).Scan(&task.ID)
	if err != nil {
		return insertError("insert task", err)
	}
	return nil
}

func (s *Store) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, description, status, client_id FROM task ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var (
			task     domain.Task
			clientID sql.NullInt64
		)
		if err := rows.Scan(&task.ID, &task.Description, &task.Status, &clientID); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.ClientID = intPtr(clientID)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) CreateAppointment(ctx context.Context, appointment *domain.Appointment) error {
	err := s.db.QueryRowContext(ctx, `
INSERT INTO appointment (client_id, scheduled_time, description)
VALUES ($1, $2, $3)
RETURNING id
`, appointment.ClientID, appointment.ScheduledTime, nullableString(appointment.Description)).Scan(&appointment.ID)
	if err != nil {
		return insertError("insert appointment", err)
	}
	return nil
}

func (s *Store) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, client_id, scheduled_time, description
FROM appointment
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		var (
			appointment domain.Appointment
			description sql.NullString
		)
		if err := rows.Scan(&appointment.ID, &appointment.ClientID, &appointment.ScheduledTime, &description); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointment.Description = stringPtr(description)
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return appointments, nil
}
