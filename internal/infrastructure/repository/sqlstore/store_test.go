package sqlstore

import (
	"context"
	"testing"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

func TestParseURL(t *testing.T) {
	cases := []struct {
		url     string
		dialect Dialect
		dsn     string
	}{
		{"", DialectSQLite, "./ca_suite.db"},
		{"sqlite:///./ca_suite.db", DialectSQLite, "./ca_suite.db"},
		{"sqlite:////var/lib/ca.db", DialectSQLite, "/var/lib/ca.db"},
		{"sqlite://", DialectSQLite, ":memory:"},
		{"sqlite:///:memory:", DialectSQLite, ":memory:"},
		{"file:test.db?cache=shared", DialectSQLite, "file:test.db?cache=shared"},
		{"postgres://u:p@localhost:5432/ca", DialectPostgres, "postgres://u:p@localhost:5432/ca"},
		{"postgresql://localhost/ca", DialectPostgres, "postgresql://localhost/ca"},
	}
	for _, tc := range cases {
		dialect, dsn, err := ParseURL(tc.url)
		if err != nil {
			t.Fatalf("ParseURL(%q) error = %v", tc.url, err)
		}
		if dialect != tc.dialect || dsn != tc.dsn {
			t.Fatalf("ParseURL(%q) = %s %q, want %s %q", tc.url, dialect, dsn, tc.dialect, tc.dsn)
		}
	}

	if _, _, err := ParseURL("mysql://localhost/ca"); err == nil {
		t.Fatalf("expected unsupported scheme error")
	}
}

func TestOpenRejectsUnsupportedScheme(t *testing.T) {
	_, err := Open("mysql://localhost/ca")
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	store, err := Open("sqlite://")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	// Idempotent on an existing schema.
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema() error = %v", err)
	}

	email := "accounts@acme.example"
	first := &domain.Client{Name: "Acme", Email: &email}
	second := &domain.Client{Name: "Globex"}
	for _, c := range []*domain.Client{first, second} {
		if err := store.CreateClient(ctx, c); err != nil {
			t.Fatalf("CreateClient() error = %v", err)
		}
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected sequential ids, got %d and %d", first.ID, second.ID)
	}

	task := &domain.Task{Description: "File GSTR-1", Status: domain.DefaultTaskStatus, ClientID: &first.ID}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	note := "quarterly review"
	appt := &domain.Appointment{ClientID: 42, ScheduledTime: "2024-07-01T10:00:00", Description: &note}
	if err := store.CreateAppointment(ctx, appt); err != nil {
		t.Fatalf("CreateAppointment() with unknown client must succeed on sqlite, got %v", err)
	}

	clients, err := store.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients() error = %v", err)
	}
	if len(clients) != 2 || clients[0].Name != "Acme" || clients[0].Email == nil || *clients[0].Email != email || clients[1].Email != nil {
		t.Fatalf("unexpected clients %+v", clients)
	}

	tasks, err := store.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != "pending" || tasks[0].ClientID == nil || *tasks[0].ClientID != 1 {
		t.Fatalf("unexpected tasks %+v", tasks)
	}

	appointments, err := store.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("ListAppointments() error = %v", err)
	}
	if len(appointments) != 1 || appointments[0].ClientID != 42 || appointments[0].Description == nil {
		t.Fatalf("unexpected appointments %+v", appointments)
	}
}
