package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

func newRecordsForTest() (*RecordsUseCase, *recordRepoFake, *eventsFake) {
	repo := &recordRepoFake{}
	events := &eventsFake{}
	return NewRecordsUseCase(repo, repo, repo, events), repo, events
}

func TestCreateClientAssignsIdentityAndPublishes(t *testing.T) {
	uc, _, events := newRecordsForTest()
	email := "acme@example.com"

	created, err := uc.CreateClient(context.Background(), domain.Client{ID: 99, Name: "Acme", Email: &email})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected store-assigned id 1, got %d", created.ID)
	}

	listed, err := uc.ListClients(context.Background())
	if err != nil {
		t.Fatalf("ListClients() error = %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Acme" || *listed[0].Email != email {
		t.Fatalf("unexpected list: %+v", listed)
	}
	if len(events.events) != 1 || events.events[0] != (domain.RecordCreated{Kind: domain.RecordClient, ID: 1}) {
		t.Fatalf("unexpected events: %+v", events.events)
	}
}

func TestCreateTaskDefaultsStatus(t *testing.T) {
	uc, _, _ := newRecordsForTest()

	created, err := uc.CreateTask(context.Background(), domain.Task{Description: "File GSTR-3B"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if created.Status != domain.DefaultTaskStatus {
		t.Fatalf("expected default status, got %q", created.Status)
	}
}

func TestCreateAppointmentIgnoresPublishFailure(t *testing.T) {
	uc, _, events := newRecordsForTest()
	events.err = errBoom

	created, err := uc.CreateAppointment(context.Background(), domain.Appointment{ClientID: 1, ScheduledTime: "2026-10-20T10:00:00"})
	if err != nil {
		t.Fatalf("CreateAppointment() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestCreateClientWrapsRepositoryError(t *testing.T) {
	uc, repo, events := newRecordsForTest()
	repo.err = errBoom

	_, err := uc.CreateClient(context.Background(), domain.Client{Name: "x"})
	if err == nil || !strings.Contains(err.Error(), "create client") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if len(events.events) != 0 {
		t.Fatalf("failed create must not publish, got %+v", events.events)
	}
}
