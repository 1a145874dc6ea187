package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

const maxJSONBodyBytes = 1 << 20

type clientPayload struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type taskPayload struct {
	Description *string `json:"description"`
	Status      *string `json:"status"`
	ClientID    *int64  `json:"client_id"`
}

type appointmentPayload struct {
	ClientID      *int64  `json:"client_id"`
	ScheduledTime *string `json:"scheduled_time"`
	Description   *string `json:"description"`
}

func (rt *Router) clients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		clients, err := rt.records.ListClients(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, clients)
	case http.MethodPost:
		var req clientPayload
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if req.Name == nil {
			writeError(w, missingField("create client", "name"))
			return
		}
		created, err := rt.records.CreateClient(r.Context(), domain.Client{Name: *req.Name, Email: req.Email})
		if err != nil {
			writeError(w, err)
			return
		}
		rt.recordCreated(domain.RecordClient)
		writeJSON(w, http.StatusOK, created)
	default:
		allowMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (rt *Router) tasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tasks, err := rt.records.ListTasks(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tasks)
	case http.MethodPost:
		var req taskPayload
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if req.Description == nil {
			writeError(w, missingField("create task", "description"))
			return
		}
		task := domain.Task{Description: *req.Description, ClientID: req.ClientID}
		if req.Status != nil {
			task.Status = *req.Status
		}
		created, err := rt.records.CreateTask(r.Context(), task)
		if err != nil {
			writeError(w, err)
			return
		}
		rt.recordCreated(domain.RecordTask)
		writeJSON(w, http.StatusOK, created)
	default:
		allowMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (rt *Router) appointments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		appointments, err := rt.records.ListAppointments(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, appointments)
	case http.MethodPost:
		var req appointmentPayload
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if req.ClientID == nil {
			writeError(w, missingField("create appointment", "client_id"))
			return
		}
		if req.ScheduledTime == nil {
			writeError(w, missingField("create appointment", "scheduled_time"))
			return
		}
		created, err := rt.records.CreateAppointment(r.Context(), domain.Appointment{
			ClientID:      *req.ClientID,
			ScheduledTime: *req.ScheduledTime,
			Description:   req.Description,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		rt.recordCreated(domain.RecordAppointment)
		writeJSON(w, http.StatusOK, created)
	default:
		allowMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (rt *Router) recordCreated(kind domain.RecordKind) {
	if rt.metrics != nil {
		rt.metrics.RecordCreated(string(kind))
	}
}

// decodeJSONBody decodes a single JSON object. Unknown fields such as a
// client-supplied id are ignored.
func decodeJSONBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.WrapError(domain.ErrInvalidInput, "decode body", errors.New("request body is required"))
		}
		return domain.WrapError(domain.ErrInvalidInput, "decode body", fmt.Errorf("invalid json: %w", err))
	}
	return nil
}

func missingField(operation, field string) error {
	return domain.WrapError(domain.ErrInvalidInput, operation, fmt.Errorf("field %q is required", field))
}
