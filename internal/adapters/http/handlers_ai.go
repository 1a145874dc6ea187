package httpadapter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/core/usecase"
)

const multipartMemory = 8 << 20

func (rt *Router) generateReply(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Prompt *string `json:"prompt"`
	}
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Prompt == nil {
		writeError(w, missingField("generate reply", "prompt"))
		return
	}

	reply, err := rt.replies.GenerateReply(r.Context(), *req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (rt *Router) gstNotice(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if !rt.parseMultipart(w, r) {
		return
	}

	notice, err := readUpload(r, "notice")
	if err != nil {
		writeError(w, err)
		return
	}

	var attachments []domain.NoticeDocument
	for _, field := range []string{"additional_documents", "additional_documents[]"} {
		for _, header := range r.MultipartForm.File[field] {
			doc, err := readFileHeader(header)
			if err != nil {
				writeError(w, err)
				return
			}
			attachments = append(attachments, doc)
		}
	}

	analysis, err := rt.notices.Analyze(r.Context(), notice, attachments)
	if err != nil {
		rt.recordNotice("error")
		writeError(w, err)
		return
	}
	if analysis.Complete() {
		rt.recordNotice("complete")
	} else {
		rt.recordNotice("incomplete")
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (rt *Router) importTally(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if !rt.parseMultipart(w, r) {
		return
	}

	upload, err := readUpload(r, "file")
	if err != nil {
		writeError(w, err)
		return
	}

	format := usecase.FormatFromFilename(upload.Filename)
	summary, err := rt.tally.Import(r.Context(), upload.Filename, upload.Content)
	if err != nil {
		rt.recordTally(format, "error", 0)
		writeError(w, err)
		return
	}
	rt.recordTally(format, "ok", summary.RowCount)
	writeJSON(w, http.StatusOK, summary)
}

// parseMultipart enforces the upload limit and writes the error response itself.
func (rt *Router) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "parse upload", err))
		return false
	}
	return true
}

func readUpload(r *http.Request, field string) (domain.NoticeDocument, error) {
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return domain.NoticeDocument{}, missingField("upload", field)
	}
	return readFileHeader(headers[0])
}

func readFileHeader(header *multipart.FileHeader) (domain.NoticeDocument, error) {
	file, err := header.Open()
	if err != nil {
		return domain.NoticeDocument{}, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return domain.NoticeDocument{}, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	return domain.NoticeDocument{Filename: header.Filename, Content: content}, nil
}

func (rt *Router) recordNotice(outcome string) {
	if rt.metrics != nil {
		rt.metrics.RecordNoticeOutcome(outcome)
	}
	slog.Debug("notice_analyzed", "outcome", outcome)
}

func (rt *Router) recordTally(format, status string, rows int) {
	if rt.metrics != nil {
		rt.metrics.RecordTallyImport(format, status, rows)
	}
}
