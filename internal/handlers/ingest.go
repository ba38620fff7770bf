package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gdg-garage/equipment-purchase/internal/notifier"
	"github.com/gdg-garage/equipment-purchase/internal/sheet"
)

const maxPayloadBytes = 1 << 20

type IngestHandler struct {
	table    sheet.Table
	notifier notifier.Notifier
	now      func() time.Time
}

func NewIngestHandler(table sheet.Table, notifier notifier.Notifier, now func() time.Time) *IngestHandler {
	if now == nil {
		now = time.Now
	}
	return &IngestHandler{table: table, notifier: notifier, now: now}
}

type IngestPayload struct {
	Headers []string       `json:"headers"`
	Data    map[string]any `json:"data"`
	Version string         `json:"version,omitempty"`
}

type IngestResult struct {
	Status   string   `json:"status"`
	Message  string   `json:"message,omitempty"`
	Expected []string `json:"expected,omitempty"`
	Actual   []string `json:"actual,omitempty"`
}

// HandleIngest appends one submission to the destination table. The body is
// decoded as JSON whatever its Content-Type, and the response is always a
// 200 with a status field, including on failure.
func (h *IngestHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	result := h.Ingest(r.Context(), io.LimitReader(r.Body, maxPayloadBytes))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to write ingest response: %v", err)
	}
}

func (h *IngestHandler) Ingest(ctx context.Context, body io.Reader) (result IngestResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Ingest panic: %v", rec)
			result = errorResult(fmt.Errorf("internal error: %v", rec))
		}
	}()

	var payload IngestPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return errorResult(fmt.Errorf("Invalid payload: %w", err))
	}
	if payload.Headers == nil {
		return errorResult(errors.New("Invalid payload: missing headers"))
	}

	actual, err := h.table.Headers(ctx)
	if err != nil {
		return errorResult(fmt.Errorf("Failed to read header row: %w", err))
	}

	if err := sheet.CompareHeaders(payload.Headers, actual); err != nil {
		log.Printf("Rejected submission (version %q): %v", payload.Version, err)
		res := errorResult(err)
		var mismatch *sheet.HeaderMismatchError
		if errors.As(err, &mismatch) {
			res.Expected = mismatch.Expected
			res.Actual = mismatch.Actual
		}
		return res
	}

	row := sheet.BuildRow(actual, payload.Data, h.now())
	if err := h.table.AppendRow(ctx, row); err != nil {
		return errorResult(fmt.Errorf("Failed to append row: %w", err))
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyPurchase(actual, row); err != nil {
			log.Printf("Failed to send notification: %v", err)
		}
	}

	return IngestResult{Status: "success", Message: "Data added successfully"}
}

func errorResult(err error) IngestResult {
	return IngestResult{Status: "error", Message: err.Error()}
}
