package handler

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/evida/coach-api/internal/domain"
	"github.com/evida/coach-api/internal/service"
	"github.com/evida/coach-api/pkg/problem"
)

// fieldAliases maps common upload column names onto the canonical metric
// fields.
var fieldAliases = map[string]string{
	"sleep":    "sleep_hours",
	"hrv":      "hrv_rmssd",
	"stress":   "stress_index",
	"calories": "calories_burned",
}

// UploadHandler accepts wearable exports as JSON or CSV and keeps the most
// recent normalized upload for follow-up chat requests.
type UploadHandler struct {
	summaryService service.SummaryService

	mu         sync.Mutex
	lastUpload []domain.MetricRecord
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(summaryService service.SummaryService) *UploadHandler {
	return &UploadHandler{summaryService: summaryService}
}

// LastUpload returns the most recent normalized upload, nil if none.
func (h *UploadHandler) LastUpload() []domain.MetricRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastUpload
}

// Upload handles POST /upload
// @Summary Upload a wearable data export
// @Description Accept a JSON body ({"data": [...]}) or a multipart file upload (.json or .csv), normalize field names and return the series with its summary.
// @Tags upload
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Export file (.json or .csv)"
// @Success 200 {object} domain.UploadResponse "Normalized data with summary"
// @Failure 400 {object} problem.Problem "Empty or malformed upload"
// @Router /upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	records, prob := h.parseUpload(r)
	if prob != nil {
		prob.Write(w)
		return
	}

	normalized := make([]domain.MetricRecord, 0, len(records))
	for _, record := range records {
		normalized = append(normalized, normalizeRecord(record))
	}

	if len(normalized) == 0 {
		problem.BadRequest("Upload contained no records").Write(w)
		return
	}

	h.mu.Lock()
	h.lastUpload = normalized
	h.mu.Unlock()

	resp := domain.UploadResponse{
		Data:    normalized,
		Summary: h.summaryService.Summarize(normalized),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UploadHandler) parseUpload(r *http.Request) ([]domain.MetricRecord, *problem.Problem) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, problem.BadRequest("Missing file field in multipart upload")
		}
		defer file.Close()

		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".json":
			return parseJSONUpload(file)
		case ".csv":
			return parseCSVUpload(file)
		default:
			return nil, problem.BadRequest("Unsupported file type; use .json or .csv")
		}
	}

	return parseJSONUpload(r.Body)
}

// parseJSONUpload accepts either a bare array of records or an object with
// a "data" array.
func parseJSONUpload(r io.Reader) ([]domain.MetricRecord, *problem.Problem) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, problem.BadRequest("Failed to read upload body")
	}

	var records []domain.MetricRecord
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var wrapper struct {
		Data []domain.MetricRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, problem.BadRequest("Upload must be a JSON array or an object with a data array")
	}
	return wrapper.Data, nil
}

// parseCSVUpload expects a header row naming the fields; numeric cells
// become numbers, everything else stays a string.
func parseCSVUpload(r io.Reader) ([]domain.MetricRecord, *problem.Problem) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, problem.BadRequest("Malformed CSV upload")
	}
	if len(rows) < 2 {
		return nil, problem.BadRequest("CSV upload needs a header row and at least one data row")
	}

	header := rows[0]
	records := make([]domain.MetricRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(domain.MetricRecord, len(header))
		for i, column := range header {
			if i >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			if value, err := strconv.ParseFloat(cell, 64); err == nil {
				record[strings.TrimSpace(column)] = value
			} else {
				record[strings.TrimSpace(column)] = cell
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// normalizeRecord renames aliased fields onto the canonical names without
// clobbering values already present under the canonical name.
func normalizeRecord(record domain.MetricRecord) domain.MetricRecord {
	normalized := make(domain.MetricRecord, len(record))
	for key, value := range record {
		canonical := key
		if alias, ok := fieldAliases[key]; ok {
			canonical = alias
		}
		if _, exists := normalized[canonical]; exists && canonical != key {
			continue
		}
		normalized[canonical] = value
	}
	return normalized
}
