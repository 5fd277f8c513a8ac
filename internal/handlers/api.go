package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/antigravity/bumps/internal/bumps"
	"github.com/antigravity/bumps/internal/matrix"
	"github.com/antigravity/bumps/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handlers) ListGolfers(w http.ResponseWriter, r *http.Request) {
	snap, err := h.board.Snapshot(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Golfers)
}

func (h *Handlers) CreateGolfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string          `json:"name"`
		Allowance json.RawMessage `json:"allowance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.board.AddGolfer(r.Context(), req.Name, rawText(req.Allowance)); err != nil {
		if bumps.IsValidation(err) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		h.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ImportGolfers reads a CSV of name,allowance rows. A leading header row is
// skipped, as is any row that does not validate.
func (h *Handlers) ImportGolfers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		http.Error(w, "Failed to parse CSV", http.StatusBadRequest)
		return
	}

	var (
		golfers []models.Golfer
		skipped int
	)
	for i, record := range records {
		if i == 0 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}
		if len(record) < 2 {
			skipped++
			continue
		}
		g, err := bumps.ParseGolfer(record[0], record[1])
		if err != nil {
			skipped++
			continue
		}
		golfers = append(golfers, g)
	}

	if err := h.board.ImportGolfers(r.Context(), golfers); err != nil {
		h.serverError(w, err)
		return
	}
	h.logger.Info().Int("imported", len(golfers)).Int("skipped", skipped).Msg("golfer csv imported")
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(golfers), "skipped": skipped})
}

func (h *Handlers) ListHoles(w http.ResponseWriter, r *http.Request) {
	snap, err := h.board.Snapshot(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Holes)
}

// rawText returns a JSON string's contents, or any other JSON value as its
// literal text, so the allowance parser sees exactly what the client sent.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// SetDifficulties accepts {"difficulties": "6,8,18"} or {"difficulties":
// [6, 8, 18]}. Tokens in the string form that do not parse are skipped.
func (h *Handlers) SetDifficulties(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Difficulties json.RawMessage `json:"difficulties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		values  []int
		dropped int
		text    string
	)
	switch raw := bytes.TrimSpace(req.Difficulties); {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &values); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	default:
		if err := json.Unmarshal(raw, &text); err != nil {
			http.Error(w, "difficulties must be a string or an array of integers", http.StatusBadRequest)
			return
		}
		values, dropped = bumps.ParseDifficulties(text)
	}

	if err := h.board.SetDifficulties(r.Context(), values, dropped); err != nil {
		h.serverError(w, err)
		return
	}

	snap, err := h.board.Snapshot(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"holes": snap.Holes, "dropped": dropped})
}

func (h *Handlers) Bumps(w http.ResponseWriter, r *http.Request) {
	snap, err := h.board.Snapshot(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"assignment": snap.Assignment,
		"matrix":     matrix.Build(snap.Golfers, snap.Holes, snap.Assignment),
	})
}

// ExportCourse writes the course as hole,difficulty rows in storage order, so
// the difficulty column can be pasted straight back into a bulk update.
func (h *Handlers) ExportCourse(w http.ResponseWriter, r *http.Request) {
	snap, err := h.board.Snapshot(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="course.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"hole", "difficulty"})
	for _, hole := range snap.Holes {
		cw.Write([]string{strconv.Itoa(hole.Number), strconv.Itoa(hole.Difficulty)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error().Err(err).Msg("write course csv")
	}
}

func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.board.Reset(r.Context()); err != nil {
		h.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
