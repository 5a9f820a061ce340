package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"colguard/adapters/report"
	"colguard/adapters/tabular"
	"colguard/app"
	"colguard/domain/anomaly"
	"colguard/domain/core"
	"colguard/domain/table"
	"colguard/internal/profiling"
)

const maxUploadBytes = 64 << 20

// detectResponse is the JSON shape of a completed detection run
type detectResponse struct {
	Summary  *anomaly.Summary             `json:"summary"`
	Profiles map[string]profiling.Profile `json:"profiles,omitempty"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDetect runs detection on an uploaded dataset and returns the summary
// and column profiles as JSON.
func (a *App) handleDetect(w http.ResponseWriter, r *http.Request) {
	runReport, _, ok := a.runDetection(w, r)
	if !ok {
		return
	}
	a.persist(r, runReport)
	writeJSON(w, http.StatusOK, detectResponse{
		Summary:  runReport.Summary,
		Profiles: runReport.Profiles,
	})
}

// handleDetectDataset returns the augmented dataset itself as a CSV download
func (a *App) handleDetectDataset(w http.ResponseWriter, r *http.Request) {
	runReport, tbl, ok := a.runDetection(w, r)
	if !ok {
		return
	}
	a.persist(r, runReport)

	filename := tbl.Name + tabular.OutputSuffix + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := tabular.WriteCSV(tbl, w); err != nil {
		log.Printf("[UI] failed to stream dataset: %v", err)
	}
}

// handleDetectReport returns the run report rendered as HTML
func (a *App) handleDetectReport(w http.ResponseWriter, r *http.Request) {
	runReport, _, ok := a.runDetection(w, r)
	if !ok {
		return
	}
	a.persist(r, runReport)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.HTML(runReport)); err != nil {
		log.Printf("[UI] failed to write report: %v", err)
	}
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if a.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "run history is not configured")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	summaries, err := a.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if a.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "run history is not configured")
		return
	}
	id := core.RunID(chi.URLParam(r, "id"))
	summary, err := a.runs.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// runDetection parses the multipart request (file field "dataset", JSON field
// "pairs") and executes the run. On failure it writes the error response and
// returns ok=false.
func (a *App) runDetection(w http.ResponseWriter, r *http.Request) (*app.RunReport, *table.Table, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart request: %v", err))
		return nil, nil, false
	}

	specs, err := parsePairs(r.FormValue("pairs"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	path, cleanup, err := a.saveUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	defer cleanup()

	tbl, err := a.reader.Read(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	runReport, err := a.detector.Run(r.Context(), tbl, specs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	return runReport, tbl, true
}

func parsePairs(raw string) ([]anomaly.PairSpec, error) {
	// Missing pair config is a no-op run, not an error
	if raw == "" {
		return nil, nil
	}
	var specs []anomaly.PairSpec
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, fmt.Errorf("invalid pairs field: %w", err)
	}
	return specs, nil
}

// saveUpload spools the uploaded dataset to a temp file so the tabular reader
// can sniff the format from the extension.
func (a *App) saveUpload(r *http.Request) (string, func(), error) {
	file, header, err := r.FormFile("dataset")
	if err != nil {
		return "", nil, fmt.Errorf("missing dataset file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".csv"
	}
	base := header.Filename[:len(header.Filename)-len(ext)]

	dir, err := os.MkdirTemp("", "colguard-upload-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, base+ext)
	out, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

func (a *App) persist(r *http.Request, runReport *app.RunReport) {
	if a.runs == nil {
		return
	}
	if err := a.runs.SaveRun(r.Context(), runReport.Summary); err != nil {
		// History is best-effort; the response already has the summary
		log.Printf("[UI] failed to persist run %s: %v", runReport.Summary.RunID, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[UI] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
