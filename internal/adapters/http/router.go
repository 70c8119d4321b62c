// Package httpadapter is the UI collaborator surface: it drives one
// submission controller per request and renders the reported status.
package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mkravchenko/receiptdrop/internal/config"
	"github.com/mkravchenko/receiptdrop/internal/core/domain"
	"github.com/mkravchenko/receiptdrop/internal/core/ports"
	"github.com/mkravchenko/receiptdrop/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg      config.Config
	sessions ports.SubmissionSessions
	setup    ports.SetupService
	history  ports.HistoryService
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	sessions ports.SubmissionSessions,
	setup ports.SetupService,
	history ports.HistoryService,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:      cfg,
		sessions: sessions,
		setup:    setup,
		history:  history,
		metrics:  m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/submissions", rt.createSubmission)
	mux.HandleFunc("/v1/submissions/", rt.submissionSubtree)
	mux.HandleFunc("/v1/setup", rt.setupEndpoint)

	var handler http.Handler = mux
	handler = trafficControl(handler, rt.cfg)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) createSubmission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxRequestBytes)

	start := time.Now()
	ctrl := rt.sessions.NewSession()

	var fileBytes int64
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		fileBytes = header.Size
		handle := domain.FileHandle{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		}
		if selErr := ctrl.SelectFile(handle); selErr != nil {
			desc := domain.Describe(selErr)
			writeJSON(w, mapKindToStatus(desc.Kind), submissionResponse{
				Status: domain.Status{Kind: domain.StatusIdle, Err: &desc},
			})
			return
		}
	}

	ctrl.SetEmail(r.FormValue("email"))
	ctrl.SetDescription(r.FormValue("description"))
	ctrl.SetCategory(r.FormValue("category"))
	if remember, err := strconv.ParseBool(r.FormValue("remember_email")); err == nil {
		ctrl.SetRememberEmail(remember)
	}

	st := ctrl.Submit(r.Context())

	if rt.metrics != nil {
		errorKind := ""
		if st.Err != nil {
			errorKind = st.Err.Kind
		}
		rt.metrics.RecordUpload(serviceName, string(st.Kind), errorKind, fileBytes, time.Since(start))
	}

	resp := submissionResponse{Status: st, SetupRequired: ctrl.SetupRequired()}
	switch st.Kind {
	case domain.StatusSucceeded:
		writeJSON(w, http.StatusCreated, resp)
	default:
		kind := domain.KindInternal
		if st.Err != nil {
			kind = st.Err.Kind
		}
		writeJSON(w, mapKindToStatus(kind), resp)
	}
}

type submissionResponse struct {
	Status        domain.Status `json:"status"`
	SetupRequired bool          `json:"setup_required,omitempty"`
}

func (rt *Router) submissionSubtree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/v1/submissions/")
	if rest == "export" {
		rt.exportSubmissions(w, r)
		return
	}
	rt.getSubmission(w, r, rest)
}

func (rt *Router) getSubmission(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "submission id is required"})
		return
	}
	rec, err := rt.history.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (rt *Router) exportSubmissions(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := rt.history.ExportXLSX(r.Context(), &buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

func (rt *Router) setupEndpoint(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg := rt.setup.Resolve(r.Context())
		writeJSON(w, http.StatusOK, setupResponse{
			CloudName:       cfg.CloudName,
			UploadPreset:    redactPreset(cfg.UploadPreset),
			Source:          cfg.Source,
			RememberedEmail: rt.setup.RememberedEmail(r.Context()),
			SetupRequired:   !cfg.Complete(),
		})
	case http.MethodPost:
		var req struct {
			CloudName    string `json:"cloud_name"`
			UploadPreset string `json:"upload_preset"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		if err := rt.setup.Persist(r.Context(), req.CloudName, req.UploadPreset); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

type setupResponse struct {
	CloudName       string              `json:"cloud_name"`
	UploadPreset    string              `json:"upload_preset"`
	Source          domain.ConfigSource `json:"source"`
	RememberedEmail string              `json:"remembered_email,omitempty"`
	SetupRequired   bool                `json:"setup_required"`
}

// redactPreset keeps enough of the tail for the user to recognize which
// preset is active without exposing the whole value.
func redactPreset(preset string) string {
	if preset == "" {
		return ""
	}
	if len(preset) <= 4 {
		return "****"
	}
	return "****" + preset[len(preset)-4:]
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	desc := domain.Describe(err)
	writeJSON(w, mapKindToStatus(desc.Kind), map[string]any{"error": desc})
}
