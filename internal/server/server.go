package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/resistlab/amrburden/docs" // swagger docs registration
	"github.com/resistlab/amrburden/internal/app"
	"github.com/resistlab/amrburden/internal/artifact"
	"github.com/resistlab/amrburden/internal/catalog"
	"github.com/resistlab/amrburden/internal/interfaces"
	"github.com/resistlab/amrburden/internal/logging"
	"github.com/resistlab/amrburden/internal/model"
	"github.com/resistlab/amrburden/internal/registry"
	"github.com/resistlab/amrburden/internal/report"
	"github.com/resistlab/amrburden/internal/scoring"

	_ "modernc.org/sqlite" // SQLite driver
)

// MaxUploadSize bounds uploaded abundance tables.
const MaxUploadSize = 32 << 20 // 32MB

// Server is the HTTP + WebSocket API surface for the burden scorer.
type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
	storageDB    *sql.DB
	predictor    interfaces.Predictor
}

// NewServer loads the catalog and trained artifacts, opens the batch store
// and wires the router. Artifact problems fail here, at startup, never
// mid-request.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	cat, err := catalog.Load(cfg.AppConfig.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading gene catalog: %w", err)
	}

	scaler, err := artifact.LoadScaler(cfg.AppConfig.ArtifactCfg.ScalerPath)
	if err != nil {
		return nil, fmt.Errorf("loading scaler artifact: %w", err)
	}

	predictor, err := artifact.NewPredictor(cfg.AppConfig.ArtifactCfg, cat.Size(), logger)
	if err != nil {
		return nil, fmt.Errorf("loading predictor artifact: %w", err)
	}

	pipe, err := scoring.NewPipeline(cat, scaler, predictor, cfg.AppConfig.ScoringCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.AppConfig.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("opening batch store: %w", err)
	}
	// Serialize access; the in-memory DSN shares one cache across conns.
	db.SetMaxOpenConns(1)

	reg, err := registry.NewRegistry(db, logger)
	if err != nil {
		return nil, fmt.Errorf("creating registry: %w", err)
	}

	orch := app.NewOrchestrator(cfg.AppConfig, cat, pipe, reg, logger)

	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		router:       chi.NewRouter(),
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The UI is served from this same process.
				return true
			},
		},
		storageDB: db,
		predictor: predictor,
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests,
// the CLI, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/batches", s.handleUploadBatch)
		r.Get("/batches", s.handleListBatches)
		r.Get("/batches/{batchID}", s.handleGetBatch)
		r.Get("/batches/{batchID}/export", s.handleExportBatch)
		r.Get("/batches/{batchID}/reports/{sampleID}/export", s.handleExportSampleReport)

		r.Get("/genes", s.handleListGenes)
		r.Get("/genes/download", s.handleDownloadGeneList)

		r.Get("/jobs", s.handleListJobs)
		r.Get("/jobs/{jobID}", s.handleGetJob)
		r.Delete("/jobs/{jobID}", s.handleCancelJob)
	})

	// WebSocket for job progress
	r.Get("/ws/jobs/{jobID}", s.handleJobWS)

	r.Get("/swagger/*", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("http_request",
		logging.Field{Key: "method", Value: r.Method},
		logging.Field{Key: "path", Value: r.URL.Path})
	s.router.ServeHTTP(w, r)
}

// Close shuts down the batch store and the model runtime.
func (s *Server) Close() {
	if s.storageDB != nil {
		s.storageDB.Close()
	}
	if s.predictor != nil {
		if err := s.predictor.Close(); err != nil {
			s.logger.Warn("closing predictor", logging.Field{Key: "error", Value: err.Error()})
		}
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	addr := s.cfg.ListenAddr
	if addr == "" {
		addr = s.cfg.AppConfig.ListenAddr
	}
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// handleHealth godoc
// @Summary Liveness check
// @Success 200 {string} string "OK"
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// handleUploadBatch godoc
// @Summary Upload an abundance table and start a score job
// @Accept multipart/form-data
// @Param file formData file true "CSV table: first column sample ID, remaining columns gene abundances"
// @Success 202 {object} UploadAccepted
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} MissingGenesResponse
// @Router /api/batches [post]
func (s *Server) handleUploadBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	batch, samples, err := s.orchestrator.IngestTable(r.Context(), header.Filename, file)
	if err != nil {
		var missingErr *model.MissingFeaturesError
		if errors.As(err, &missingErr) {
			s.logger.Warn("upload rejected: missing genes",
				logging.Field{Key: "filename", Value: header.Filename},
				logging.Field{Key: "missing_count", Value: len(missingErr.Missing)})
			writeJSON(w, http.StatusUnprocessableEntity, MissingGenesResponse{
				Error:        missingErr.Error(),
				MissingGenes: missingErr.Missing,
				GeneListPath: "/api/genes/download",
			})
			return
		}
		s.logger.Warn("upload rejected", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The job must outlive this request.
	job, err := s.orchestrator.StartScoreJob(context.Background(), batch.ID, header.Filename, samples)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("started score job",
		logging.Field{Key: "job_id", Value: job.ID},
		logging.Field{Key: "batch_id", Value: batch.ID},
		logging.Field{Key: "samples", Value: len(samples)})
	writeJSON(w, http.StatusAccepted, UploadAccepted{Batch: batch, JobID: job.ID})
}

// handleListBatches godoc
// @Summary List scored batches
// @Success 200 {array} model.Batch
// @Router /api/batches [get]
func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := s.orchestrator.Registry().ListBatches(r.Context())
	if err != nil {
		s.logger.Warn("listing batches", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

// handleGetBatch godoc
// @Summary Fetch one batch with its reports
// @Param batchID path string true "batch ID"
// @Success 200 {object} model.Batch
// @Failure 404 {object} ErrorResponse
// @Router /api/batches/{batchID} [get]
func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	batch, err := s.orchestrator.Registry().GetBatch(r.Context(), batchID)
	if errors.Is(err, registry.ErrBatchNotFound) {
		writeError(w, http.StatusNotFound, "batch not found")
		return
	}
	if err != nil {
		s.logger.Warn("getting batch", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// handleExportBatch godoc
// @Summary Download a batch as CSV or JSON
// @Param batchID path string true "batch ID"
// @Param format query string false "csv or json (default json)"
// @Produce json
// @Success 200 {string} string "export payload"
// @Failure 404 {object} ErrorResponse
// @Router /api/batches/{batchID}/export [get]
func (s *Server) handleExportBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	reports, err := s.orchestrator.Registry().ListReports(r.Context(), batchID)
	if err != nil {
		s.logger.Warn("listing reports for export", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(reports) == 0 {
		if _, err := s.orchestrator.Registry().GetBatch(r.Context(), batchID); errors.Is(err, registry.ErrBatchNotFound) {
			writeError(w, http.StatusNotFound, "batch not found")
			return
		}
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="amr_results_all.csv"`)
		if err := report.WriteCSV(w, reports); err != nil {
			s.logger.Warn("writing CSV export", logging.Field{Key: "error", Value: err.Error()})
		}
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="amr_results_all.json"`)
		if err := report.WriteJSON(w, reports); err != nil {
			s.logger.Warn("writing JSON export", logging.Field{Key: "error", Value: err.Error()})
		}
	default:
		writeError(w, http.StatusBadRequest, "format must be csv or json")
	}
}

// handleExportSampleReport godoc
// @Summary Download one sample's report as JSON
// @Param batchID path string true "batch ID"
// @Param sampleID path string true "sample ID"
// @Produce json
// @Success 200 {object} model.SampleReport
// @Failure 404 {object} ErrorResponse
// @Router /api/batches/{batchID}/reports/{sampleID}/export [get]
func (s *Server) handleExportSampleReport(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	sampleID := chi.URLParam(r, "sampleID")

	reports, err := s.orchestrator.Registry().ListReports(r.Context(), batchID)
	if err != nil {
		s.logger.Warn("listing reports for sample export", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, rep := range reports {
		if rep.SampleID != sampleID {
			continue
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "amr_results_"+sampleID+".json"))
		if err := report.WriteSampleJSON(w, rep); err != nil {
			s.logger.Warn("writing sample export", logging.Field{Key: "error", Value: err.Error()})
		}
		return
	}

	if _, err := s.orchestrator.Registry().GetBatch(r.Context(), batchID); errors.Is(err, registry.ErrBatchNotFound) {
		writeError(w, http.StatusNotFound, "batch not found")
		return
	}
	writeError(w, http.StatusNotFound, "sample report not found")
}

// handleListGenes godoc
// @Summary List the required gene catalog
// @Success 200 {array} GeneInfo
// @Router /api/genes [get]
func (s *Server) handleListGenes(w http.ResponseWriter, r *http.Request) {
	genes := s.orchestrator.Catalog().Genes()
	out := make([]GeneInfo, len(genes))
	for i, g := range genes {
		out[i] = GeneInfo{Name: g.Name, Mechanism: string(g.Mechanism)}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDownloadGeneList godoc
// @Summary Download the required gene list as plain text
// @Produce plain
// @Success 200 {string} string "one gene per line"
// @Router /api/genes/download [get]
func (s *Server) handleDownloadGeneList(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.orchestrator.Catalog().(*catalog.Catalog)
	if !ok {
		writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", `attachment; filename="required_genes.txt"`)
	w.Write([]byte(cat.GeneListText()))
}

// handleListJobs godoc
// @Summary List score jobs
// @Success 200 {array} app.Job
// @Router /api/jobs [get]
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.orchestrator.ListJobs())
}

// handleGetJob godoc
// @Summary Fetch one job
// @Param jobID path string true "job ID"
// @Success 200 {object} app.Job
// @Failure 404 {object} ErrorResponse
// @Router /api/jobs/{jobID} [get]
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// handleCancelJob godoc
// @Summary Cancel a running job
// @Param jobID path string true "job ID"
// @Success 204
// @Router /api/jobs/{jobID} [delete]
func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	s.orchestrator.CancelJob(jobID)
	s.logger.Info("canceled job", logging.Field{Key: "job_id", Value: jobID})
	writeJSON(w, http.StatusNoContent, nil)
}

// handleJobWS streams job events over a WebSocket until the job finishes.
func (s *Server) handleJobWS(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	_ = conn.WriteJSON(job)

	for ev := range job.Events {
		if err := conn.WriteJSON(ev); err != nil {
			// Assume client disconnected; cancel job
			s.orchestrator.CancelJob(job.ID)
			return
		}
	}
}
