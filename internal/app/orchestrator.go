package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resistlab/amrburden/internal/dataset"
	"github.com/resistlab/amrburden/internal/interfaces"
	"github.com/resistlab/amrburden/internal/logging"
	"github.com/resistlab/amrburden/internal/model"
	"github.com/resistlab/amrburden/internal/registry"
	"github.com/resistlab/amrburden/internal/report"
	"github.com/resistlab/amrburden/internal/scoring"
)

type JobEventType string

const (
	JobEventStatus   JobEventType = "status"
	JobEventProgress JobEventType = "progress"
	JobEventSample   JobEventType = "sample"
	JobEventResult   JobEventType = "result"
)

// JobEvent is one progress message streamed to WebSocket subscribers.
type JobEvent struct {
	JobID string       `json:"job_id"`
	Type  JobEventType `json:"type"`

	// For status changes
	Status JobStatus `json:"status,omitempty"`
	Error  string    `json:"error,omitempty"`

	// For progress
	Processed int `json:"processed,omitempty"`
	Total     int `json:"total,omitempty"`

	// For per-sample results
	Report   *model.SampleReport   `json:"report,omitempty"`
	Excluded *model.ExcludedSample `json:"excluded,omitempty"`
}

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobDone     JobStatus = "done"
	JobFailed   JobStatus = "failed"
	JobCanceled JobStatus = "canceled"
)

// Job tracks one asynchronous batch-scoring run.
type Job struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"` // always "score" for now
	BatchID   string        `json:"batch_id"`
	Filename  string        `json:"filename"`
	Status    JobStatus     `json:"status"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Events    chan JobEvent `json:"-"`

	Summary *model.BatchSummary `json:"summary,omitempty"`
}

// Orchestrator owns the scoring pipeline, the batch registry and the
// lifecycle of score jobs. The pipeline and catalog are read-only, so any
// number of jobs and sample workers may share them.
type Orchestrator struct {
	cfg      *Config
	cat      interfaces.Catalog
	pipeline *scoring.Pipeline
	registry *registry.Registry
	logger   logging.Logger

	jobsMu     sync.Mutex
	jobs       map[string]*Job
	jobCancels map[string]context.CancelFunc
}

// NewOrchestrator ties together config, catalog, pipeline, registry and
// logger.
func NewOrchestrator(cfg *Config, cat interfaces.Catalog, pipe *scoring.Pipeline, reg *registry.Registry, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Orchestrator{
		cfg:      cfg,
		cat:      cat,
		pipeline: pipe,
		registry: reg,
		logger:   logger,
	}
}

// Catalog exposes the gene reference for the API layer.
func (o *Orchestrator) Catalog() interfaces.Catalog {
	return o.cat
}

// Registry exposes the batch store for the API layer.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

// IngestTable parses and validates an uploaded table and creates its batch
// row. Validation failures (malformed CSV, missing genes) are returned
// synchronously; no job is started and no batch row is created for them.
func (o *Orchestrator) IngestTable(ctx context.Context, filename string, r io.Reader) (*model.Batch, []model.SampleInput, error) {
	samples, err := dataset.Read(r, o.cat)
	if err != nil {
		return nil, nil, err
	}
	batch, err := o.registry.CreateBatch(ctx, filename)
	if err != nil {
		return nil, nil, err
	}
	return batch, samples, nil
}

func (o *Orchestrator) ensureJobMaps() {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if o.jobs == nil {
		o.jobs = make(map[string]*Job)
	}
	if o.jobCancels == nil {
		o.jobCancels = make(map[string]context.CancelFunc)
	}
}

func (o *Orchestrator) emitJobEvent(jobID string, ev JobEvent) {
	o.jobsMu.Lock()
	job, ok := o.jobs[jobID]
	o.jobsMu.Unlock()
	if !ok || job == nil || job.Events == nil {
		return
	}

	// Non-blocking send; drop if buffer is full.
	select {
	case job.Events <- ev:
	default:
	}
}

func (o *Orchestrator) setJobStatus(jobID string, status JobStatus, errMsg string) {
	o.jobsMu.Lock()
	if j, ok := o.jobs[jobID]; ok {
		j.Status = status
		j.Error = errMsg
	}
	o.jobsMu.Unlock()
	o.emitJobEvent(jobID, JobEvent{JobID: jobID, Type: JobEventStatus, Status: status, Error: errMsg})
}

// StartScoreJob scores the validated samples of a batch asynchronously.
// Rows are distributed across a worker pool; each sample's pipeline is
// independent, so one corrupted row never disturbs its neighbours.
func (o *Orchestrator) StartScoreJob(ctx context.Context, batchID, filename string, samples []model.SampleInput) (*Job, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("batch %s has no samples to score", batchID)
	}
	o.ensureJobMaps()

	job := &Job{
		ID:        uuid.New().String(),
		Type:      "score",
		BatchID:   batchID,
		Filename:  filename,
		Status:    JobPending,
		StartedAt: time.Now().UTC(),
		Events:    make(chan JobEvent, len(samples)+16),
	}

	o.jobsMu.Lock()
	o.jobs[job.ID] = job
	o.jobsMu.Unlock()

	jobCtx, cancel := context.WithCancel(ctx)
	o.jobsMu.Lock()
	o.jobCancels[job.ID] = cancel
	o.jobsMu.Unlock()

	o.emitJobEvent(job.ID, JobEvent{JobID: job.ID, Type: JobEventStatus, Status: JobPending})

	go func() {
		defer func() {
			o.jobsMu.Lock()
			j := o.jobs[job.ID]
			if j != nil {
				j.EndedAt = time.Now().UTC()
			}
			delete(o.jobCancels, job.ID)
			o.jobsMu.Unlock()

			// Close events channel so websocket loops terminate cleanly.
			if j != nil && j.Events != nil {
				close(j.Events)
			}
		}()

		o.setJobStatus(job.ID, JobRunning, "")

		summary, err := o.scoreBatch(jobCtx, job, samples)
		switch {
		case jobCtx.Err() != nil:
			o.setJobStatus(job.ID, JobCanceled, jobCtx.Err().Error())
		case err != nil:
			o.setJobStatus(job.ID, JobFailed, err.Error())
		default:
			o.jobsMu.Lock()
			if j, ok := o.jobs[job.ID]; ok {
				j.Status = JobDone
				j.Summary = summary
			}
			o.jobsMu.Unlock()
			o.emitJobEvent(job.ID, JobEvent{JobID: job.ID, Type: JobEventResult, Status: JobDone})
		}
	}()

	return job, nil
}

// scoreBatch runs the worker pool and persists outcomes in input order.
func (o *Orchestrator) scoreBatch(ctx context.Context, job *Job, samples []model.SampleInput) (*model.BatchSummary, error) {
	type outcome struct {
		report   *model.SampleReport
		excluded *model.ExcludedSample
	}

	concurrency := o.cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(samples) {
		concurrency = len(samples)
	}

	outcomes := make([]outcome, len(samples))
	indexes := make(chan int)
	var wg sync.WaitGroup

	var done int
	var doneMu sync.Mutex

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				s := samples[i]
				rep, err := o.pipeline.ScoreSample(s)
				if err != nil {
					// Contract violations get a fatal diagnostic; bad
					// abundances are an expected per-sample condition.
					o.logSampleFailure(s.SampleID, err)
					outcomes[i] = outcome{excluded: &model.ExcludedSample{
						SampleID: s.SampleID,
						Reason:   err.Error(),
					}}
				} else {
					r := rep
					outcomes[i] = outcome{report: &r}
				}

				doneMu.Lock()
				done++
				n := done
				doneMu.Unlock()
				o.emitJobEvent(job.ID, JobEvent{
					JobID:     job.ID,
					Type:      JobEventProgress,
					Processed: n,
					Total:     len(samples),
				})
			}
		}()
	}

feed:
	for i := range samples {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		reports  []model.SampleReport
		excluded []model.ExcludedSample
	)
	for i, out := range outcomes {
		switch {
		case out.report != nil:
			if err := o.registry.StoreReport(ctx, job.BatchID, i, *out.report); err != nil {
				return nil, err
			}
			reports = append(reports, *out.report)
			o.emitJobEvent(job.ID, JobEvent{JobID: job.ID, Type: JobEventSample, Report: out.report})
		case out.excluded != nil:
			if err := o.registry.StoreExcluded(ctx, job.BatchID, i, *out.excluded); err != nil {
				return nil, err
			}
			excluded = append(excluded, *out.excluded)
			o.emitJobEvent(job.ID, JobEvent{JobID: job.ID, Type: JobEventSample, Excluded: out.excluded})
		}
	}

	summary := report.Summarize(reports, excluded)
	if err := o.registry.SetSummary(ctx, job.BatchID, summary); err != nil {
		return nil, err
	}

	o.logger.Info("batch scored",
		logging.Field{Key: "batch_id", Value: job.BatchID},
		logging.Field{Key: "samples", Value: summary.SampleCount},
		logging.Field{Key: "excluded", Value: summary.ExcludedCount},
		logging.Field{Key: "high_risk", Value: summary.HighCount})
	return &summary, nil
}

func (o *Orchestrator) logSampleFailure(sampleID string, err error) {
	var abundanceErr *model.InvalidAbundanceError
	if errors.As(err, &abundanceErr) {
		o.logger.Warn("sample excluded: invalid abundance",
			logging.Field{Key: "sample_id", Value: sampleID},
			logging.Field{Key: "gene", Value: abundanceErr.Gene},
			logging.Field{Key: "value", Value: abundanceErr.Value})
		return
	}
	o.logger.Error("sample halted: scoring contract violation",
		logging.Field{Key: "sample_id", Value: sampleID},
		logging.Field{Key: "error", Value: err.Error()})
}

func (o *Orchestrator) CancelJob(jobID string) {
	o.jobsMu.Lock()
	cancel := o.jobCancels[jobID]
	o.jobsMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// GetJob returns a snapshot of the job. The job goroutine keeps mutating the
// stored Job under jobsMu, so callers get a copy they can read and encode
// without holding the lock. The Events channel is shared; everything else is
// detached.
func (o *Orchestrator) GetJob(jobID string) *Job {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	return snapshotJob(o.jobs[jobID])
}

// ListJobs returns snapshots of all known jobs.
func (o *Orchestrator) ListJobs() []*Job {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	out := make([]*Job, 0, len(o.jobs))
	for _, j := range o.jobs {
		out = append(out, snapshotJob(j))
	}
	return out
}

func snapshotJob(j *Job) *Job {
	if j == nil {
		return nil
	}
	cp := *j
	if j.Summary != nil {
		s := *j.Summary
		cp.Summary = &s
	}
	return &cp
}
