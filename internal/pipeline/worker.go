package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docproof/internal/parser"
	"github.com/dgallion1/docproof/internal/validate"
)

// Worker processes a single document job.
type Worker struct {
	opts   parser.Options
	runner *validate.Runner
	log    *slog.Logger
}

func NewWorker(opts parser.Options, runner *validate.Runner, log *slog.Logger) *Worker {
	return &Worker{
		opts:   opts,
		runner: runner,
		log:    log,
	}
}

// Process parses the job's document and runs the validators over it.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	// Release the upload when the job ends.
	defer job.SetFileData(nil)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.opts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	sentences := len(doc.Sentences())
	job.SetDocumentSize(len(doc.AllSections()), sentences)
	log.Info("parsed document", "sections", len(doc.AllSections()), "sentences", sentences, "rules", len(doc.Rules()))

	// Phase 2: Validate
	job.SetStatus(StatusValidating, "validating")
	defects, err := w.runner.Run(ctx, doc)
	if err != nil {
		log.Error("validation failed", "error", err)
		job.AddError(fmt.Sprintf("validate: %s", err))
		job.SetStatus(StatusFailed, "validating")
		return
	}
	job.SetDefects(defects)
	log.Info("validation complete", "defects", len(defects))

	job.SetStatus(StatusCompleted, "done")
}
