package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/parser"
	"github.com/dgallion1/docproof/internal/validate"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRunner(t *testing.T) *validate.Runner {
	t.Helper()
	c := config.Checker{Lang: "en", Validators: []config.ValidatorConfig{
		{Name: "SentenceLength", Properties: map[string]string{"max_len": "20"}},
	}}
	vs, err := validate.FromChecker(c)
	if err != nil {
		t.Fatalf("FromChecker: %v", err)
	}
	return validate.NewRunner(vs, 2, nil, testLogger())
}

func TestWorker_ProcessCompletes(t *testing.T) {
	w := NewWorker(parser.Options{}, testRunner(t), testLogger())
	job := NewJob("notes.md", []byte("# Title\n\nShort.\n\nThis sentence is far too long to pass.\n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Sentences != 3 || snap.Progress.Sections != 1 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}
	if len(snap.Defects) != 1 || snap.Defects[0].LineNumber() != 5 {
		t.Errorf("expected one defect on line 5, got %v", snap.Defects)
	}
	if job.FileData() != nil {
		t.Error("expected file data to be released")
	}
}

func TestWorker_UnsupportedFormat(t *testing.T) {
	w := NewWorker(parser.Options{}, testRunner(t), testLogger())
	job := NewJob("image.png", []byte{0x89, 'P', 'N', 'G'})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "parsing" {
		t.Errorf("expected failure while parsing, got %s/%s", snap.Status, snap.Phase)
	}
	if len(snap.Progress.Errors) != 1 || !strings.Contains(snap.Progress.Errors[0], "unsupported") {
		t.Errorf("unexpected errors %v", snap.Progress.Errors)
	}
}

func TestWorker_CancelledValidation(t *testing.T) {
	w := NewWorker(parser.Options{}, testRunner(t), testLogger())
	job := NewJob("notes.txt", []byte("Some text."))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.Process(ctx, job)

	if snap := job.Snapshot(); snap.Status != StatusFailed || snap.Phase != "validating" {
		t.Errorf("expected failure while validating, got %s/%s", snap.Status, snap.Phase)
	}
}

func TestOrchestrator_ProcessesSubmittedJobs(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 4, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, parser.Options{}, testRunner(t), testLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("notes.txt", []byte("Fine.\n"))
	if err := o.Submit(job); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for o.GetJob(job.ID).Snapshot().Status != StatusCompleted {
		if time.Now().After(deadline) {
			t.Fatalf("job did not complete, status %s", o.GetJob(job.ID).Snapshot().Status)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	// Not started: nothing drains the queue.
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, parser.Options{}, testRunner(t), testLogger())

	if err := o.Submit(NewJob("a.txt", nil)); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	second := NewJob("b.txt", nil)
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if snap := second.Snapshot(); snap.Status != StatusFailed || snap.Phase != "queue_full" {
		t.Errorf("expected rejected job to be marked failed, got %s/%s", snap.Status, snap.Phase)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
