package validate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/suppress"
)

// Runner applies a fixed set of validators to documents. It is safe for
// concurrent use.
type Runner struct {
	validators []Validator
	limit      int
	stats      *Stats
	log        *slog.Logger
}

// NewRunner returns a runner that executes at most limit validators at
// once. stats and log may be nil.
func NewRunner(validators []Validator, limit int, stats *Stats, log *slog.Logger) *Runner {
	if limit <= 0 {
		limit = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		validators: append([]Validator(nil), validators...),
		limit:      limit,
		stats:      stats,
		log:        log,
	}
}

// Validators returns the names of the configured validators.
func (r *Runner) Validators() []string {
	names := make([]string, len(r.validators))
	for i, v := range r.validators {
		names[i] = v.Name()
	}
	return names
}

// Run validates every sentence of doc, drops the defects silenced by the
// document's @suppress directives and returns the rest ordered by position.
func (r *Runner) Run(ctx context.Context, doc *doctree.Document) ([]Defect, error) {
	sentences := doc.Sentences()
	results := make([][]Defect, len(r.validators))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, v := range r.validators {
		g.Go(func() error {
			start := time.Now()
			out, err := runOne(ctx, v, sentences)
			if err != nil {
				return err
			}
			results[i] = out
			if r.stats != nil {
				r.stats.Record(v.Name(), time.Since(start).Milliseconds(), len(out))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Defect
	for _, out := range results {
		all = append(all, out...)
	}
	found := len(all)
	all = suppress.Filter(doc, all)
	sortDefects(all)

	r.log.Debug("validated document",
		"file", doc.FileName(),
		"sentences", len(sentences),
		"defects", len(all),
		"suppressed", found-len(all),
	)
	return all, nil
}

func runOne(ctx context.Context, v Validator, sentences []*doctree.Sentence) (out []Defect, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("validator %s panicked: %v", v.Name(), p)
		}
	}()
	for _, s := range sentences {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, v.Validate(s)...)
	}
	return out, nil
}

// sortDefects orders by position, then validator name. The sort is stable
// so one validator's defects at the same position keep their order.
func sortDefects(defects []Defect) {
	sort.SliceStable(defects, func(i, j int) bool {
		if c := defects[i].Position().Compare(defects[j].Position()); c != 0 {
			return c < 0
		}
		return defects[i].Validator < defects[j].Validator
	})
}
