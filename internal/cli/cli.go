// Package cli implements the docproof command line.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/doctree"
	"github.com/dgallion1/docproof/internal/parser"
	"github.com/dgallion1/docproof/internal/tokenizer"
	"github.com/dgallion1/docproof/internal/validate"
)

// errDefectsFound makes check exit with status 1 without printing an error.
var errDefectsFound = errors.New("defects found")

// Execute runs the CLI application.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := NewRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errDefectsFound):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docproof",
		Short:         "Proofread documents against configurable rules",
		Long:          "docproof splits documents into sections, paragraphs and sentences and reports rule violations with exact line and column positions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("verbose", false, "Log debug output to stderr")

	root.AddCommand(checkCmd())
	root.AddCommand(parseCmd())
	return root
}

type checkOptions struct {
	conf    string
	lang    string
	variant string
	format  string
	limit   int
}

func checkCmd() *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check <files...>",
		Short: "Validate documents and report defects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without --lang the checker config decides.
			if !cmd.Flags().Changed("lang") {
				opts.lang = ""
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), newLogger(cmd), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.conf, "conf", "", "Checker XML config (default $DOCPROOF_CONFIG or built-in)")
	cmd.Flags().StringVar(&opts.lang, "lang", "en", "Document language, overrides the config")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "Symbol table variant (zenkaku or hankaku for ja)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Validators run at once (default $MAX_CONCURRENT_VALIDATORS)")
	return cmd
}

func parseCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the sentences, positions and tokens of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, _ := cmd.Flags().GetString("lang")
			doc, err := parseFile(args[0], parser.Options{Symbols: config.DefaultChecker(lang, "").SymbolTable()})
			if err != nil {
				return err
			}
			return printDocument(cmd.OutOrStdout(), doc, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().String("lang", "en", "Document language")
	return cmd
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

type fileResult struct {
	File    string            `json:"file"`
	Defects []validate.Defect `json:"defects"`
}

func runCheck(ctx context.Context, out, errOut io.Writer, log *slog.Logger, files []string, opts checkOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	start := time.Now()

	cfg := config.Load()
	if opts.conf != "" {
		cfg.CheckerConfigPath = opts.conf
	}
	if opts.limit > 0 {
		cfg.MaxConcurrentValidators = opts.limit
	}
	checker, err := cfg.Checker()
	if err != nil {
		return err
	}
	if opts.lang != "" {
		checker.Lang = opts.lang
	}
	if opts.variant != "" {
		checker.Variant = opts.variant
	}

	validators, err := validate.FromChecker(checker)
	if err != nil {
		return err
	}
	runner := validate.NewRunner(validators, cfg.MaxConcurrentValidators, nil, log)
	symbols := checker.SymbolTable()
	popts := parser.Options{
		Symbols:           symbols,
		Tokenizer:         tokenizer.ForLanguage(symbols.Language()),
		FallbackPdftotext: cfg.PDFFallbackPdftotext,
	}

	var (
		results   []fileResult
		total     int
		sentences int
		bytesRead uint64
	)
	for _, file := range files {
		if info, err := os.Stat(file); err == nil {
			bytesRead += uint64(info.Size())
		}
		doc, err := parseFile(file, popts)
		if err != nil {
			return err
		}
		sentences += len(doc.Sentences())

		defects, err := runner.Run(ctx, doc)
		if err != nil {
			return fmt.Errorf("validate %s: %w", file, err)
		}
		if defects == nil {
			defects = []validate.Defect{}
		}
		total += len(defects)
		results = append(results, fileResult{File: file, Defects: defects})
	}

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			for _, d := range r.Defects {
				pos := d.Position()
				fmt.Fprintf(out, "%s:%d:%d: [%s] %s: %s\n", r.File, pos.Line, pos.Offset, d.Severity, d.Validator, d.Message)
			}
		}
	}

	fmt.Fprintf(errOut, "Checked %s %s (%s, %s sentences) with %s: %s %s in %s\n",
		humanize.Comma(int64(len(files))), plural(len(files), "file", "files"),
		humanize.Bytes(bytesRead),
		humanize.Comma(int64(sentences)),
		strings.Join(runner.Validators(), ", "),
		humanize.Comma(int64(total)), plural(total, "defect", "defects"),
		time.Since(start).Round(time.Millisecond),
	)
	if total > 0 {
		return errDefectsFound
	}
	return nil
}

func parseFile(file string, opts parser.Options) (*doctree.Document, error) {
	p, err := parser.ForFile(file, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	doc, err := p.Parse(f, file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return doc, nil
}

func printDocument(out io.Writer, doc *doctree.Document, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "text":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	for _, sec := range doc.Sections() {
		printSection(out, sec, 0)
	}
	for _, r := range doc.Rules() {
		fmt.Fprintf(out, "rule %s lines [%d,%d) %v\n", r.Kind, r.Line, r.LineLimit, r.Params())
	}
	return nil
}

func printSection(out io.Writer, sec *doctree.Section, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(out, "%ssection level=%d %q\n", indent, sec.Level(), sec.HeaderContent())
	for _, s := range sec.Sentences(false) {
		fmt.Fprintf(out, "%s  %d:%d %s\n", indent, s.LineNumber(), s.StartColumn(), s.Content())
		for _, tok := range s.Tokens() {
			fmt.Fprintf(out, "%s    %s %s %v\n", indent, tok.Start(), tok.Surface(), tok.Tags())
		}
	}
	for _, sub := range sec.Subsections() {
		printSection(out, sub, depth+1)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
