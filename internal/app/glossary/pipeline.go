package glossary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorsicleo/hjp-tools/internal/domain"
	"github.com/gorsicleo/hjp-tools/pkg/ctxutil"
)

// FileResult holds the outcome of parsing a single input file.
type FileResult struct {
	Path         string
	LanguageList bool
	Stats        Stats
	Duration     time.Duration
}

// Result is the merged table plus per-file statistics, in input order.
type Result struct {
	Table *domain.Table
	Files []FileResult
}

// Malformed returns the number of lines dropped as unparseable.
func (r Result) Malformed() int {
	n := 0
	for _, f := range r.Files {
		n += f.Stats.MalformedLines
	}
	return n
}

// Parsed returns the number of entries read before merging.
func (r Result) Parsed() int {
	n := 0
	for _, f := range r.Files {
		n += f.Stats.ParsedLines
	}
	return n
}

// Pipeline reads glossary files in order and merges them into one table.
type Pipeline struct {
	log             *slog.Logger
	rules           Rules
	reportMalformed bool
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, rules Rules, reportMalformed bool) *Pipeline {
	return &Pipeline{
		log:             log,
		rules:           rules,
		reportMalformed: reportMalformed,
	}
}

// Run parses, classifies and merges every input in the given order. Input
// order decides which meaning comes first and which equal-priority kind is
// kept. The first unreadable input aborts the run.
func (p *Pipeline) Run(ctx context.Context, inputs []string) (Result, error) {
	log := p.log
	if id, ok := ctxutil.RunIDFromCtx(ctx); ok {
		log = log.With(slog.String("run_id", id.String()))
	}

	result := Result{
		Table: domain.NewTable(),
		Files: make([]FileResult, 0, len(inputs)),
	}

	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("glossary: %w", err)
		}

		start := time.Now()
		text, err := ReadSource(path)
		if err != nil {
			return Result{}, fmt.Errorf("glossary: %w", err)
		}

		fr := FileResult{Path: path, LanguageList: p.rules.IsLanguageList(path)}

		var entries []domain.Entry
		entries, fr.Stats = p.rules.Scan(text)
		for _, e := range entries {
			kind := p.rules.Classify(e.Abbreviation, e.Meaning, fr.LanguageList)
			result.Table.Merge(e.Abbreviation, kind, e.Meaning)
		}
		fr.Duration = time.Since(start)
		result.Files = append(result.Files, fr)

		p.logFile(log, fr)
	}

	log.Info("glossary merged",
		slog.Int("files", len(result.Files)),
		slog.Int("parsed", result.Parsed()),
		slog.Int("keys", result.Table.Len()),
	)
	return result, nil
}

func (p *Pipeline) logFile(log *slog.Logger, fr FileResult) {
	attrs := []any{
		slog.String("path", fr.Path),
		slog.Bool("language_list", fr.LanguageList),
		slog.Int("lines", fr.Stats.TotalLines),
		slog.Int("parsed", fr.Stats.ParsedLines),
		slog.Int("malformed", fr.Stats.MalformedLines),
		slog.Duration("duration", fr.Duration),
	}

	if p.reportMalformed && fr.Stats.MalformedLines > 0 {
		log.Warn("skipped malformed lines", attrs...)
		return
	}
	log.Debug("file parsed", attrs...)
}
