package scan

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"rom-curator/feature/dat"
	"rom-curator/feature/repair"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status classifies one scanned file.
type Status string

const (
	// StatusMatched marks a file whose hash is in the reference index.
	StatusMatched Status = "matched"
	// StatusNeedsRepair marks a file that matches a reference record only
	// under a padding hypothesis.
	StatusNeedsRepair Status = "needs_repair"
	// StatusUnmatched marks a file no hypothesis could identify.
	StatusUnmatched Status = "unmatched"
	// StatusError marks a file that could not be read.
	StatusError Status = "error"
)

// FileResult is the classification of one scanned file.
type FileResult struct {
	// Path is the file's path relative to the scan root.
	Path string `json:"path"`
	// Status is the classification outcome.
	Status Status `json:"status"`
	// Name is the matched reference record's release name, when matched.
	Name string `json:"name,omitempty"`
	// Method describes the winning repair hypothesis, when repairable.
	Method string `json:"method,omitempty"`
	// BytesAdded is the repair hypothesis's padding size.
	BytesAdded int64 `json:"bytes_added,omitempty"`
	// HeaderSkipped is the number of leading header bytes excluded from
	// hashing.
	HeaderSkipped int `json:"header_skipped,omitempty"`
	// Digest holds the checksums of the file body.
	Digest repair.Digest `json:"digest"`
	// Error carries the read failure for StatusError results.
	Error string `json:"error,omitempty"`
}

// Summary aggregates one scan run.
type Summary struct {
	Scanned     int `json:"scanned"`
	Matched     int `json:"matched"`
	NeedsRepair int `json:"needs_repair"`
	Unmatched   int `json:"unmatched"`
	Errors      int `json:"errors"`
}

// Report is the full outcome of one scan run, in path order.
type Report struct {
	Files   []FileResult `json:"files"`
	Summary Summary      `json:"summary"`
}

// Listener receives each file result as it is collected. Calls are
// serialized by the collector; implementations need no locking.
type Listener interface {
	OnFile(result FileResult)
}

// Options controls one scan run.
type Options struct {
	// Root is the directory to walk.
	Root string
	// Pattern is a glob matched against file names; empty means every file.
	Pattern string
	// Workers bounds the hashing concurrency; values below one mean one.
	Workers int
	// Kind selects the padding hypotheses tried on unmatched files.
	Kind dat.SourceKind
	// HeaderRule selects the dump header convention to skip before hashing.
	HeaderRule dat.HeaderRule
	// Listener optionally observes results as they are collected.
	Listener Listener
}

// Scanner classifies dump files against a reference index.
type Scanner struct {
	index  *dat.Index
	logger *zap.Logger
}

// NewScanner creates a scanner over the given reference index.
func NewScanner(index *dat.Index, logger *zap.Logger) *Scanner {
	return &Scanner{index: index, logger: logger}
}

// Scan walks the root and classifies every matching file. The walk itself
// failing is an error; individual unreadable files are reported as
// StatusError results instead.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*Report, error) {
	paths, err := collectPaths(opts.Root, opts.Pattern)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make(chan FileResult, workers)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	go func() {
		defer close(results)
		for _, path := range paths {
			path := path
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				select {
				case results <- s.scanFile(opts, path):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
		}
		// Wait is also called by the caller; the error surfaces there.
		_ = g.Wait()
	}()

	report := &Report{}
	for result := range results {
		report.Files = append(report.Files, result)
		report.Summary.Scanned++
		switch result.Status {
		case StatusMatched:
			report.Summary.Matched++
		case StatusNeedsRepair:
			report.Summary.NeedsRepair++
		case StatusUnmatched:
			report.Summary.Unmatched++
		case StatusError:
			report.Summary.Errors++
		}
		if opts.Listener != nil {
			opts.Listener.OnFile(result)
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Path < report.Files[j].Path
	})

	if s.logger != nil {
		s.logger.Info("scan finished",
			zap.String("root", opts.Root),
			zap.Int("scanned", report.Summary.Scanned),
			zap.Int("matched", report.Summary.Matched),
			zap.Int("needs_repair", report.Summary.NeedsRepair),
			zap.Int("unmatched", report.Summary.Unmatched),
			zap.Int("errors", report.Summary.Errors),
		)
	}
	return report, nil
}

// scanFile hashes one file and classifies it. Read failures become a
// StatusError result rather than aborting the run.
func (s *Scanner) scanFile(opts Options, path string) FileResult {
	rel, err := filepath.Rel(opts.Root, path)
	if err != nil {
		rel = path
	}
	result := FileResult{Path: filepath.ToSlash(rel)}

	f, err := os.Open(path)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}

	skip, err := headerSkip(f, opts.HeaderRule)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}
	result.HeaderSkipped = skip

	body := io.NewSectionReader(f, int64(skip), info.Size()-int64(skip))
	digest, err := repair.HashReader(body)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}
	result.Digest = digest

	record, ok := s.index.LookupPrimary(digest.CRC)
	if !ok {
		record, ok = s.index.LookupSecondary(digest.SHA1)
	}
	if ok {
		result.Status = StatusMatched
		result.Name = record.Title
		return result
	}

	strategies := repair.BuildStrategies(digest.Size, 0, opts.Kind)
	match, err := repair.MatchReader(body, s.index, strategies)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}
	if match != nil {
		result.Status = StatusNeedsRepair
		result.Name = match.Record.Title
		result.Method = match.Method
		result.BytesAdded = match.BytesAdded
		result.Digest = match.Digest
		return result
	}

	result.Status = StatusUnmatched
	return result
}

// headerSkip reads the file's first bytes and returns the header length the
// rule says to exclude from hashing.
func headerSkip(f *os.File, rule dat.HeaderRule) (int, error) {
	if rule == "" || rule == dat.HeaderNone {
		return 0, nil
	}
	head := make([]byte, 128)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, fmt.Errorf("read dump header: %w", err)
	}
	return rule.HeaderSkip(head[:n]), nil
}

// collectPaths walks the root and returns every regular file matching the
// pattern.
func collectPaths(root, pattern string) ([]string, error) {
	var matcher glob.Glob
	if pattern != "" {
		var err error
		matcher, err = glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad scan pattern %q: %w", pattern, err)
		}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if matcher != nil && !matcher.Match(d.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk scan root %s: %w", root, err)
	}
	return paths, nil
}
