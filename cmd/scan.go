package cmd

import (
	"context"
	"fmt"

	"rom-curator/feature/dat"
	"rom-curator/feature/scan"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the scan command
	scanDir     string
	scanDat     string
	scanPattern string
	scanKind    string
	scanHeader  string
	scanWorkers int
)

// scanCmd classifies a directory of dump files against a reference list.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory of dumps against a reference list",
	Long: `Scan hashes every file under a directory and classifies it against a
reference list: matched, repairable by padding, or unknown.

Examples:
  # Scan a cartridge dump directory
  scan --dir ./roms --dat nes.dat

  # Scan disc images, trying the pregap hypothesis on misses
  scan --dir ./discs --dat psx.dat --kind optical --pattern "*.bin"

  # Skip iNES headers before hashing
  scan --dir ./roms --dat nes.dat --header ines`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanDir, "dir", "", "Directory to scan")
	scanCmd.Flags().StringVar(&scanDat, "dat", "", "Path to the reference list")
	scanCmd.Flags().StringVar(&scanPattern, "pattern", "", "Glob matched against file names (default: every file)")
	scanCmd.Flags().StringVar(&scanKind, "kind", string(dat.KindCartridge), "Media family (cartridge, optical)")
	scanCmd.Flags().StringVar(&scanHeader, "header", string(dat.HeaderNone), "Dump header rule (none, ines, lynx, a78)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Hashing workers (default: from configuration)")
	_ = scanCmd.MarkFlagRequired("dir")
	_ = scanCmd.MarkFlagRequired("dat")

	RootCmd.AddCommand(scanCmd)
}

// scanLogListener reports repairable and unknown files as they are found.
type scanLogListener struct {
	logger *zap.Logger
}

func (l *scanLogListener) OnFile(result scan.FileResult) {
	switch result.Status {
	case scan.StatusNeedsRepair:
		l.logger.Info("Repairable dump found",
			zap.String("path", result.Path),
			zap.String("name", result.Name),
			zap.String("method", result.Method),
		)
	case scan.StatusError:
		l.logger.Warn("File could not be read",
			zap.String("path", result.Path),
			zap.String("error", result.Error),
		)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	kind := dat.SourceKind(scanKind)
	if !kind.IsValid() {
		return fmt.Errorf("unknown media kind %q (cartridge, optical)", scanKind)
	}
	header := dat.HeaderRule(scanHeader)
	if !header.IsValid() {
		return fmt.Errorf("unknown header rule %q (none, ines, lynx, a78)", scanHeader)
	}

	cfg, l, err := openConfig()
	if err != nil {
		return err
	}

	workers := scanWorkers
	if workers <= 0 {
		workers = cfg.Scan.Workers
	}

	index, result, err := dat.NewLoader().Load(scanDat, kind)
	if err != nil {
		return fmt.Errorf("failed to load reference list: %w", err)
	}
	counts := index.Counts()
	l.Info("Reference list loaded",
		zap.Int("records", counts.Records),
		zap.Int("skipped", len(result.Skipped)),
	)

	scanner := scan.NewScanner(index, l)
	report, err := scanner.Scan(context.Background(), scan.Options{
		Root:       scanDir,
		Pattern:    scanPattern,
		Workers:    workers,
		Kind:       kind,
		HeaderRule: header,
		Listener:   &scanLogListener{logger: l},
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	var rows [][]string
	for _, f := range report.Files {
		if f.Status == scan.StatusMatched {
			continue
		}
		rows = append(rows, []string{f.Path, string(f.Status), f.Name, f.Method})
	}
	if len(rows) > 0 {
		fmt.Println(renderTable(
			[]string{"File", "Status", "Reference", "Repair"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		))
	}

	fmt.Println(renderTable(
		[]string{"Summary", "Count"},
		[][]string{
			{"Scanned", fmt.Sprint(report.Summary.Scanned)},
			{"Matched", fmt.Sprint(report.Summary.Matched)},
			{"Needs repair", fmt.Sprint(report.Summary.NeedsRepair)},
			{"Unmatched", fmt.Sprint(report.Summary.Unmatched)},
			{"Errors", fmt.Sprint(report.Summary.Errors)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))
	return nil
}
