package cmd

import (
	"fmt"

	"rom-curator/feature/catalog"
	"rom-curator/feature/dat"
	"rom-curator/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for import commands
	importFile     string
	importPlatform int64
	importSource   string
	importKind     string
	applyOverrides bool
)

// importCmd is the parent command for all import operations.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import curated definitions and reference lists into the catalog",
}

// importDefsCmd loads curated platform/company/override definitions.
var importDefsCmd = &cobra.Command{
	Use:   "defs",
	Short: "Import curated definitions (platforms, companies, overrides)",
	Long: `Import a curated definitions JSON file into the catalog.

Definitions are upserted by id, so re-importing the same file is a no-op.

Examples:
  # Import definitions
  import defs --file definitions.json`,
	RunE: runImportDefs,
}

// importDatCmd loads one reference list for one platform.
var importDatCmd = &cobra.Command{
	Use:   "dat",
	Short: "Import a reference list (DAT file) for a platform",
	Long: `Import a reference list into the catalog.

Each record's release name is parsed into its structured tags; works,
releases, and media are created as needed, and field conflicts with
previously imported sources are recorded as disagreements.

Examples:
  # Import a cartridge list
  import dat --file nes.dat --platform 1 --source no-intro

  # Import an optical list and apply overrides afterwards
  import dat --file psx.dat --platform 2 --source redump --kind optical --apply-overrides`,
	RunE: runImportDat,
}

func init() {
	importCmd.AddCommand(importDefsCmd)
	importCmd.AddCommand(importDatCmd)

	importDefsCmd.Flags().StringVar(&importFile, "file", "", "Path to the definitions JSON file")
	_ = importDefsCmd.MarkFlagRequired("file")

	importDatCmd.Flags().StringVar(&importFile, "file", "", "Path to the DAT file")
	importDatCmd.Flags().Int64Var(&importPlatform, "platform", 0, "Platform id the list describes")
	importDatCmd.Flags().StringVar(&importSource, "source", "", "Source tag recorded on imported media (e.g. no-intro)")
	importDatCmd.Flags().StringVar(&importKind, "kind", string(dat.KindCartridge), "Media family of the list (cartridge, optical)")
	importDatCmd.Flags().BoolVar(&applyOverrides, "apply-overrides", false, "Apply stored overrides after importing")
	_ = importDatCmd.MarkFlagRequired("file")
	_ = importDatCmd.MarkFlagRequired("platform")
	_ = importDatCmd.MarkFlagRequired("source")

	RootCmd.AddCommand(importCmd)
}

func runImportDefs(cmd *cobra.Command, args []string) error {
	_, l, store, err := openStore()
	if err != nil {
		return err
	}

	defs, err := catalog.LoadDefinitions(importFile)
	if err != nil {
		return err
	}

	counts, err := store.ImportDefinitions(defs)
	if err != nil {
		return fmt.Errorf("failed to import definitions: %w", err)
	}

	fmt.Println(renderTable(
		[]string{"Entity", "Imported"},
		[][]string{
			{"Platforms", fmt.Sprint(counts.Platforms)},
			{"Companies", fmt.Sprint(counts.Companies)},
			{"Overrides", fmt.Sprint(counts.Overrides)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))
	l.Info("Definitions import finished", zap.String("file", importFile))
	return nil
}

func runImportDat(cmd *cobra.Command, args []string) error {
	kind := dat.SourceKind(importKind)
	if !kind.IsValid() {
		return fmt.Errorf("unknown media kind %q (cartridge, optical)", importKind)
	}

	_, l, store, err := openStore()
	if err != nil {
		return err
	}

	_, result, err := dat.NewLoader().Load(importFile, kind)
	if err != nil {
		return fmt.Errorf("failed to load reference list: %w", err)
	}
	for _, skipped := range result.Skipped {
		l.Warn("Reference record skipped during parsing", zap.Error(skipped))
	}

	imp := importer.NewImporter(store, l)
	batch, err := imp.ImportRecords(importPlatform, importSource, result.Records)
	if err != nil {
		return fmt.Errorf("failed to import records: %w", err)
	}

	fmt.Println(renderTable(
		[]string{"Result", "Count"},
		[][]string{
			{"Records parsed", fmt.Sprint(len(result.Records))},
			{"Works created", fmt.Sprint(batch.Works)},
			{"Releases created", fmt.Sprint(batch.Releases)},
			{"Media created", fmt.Sprint(batch.Media)},
			{"Disagreements", fmt.Sprint(batch.Disagreements)},
			{"Skipped", fmt.Sprint(batch.Skipped + len(result.Skipped))},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	if applyOverrides {
		overrideResult, err := store.ApplyOverrides()
		if err != nil {
			return fmt.Errorf("failed to apply overrides: %w", err)
		}
		l.Info("Overrides applied",
			zap.Int("applied", overrideResult.Applied),
			zap.Int("matched", overrideResult.Matched),
			zap.Int("skipped", len(overrideResult.Skipped)),
		)
	}

	return nil
}
