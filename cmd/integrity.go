package cmd

import (
	"fmt"
	"strings"

	"rom-curator/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the catalog",
	Long:  `Checks that the catalog schema is current and that no release or media row points at a missing parent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(true, true)
	},
}

// referencesCmd represents the integrity references command
var referencesCmd = &cobra.Command{
	Use:   "references",
	Short: "Check referential integrity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(referencesCmd, schemaCmd)
}

func runIntegrityChecks(runReferences, runSchema bool) error {
	_, l, store, err := openStore()
	if err != nil {
		return err
	}

	svc := integrity.NewService(store.DB(), l)

	if runReferences {
		l.Info("Checking referential integrity...")
		refs, err := svc.CheckReferences()
		if err != nil {
			return fmt.Errorf("reference check failed: %w", err)
		}

		if refs.Clean() {
			l.Info("References are intact.")
		} else {
			l.Warn("Dangling references detected",
				zap.Int64s("releases_missing_work", refs.ReleasesMissingWork),
				zap.Int64s("releases_missing_platform", refs.ReleasesMissingPlatform),
				zap.Int64s("media_missing_release", refs.MediaMissingRelease),
			)
		}

		unresolved, err := svc.CountUnresolved()
		if err != nil {
			return fmt.Errorf("disagreement count failed: %w", err)
		}

		fmt.Println(renderTable(
			[]string{"Reference check", "Count"},
			[][]string{
				{"Releases missing work", fmt.Sprint(len(refs.ReleasesMissingWork))},
				{"Releases missing platform", fmt.Sprint(len(refs.ReleasesMissingPlatform))},
				{"Media missing release", fmt.Sprint(len(refs.MediaMissingRelease))},
				{"Unresolved disagreements", fmt.Sprint(unresolved)},
			},
			[]columnAlignment{alignLeft, alignRight},
		))
	}

	if runSchema {
		l.Info("Checking schema...")
		schema, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}

		if schema.Clean() {
			l.Info("Schema matches the expected definition.", zap.Int("version", schema.Version))
		} else {
			l.Warn("Schema problems found",
				zap.Int("version", schema.Version),
				zap.Int("supported", schema.Supported),
				zap.Strings("missing_tables", schema.MissingTables),
			)
		}

		fmt.Println(renderTable(
			[]string{"Schema check", "Value"},
			[][]string{
				{"Version", fmt.Sprint(schema.Version)},
				{"Supported", fmt.Sprint(schema.Supported)},
				{"Missing tables", strings.Join(schema.MissingTables, ", ")},
			},
			[]columnAlignment{alignLeft, alignLeft},
		))
	}

	return nil
}
