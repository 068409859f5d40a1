package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"rom-curator/feature/catalog/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	dryRunReconcile    bool
	yesConfirm         bool
	reconcilePlatforms []int64
)

// reconcileCmd deduplicates works whose titles differ only in punctuation
// or diacritics.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Merge duplicate works created by inconsistent source titles",
	Long: `Reconcile groups each platform's releases by a normalized title key and
merges works that are duplicates of each other. One work survives per
group; the others' releases are reassigned and the empty works deleted.

Examples:
  # Report only (dry-run)
  reconcile --dry-run

  # Merge with interactive confirmation
  reconcile

  # Merge one platform, non-interactive
  reconcile --platform 1 --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRunReconcile, "dry-run", false, "Compute the plan without persisting any mutation")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	reconcileCmd.Flags().Int64SliceVar(&reconcilePlatforms, "platform", nil, "Limit to the given platform ids (repeatable)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	_, l, store, err := openStore()
	if err != nil {
		return err
	}

	engine := reconcile.NewEngine(store.DB(), l)

	// Step 1: Plan (always runs as a dry run first)
	l.Info("Planning work reconciliation...")
	plan, err := engine.Run(reconcile.Options{
		PlatformIDs: reconcilePlatforms,
		DryRun:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	printReconcilePlan(plan)

	if plan.Stats.GroupsFound == 0 {
		l.Info("No duplicate works found.")
		return nil
	}

	if dryRunReconcile {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Step 2: Confirm and apply
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	applied, err := engine.Run(reconcile.Options{PlatformIDs: reconcilePlatforms})
	if err != nil {
		return fmt.Errorf("failed to apply reconciliation: %w", err)
	}

	l.Info("Reconciliation applied",
		zap.Int("works_deleted", applied.Stats.WorksDeleted),
		zap.Int("releases_reassigned", applied.Stats.ReleasesReassigned),
		zap.Int("releases_merged", applied.Stats.ReleasesMerged),
	)
	return nil
}

// printReconcilePlan prints the per-group detail and summary tables.
func printReconcilePlan(plan *reconcile.Plan) {
	if len(plan.Groups) > 0 {
		var rows [][]string
		for _, g := range plan.Groups {
			rows = append(rows, []string{
				fmt.Sprint(g.PlatformID),
				g.SurvivingTitle,
				strings.Join(g.AbsorbedTitles, ", "),
				fmt.Sprint(g.ReleasesAffected),
				fmt.Sprint(g.ReleaseMerges),
			})
		}
		fmt.Println(renderTable(
			[]string{"Platform", "Survivor", "Absorbed", "Releases", "Merges"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
		))
	}

	fmt.Println(renderTable(
		[]string{"Summary", "Count"},
		[][]string{
			{"Duplicate groups", fmt.Sprint(plan.Stats.GroupsFound)},
			{"Works to delete", fmt.Sprint(plan.Stats.WorksDeleted)},
			{"Releases to reassign", fmt.Sprint(plan.Stats.ReleasesReassigned)},
			{"Release merges", fmt.Sprint(plan.Stats.ReleasesMerged)},
			{"Media to move", fmt.Sprint(plan.Stats.MediaMoved)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
