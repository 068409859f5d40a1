// Package reconcile deduplicates Works that represent the same game under
// inconsistent titles.
//
// Import sources spell titles inconsistently ("Super Mario Bros" vs
// "Super Mario Bros."), which creates duplicate Work rows. The engine
// groups each platform's releases by a normalized title key; a group
// spanning more than one Work id is a duplicate group. One Work survives
// (the one with the most attached releases, ties broken by lowest id),
// every release of the absorbed Works is reassigned to it, and the
// absorbed Works are deleted. When reassignment makes two releases
// identical by (work, platform, region), their media sets are merged onto
// one surviving release and the duplicate release is deleted.
//
// # Plans and dry runs
//
// Run first computes a Plan: per-group detail plus aggregate statistics.
// With Options.DryRun the exact same plan is returned with zero persisted
// mutation; otherwise each group is applied inside its own transaction,
// so a mid-batch failure never leaves a release pointing at a deleted
// work.
package reconcile
