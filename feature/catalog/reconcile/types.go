package reconcile

// Options controls a reconciliation run.
type Options struct {
	// PlatformIDs limits the run to the given platforms; empty means all.
	PlatformIDs []int64
	// DryRun computes the full plan and statistics without persisting any
	// mutation.
	DryRun bool
}

// Stats aggregates the effects of one reconciliation run. A dry run
// reports the same numbers as the real run it predicts.
type Stats struct {
	// GroupsFound is the number of duplicate groups detected.
	GroupsFound int `json:"groups_found"`
	// WorksMerged is the number of surviving works that absorbed duplicates.
	WorksMerged int `json:"works_merged"`
	// WorksDeleted is the number of absorbed works removed.
	WorksDeleted int `json:"works_deleted"`
	// ReleasesReassigned is the number of releases moved to a surviving work.
	ReleasesReassigned int `json:"releases_reassigned"`
	// ReleasesMerged is the number of (work, platform, region) collisions
	// resolved by merging two releases into one.
	ReleasesMerged int `json:"releases_merged"`
	// MediaMoved is the number of media rows re-homed by release merges.
	MediaMoved int `json:"media_moved"`
}

// Group is the per-group detail of one duplicate cluster.
type Group struct {
	// PlatformID is the platform the duplicates share.
	PlatformID int64 `json:"platform_id"`
	// TitleKey is the normalized key the releases grouped on.
	TitleKey string `json:"title_key"`
	// SurvivingWorkID is the work every release ends up attached to.
	SurvivingWorkID int64 `json:"surviving_work_id"`
	// SurvivingTitle is the surviving work's canonical title.
	SurvivingTitle string `json:"surviving_title"`
	// AbsorbedTitles lists the titles of the works deleted by this group.
	AbsorbedTitles []string `json:"absorbed_titles"`
	// ReleasesAffected is the number of releases reassigned for this group.
	ReleasesAffected int `json:"releases_affected"`
	// ReleaseMerges is the number of collision merges within this group.
	ReleaseMerges int `json:"release_merges"`
}

// Plan is the full outcome of a reconciliation run: per-group detail plus
// aggregate statistics, and whether mutations were persisted.
type Plan struct {
	Groups []Group `json:"groups"`
	Stats  Stats   `json:"stats"`
	DryRun bool    `json:"dry_run"`
}
