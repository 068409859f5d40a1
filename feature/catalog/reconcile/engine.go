package reconcile

import (
	"fmt"
	"sort"

	"rom-curator/core/textutil"
	"rom-curator/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine runs work deduplication over the catalog.
type Engine struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine on the given catalog connection.
func NewEngine(db *gorm.DB, logger *zap.Logger) *Engine {
	return &Engine{db: db, logger: logger}
}

// releaseRow is the minimal release projection the engine groups on.
type releaseRow struct {
	ID         int64
	WorkID     int64
	PlatformID int64
	Region     string
	Title      string
}

// releaseMerge is one planned collision merge: the release that survives
// and the duplicates whose media move onto it.
type releaseMerge struct {
	KeepID  int64
	DropIDs []int64
}

// groupAction is everything Run decided to do for one duplicate group.
type groupAction struct {
	detail     Group
	survivorID int64
	absorbed   []int64
	merges     []releaseMerge
}

// Run detects duplicate works and, unless opts.DryRun is set, applies the
// merges. The returned plan carries identical statistics either way.
func (e *Engine) Run(opts Options) (*Plan, error) {
	actions, err := e.plan(opts)
	if err != nil {
		return nil, err
	}

	plan := &Plan{DryRun: opts.DryRun}
	for _, action := range actions {
		plan.Groups = append(plan.Groups, action.detail)
		plan.Stats.GroupsFound++
		plan.Stats.WorksMerged++
		plan.Stats.WorksDeleted += len(action.absorbed)
		plan.Stats.ReleasesReassigned += action.detail.ReleasesAffected
		plan.Stats.ReleasesMerged += len(flattenDrops(action.merges))
		for _, merge := range action.merges {
			moved, err := e.countMedia(merge.DropIDs)
			if err != nil {
				return nil, err
			}
			plan.Stats.MediaMoved += moved
		}
	}

	if opts.DryRun {
		return plan, nil
	}

	for _, action := range actions {
		if err := e.apply(action); err != nil {
			return nil, fmt.Errorf("apply reconciliation group %q: %w", action.detail.TitleKey, err)
		}
	}

	if e.logger != nil {
		e.logger.Info("work reconciliation finished",
			zap.Int("groups_found", plan.Stats.GroupsFound),
			zap.Int("works_deleted", plan.Stats.WorksDeleted),
			zap.Int("releases_reassigned", plan.Stats.ReleasesReassigned),
			zap.Int("releases_merged", plan.Stats.ReleasesMerged),
			zap.Int("media_moved", plan.Stats.MediaMoved),
		)
	}
	return plan, nil
}

// plan computes every group action without mutating anything.
func (e *Engine) plan(opts Options) ([]groupAction, error) {
	rows, err := e.loadReleases(opts.PlatformIDs)
	if err != nil {
		return nil, err
	}

	// Total attached releases per work decides the survivor.
	releaseCounts := make(map[int64]int)
	for _, row := range rows {
		releaseCounts[row.WorkID]++
	}

	type groupKey struct {
		platformID int64
		titleKey   string
	}
	groups := make(map[groupKey][]releaseRow)
	for _, row := range rows {
		key := groupKey{row.PlatformID, textutil.TitleKey(row.Title)}
		groups[key] = append(groups[key], row)
	}

	// Deterministic group order: platform, then title key.
	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].platformID != keys[j].platformID {
			return keys[i].platformID < keys[j].platformID
		}
		return keys[i].titleKey < keys[j].titleKey
	})

	// A work absorbed by an earlier group is out of play for later ones.
	consumed := make(map[int64]bool)

	var actions []groupAction
	for _, key := range keys {
		members := groups[key]
		workIDs := distinctWorkIDs(members, consumed)
		if len(workIDs) < 2 {
			continue
		}

		survivor := pickSurvivor(workIDs, releaseCounts)
		absorbed := make([]int64, 0, len(workIDs)-1)
		for _, id := range workIDs {
			if id != survivor {
				absorbed = append(absorbed, id)
				consumed[id] = true
			}
		}

		action, err := e.buildAction(key.platformID, key.titleKey, survivor, absorbed)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// buildAction loads the involved works' releases across all platforms and
// plans the reassignment and any collision merges.
func (e *Engine) buildAction(platformID int64, titleKey string, survivor int64, absorbed []int64) (groupAction, error) {
	involved := append([]int64{survivor}, absorbed...)

	var survivorWork models.Work
	if err := e.db.First(&survivorWork, survivor).Error; err != nil {
		return groupAction{}, fmt.Errorf("load surviving work %d: %w", survivor, err)
	}
	var absorbedWorks []models.Work
	if err := e.db.Where("id IN ?", absorbed).Order("id").Find(&absorbedWorks).Error; err != nil {
		return groupAction{}, err
	}

	var releases []releaseRow
	if err := e.db.Model(&models.Release{}).
		Select("id", "work_id", "platform_id", "region", "title").
		Where("work_id IN ?", involved).Order("id").
		Scan(&releases).Error; err != nil {
		return groupAction{}, err
	}

	reassigned := 0
	type slot struct {
		platformID int64
		region     string
	}
	bySlot := make(map[slot][]int64)
	for _, r := range releases {
		if r.WorkID != survivor {
			reassigned++
		}
		s := slot{r.PlatformID, r.Region}
		bySlot[s] = append(bySlot[s], r.ID)
	}

	var merges []releaseMerge
	slots := make([]slot, 0, len(bySlot))
	for s := range bySlot {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].platformID != slots[j].platformID {
			return slots[i].platformID < slots[j].platformID
		}
		return slots[i].region < slots[j].region
	})
	for _, s := range slots {
		ids := bySlot[s]
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		merges = append(merges, releaseMerge{KeepID: ids[0], DropIDs: ids[1:]})
	}

	absorbedTitles := make([]string, 0, len(absorbedWorks))
	for _, w := range absorbedWorks {
		absorbedTitles = append(absorbedTitles, w.Title)
	}

	return groupAction{
		detail: Group{
			PlatformID:       platformID,
			TitleKey:         titleKey,
			SurvivingWorkID:  survivor,
			SurvivingTitle:   survivorWork.Title,
			AbsorbedTitles:   absorbedTitles,
			ReleasesAffected: reassigned,
			ReleaseMerges:    len(flattenDrops(merges)),
		},
		survivorID: survivor,
		absorbed:   absorbed,
		merges:     merges,
	}, nil
}

// apply persists one group inside a single transaction: either every
// reassignment and deletion for the group lands, or none do.
func (e *Engine) apply(action groupAction) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Release{}).
			Where("work_id IN ?", action.absorbed).
			Update("work_id", action.survivorID).Error; err != nil {
			return err
		}

		for _, merge := range action.merges {
			if err := tx.Model(&models.Media{}).
				Where("release_id IN ?", merge.DropIDs).
				Update("release_id", merge.KeepID).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", merge.DropIDs).Delete(&models.Release{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id IN ?", action.absorbed).Delete(&models.Work{}).Error
	})
}

func (e *Engine) loadReleases(platformIDs []int64) ([]releaseRow, error) {
	q := e.db.Model(&models.Release{}).Select("id", "work_id", "platform_id", "region", "title")
	if len(platformIDs) > 0 {
		q = q.Where("platform_id IN ?", platformIDs)
	}
	var rows []releaseRow
	if err := q.Order("id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (e *Engine) countMedia(releaseIDs []int64) (int, error) {
	var count int64
	err := e.db.Model(&models.Media{}).Where("release_id IN ?", releaseIDs).Count(&count).Error
	return int(count), err
}

// distinctWorkIDs returns the group's work ids, sorted, excluding works
// already absorbed by an earlier group.
func distinctWorkIDs(members []releaseRow, consumed map[int64]bool) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, m := range members {
		if consumed[m.WorkID] || seen[m.WorkID] {
			continue
		}
		seen[m.WorkID] = true
		ids = append(ids, m.WorkID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// pickSurvivor selects the work with the most attached releases, breaking
// ties by lowest id. The candidate slice is sorted ascending, so the first
// maximum wins ties naturally.
func pickSurvivor(workIDs []int64, releaseCounts map[int64]int) int64 {
	survivor := workIDs[0]
	best := releaseCounts[survivor]
	for _, id := range workIDs[1:] {
		if releaseCounts[id] > best {
			survivor = id
			best = releaseCounts[id]
		}
	}
	return survivor
}

func flattenDrops(merges []releaseMerge) []int64 {
	var ids []int64
	for _, m := range merges {
		ids = append(ids, m.DropIDs...)
	}
	return ids
}
