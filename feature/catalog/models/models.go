package models

import "time"

// SchemaVersion is the catalog schema revision this build understands. The
// store refuses to operate on a catalog persisted with a different version.
const SchemaVersion = 1

// SchemaInfo is the single-row version marker table.
type SchemaInfo struct {
	ID      int64 `gorm:"column:id;primaryKey"`
	Version int   `gorm:"column:version"`
}

// TableName overrides the default pluralized name.
func (SchemaInfo) TableName() string {
	return "schema_info"
}

// Platform is a curated console/system definition. Immutable after load
// except for administrative edits.
type Platform struct {
	ID           int64  `gorm:"column:id;primaryKey" json:"id"`
	Name         string `gorm:"column:name" json:"name"`
	Manufacturer string `gorm:"column:manufacturer" json:"manufacturer"`
	// MediaType is the media family ("cartridge" or "optical").
	MediaType   string `gorm:"column:media_type" json:"media_type"`
	ReleaseYear int    `gorm:"column:release_year" json:"release_year"`

	ReleaseDates []PlatformReleaseDate `gorm:"foreignKey:PlatformID" json:"release_dates,omitempty"`
	Relations    []PlatformRelation    `gorm:"foreignKey:PlatformID" json:"relations,omitempty"`
}

// PlatformReleaseDate is one region-specific launch date for a platform.
type PlatformReleaseDate struct {
	ID         int64  `gorm:"column:id;primaryKey" json:"id"`
	PlatformID int64  `gorm:"column:platform_id;index" json:"platform_id"`
	Region     string `gorm:"column:region" json:"region"`
	// Date is an ISO date string (YYYY-MM-DD).
	Date string `gorm:"column:date" json:"date"`
}

// PlatformRelation links a platform to a related platform, e.g. a regional
// variant of the same hardware.
type PlatformRelation struct {
	ID                int64  `gorm:"column:id;primaryKey" json:"id"`
	PlatformID        int64  `gorm:"column:platform_id;index" json:"platform_id"`
	RelatedPlatformID int64  `gorm:"column:related_platform_id" json:"related_platform_id"`
	Kind              string `gorm:"column:kind" json:"kind"`
}

// Company is a curated publisher/developer definition.
type Company struct {
	ID      int64  `gorm:"column:id;primaryKey" json:"id"`
	Name    string `gorm:"column:name" json:"name"`
	Country string `gorm:"column:country" json:"country"`

	Aliases []CompanyAlias `gorm:"foreignKey:CompanyID" json:"aliases,omitempty"`
}

// CompanyAlias maps a free-text publisher/developer string to its company.
type CompanyAlias struct {
	ID        int64  `gorm:"column:id;primaryKey" json:"id"`
	CompanyID int64  `gorm:"column:company_id;index" json:"company_id"`
	Alias     string `gorm:"column:alias;index" json:"alias"`
}

// Work is one abstract game identity, independent of region and platform.
type Work struct {
	ID    int64  `gorm:"column:id;primaryKey" json:"id"`
	Title string `gorm:"column:title;index" json:"title"`
}

// Release is one platform- and region-specific edition of a Work.
//
// (WorkID, PlatformID, Region) is expected to be unique per logical release,
// but collisions are resolved by the reconciliation engine rather than
// rejected on write.
type Release struct {
	ID         int64  `gorm:"column:id;primaryKey" json:"id"`
	WorkID     int64  `gorm:"column:work_id;index" json:"work_id"`
	PlatformID int64  `gorm:"column:platform_id;index" json:"platform_id"`
	Region     string `gorm:"column:region" json:"region"`
	Title      string `gorm:"column:title;index" json:"title"`
	AltTitle   string `gorm:"column:alt_title" json:"alt_title,omitempty"`

	PublisherID *int64 `gorm:"column:publisher_id" json:"publisher_id,omitempty"`
	DeveloperID *int64 `gorm:"column:developer_id" json:"developer_id,omitempty"`

	// ReleaseDate is an ISO date string (YYYY-MM-DD), empty when unknown.
	ReleaseDate string `gorm:"column:release_date" json:"release_date,omitempty"`
	Serial      string `gorm:"column:serial;index" json:"serial,omitempty"`
	Genre       string `gorm:"column:genre" json:"genre,omitempty"`
	Players     int    `gorm:"column:players" json:"players,omitempty"`
	Rating      string `gorm:"column:rating" json:"rating,omitempty"`
	Description string `gorm:"column:description" json:"description,omitempty"`
	// ExternalID is the id of this release in the enrichment source's catalog.
	ExternalID string `gorm:"column:external_id" json:"external_id,omitempty"`
	// NotFoundInSource marks releases the enrichment source had no entry for,
	// so later passes don't retry them forever.
	NotFoundInSource bool `gorm:"column:not_found_in_source" json:"not_found_in_source,omitempty"`

	Media []Media `gorm:"foreignKey:ReleaseID" json:"media,omitempty"`
}

// Media is one dump instance of a Release.
//
// Hash fields are not unique across the catalog: legitimate duplicate dumps
// exist (the same bytes released in two regions, for example).
type Media struct {
	ID        int64 `gorm:"column:id;primaryKey" json:"id"`
	ReleaseID int64 `gorm:"column:release_id;index" json:"release_id"`

	Serial     string `gorm:"column:serial" json:"serial,omitempty"`
	DiscNumber int    `gorm:"column:disc_number" json:"disc_number,omitempty"`
	DiscLabel  string `gorm:"column:disc_label" json:"disc_label,omitempty"`
	Revision   string `gorm:"column:revision" json:"revision,omitempty"`
	// DumpStatus is "verified", "baddump", or "overdump".
	DumpStatus string `gorm:"column:dump_status" json:"dump_status"`

	// DatName is the full release name recorded in the source reference list;
	// Overrides match their glob patterns against it.
	DatName string `gorm:"column:dat_name;index" json:"dat_name,omitempty"`
	// DatSource tags which reference list the record came from.
	DatSource string `gorm:"column:dat_source" json:"dat_source,omitempty"`

	Size int64  `gorm:"column:size" json:"size,omitempty"`
	CRC  string `gorm:"column:crc;index" json:"crc,omitempty"`
	SHA1 string `gorm:"column:sha1;index" json:"sha1,omitempty"`
	MD5  string `gorm:"column:md5" json:"md5,omitempty"`
}

// TableName pins the table name; the default pluralizer mangles "media".
func (Media) TableName() string {
	return "media"
}

// Override is a curated correction applied to media whose recorded dat-name
// matches a glob pattern. Applied opportunistically: an override matching
// nothing is not an error.
type Override struct {
	ID int64 `gorm:"column:id;primaryKey" json:"id"`
	// EntityType selects what the override edits: "media" or "release".
	EntityType string `gorm:"column:entity_type" json:"entity_type"`
	// PlatformID optionally scopes the override to one platform.
	PlatformID *int64 `gorm:"column:platform_id" json:"platform_id,omitempty"`
	// Pattern is a glob matched against Media.DatName ('*' matches any run).
	Pattern string `gorm:"column:pattern" json:"pattern"`
	// Field is the target field name on the selected entity.
	Field string `gorm:"column:field" json:"field"`
	// Value is the replacement value.
	Value  string `gorm:"column:value" json:"value"`
	Reason string `gorm:"column:reason" json:"reason,omitempty"`
}

// Disagreement records an unresolved conflict between two sources' values
// for one field. Created by the merge engine; resolved only by explicit
// operator action.
type Disagreement struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	EntityType string    `gorm:"column:entity_type" json:"entity_type"`
	EntityID   int64     `gorm:"column:entity_id;index" json:"entity_id"`
	Field      string    `gorm:"column:field" json:"field"`
	SourceA    string    `gorm:"column:source_a" json:"source_a"`
	ValueA     string    `gorm:"column:value_a" json:"value_a"`
	SourceB    string    `gorm:"column:source_b" json:"source_b"`
	ValueB     string    `gorm:"column:value_b" json:"value_b"`
	Resolved   bool      `gorm:"column:resolved;index" json:"resolved"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// ImportLog is one append-only audit row per import batch.
type ImportLog struct {
	// ID is a UUID assigned by the importer.
	ID            string    `gorm:"column:id;primaryKey" json:"id"`
	Source        string    `gorm:"column:source" json:"source"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	Works         int       `gorm:"column:works" json:"works"`
	Releases      int       `gorm:"column:releases" json:"releases"`
	Media         int       `gorm:"column:media" json:"media"`
	Disagreements int       `gorm:"column:disagreements" json:"disagreements"`
	Skipped       int       `gorm:"column:skipped" json:"skipped"`
}

// AllModels lists every persisted model for migration.
func AllModels() []any {
	return []any{
		&SchemaInfo{},
		&Platform{},
		&PlatformReleaseDate{},
		&PlatformRelation{},
		&Company{},
		&CompanyAlias{},
		&Work{},
		&Release{},
		&Media{},
		&Override{},
		&Disagreement{},
		&ImportLog{},
	}
}
