// Package integrity provides catalog health checks.
//
// Unlike the reconciliation engine, which repairs duplicate works, this
// package only reports: it validates the referential structure of the
// catalog and surfaces conditions an operator should look at.
//
// # Checks Provided
//
//   - References: finds releases pointing at missing works or platforms and
//     media pointing at missing releases.
//   - Schema: verifies every catalog table exists and the persisted schema
//     version matches this build.
//   - Disagreements: counts unresolved source conflicts awaiting curation.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/references : Runs the referential check.
//   - GET /integrity/schema : Runs the schema check.
package integrity
