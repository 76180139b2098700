// Package domain models aquaculture pond ("viveiro") monitoring records.
//
// # Data Source
//
// Records originate from an operational Google Sheets spreadsheet maintained
// by field teams, fetched as a CSV export on every render pass. Cells are
// free text: any cell may be blank, malformed, or formatted under either
// Brazilian or US numeric conventions. The domain layer therefore treats the
// raw cell text as the source of truth and derives typed values on demand,
// never persisting derivations back.
//
// # Numeric Conventions
//
// Spreadsheet numerics mix comma-decimal and dot-decimal formats:
//
//	"12,5"     → 12.5   (comma as decimal separator)
//	"1.234,5"  → 1234.5 (dot as thousands separator, comma as decimal)
//	"12.5"     → 12.5   (already dot-decimal)
//
// The disambiguation rule: exactly one comma combined with at most one dot
// means the dot is a thousands separator. Anything unparsable coerces to an
// absent [Number], never an error. Coordinates never carry thousands
// separators, so for them only the comma-to-dot substitution applies.
// See [ParseNumber] and [ParseCoordinate].
//
// # Planned vs Actual Metric Pairs
//
// Each record carries four (planned, actual) column pairs: total pond count,
// full-pond count, area in hectares, and average depth in meters. A non-zero
// actual minus planned difference on any pair flags the record as divergent,
// the dashboard's main data-quality signal. Pairs whose columns are missing from
// the sheet contribute nothing, and a failed coercion on either side yields
// an absent diff rather than a false flag. See [Detect].
//
// # Dates and Months
//
// The filter date column uses day-first notation (dd/mm/yyyy). Month labels
// are the twelve fixed Portuguese three-letter abbreviations
// (Jan, Fev, ..., Dez) regardless of host locale.
//
// # Photo Links
//
// Photo cells hold either direct image URLs or Google Drive share links.
// Drive links are recognized by two patterns, a "/d/<id>" path segment or
// an "id=<id>" query parameter, and rewritten into thumbnail and
// full-resolution image URLs. Unrecognized links pass through unchanged.
// See [DriveFileID] and [ResolvePhoto].
package domain
