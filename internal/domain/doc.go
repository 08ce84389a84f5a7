// Package domain models OECD agri-environmental indicator data and the pure
// functions the dashboard runs over it.
//
// # Data Source
//
// The four datasets are OECD SDMX exports flattened to one JSON object (or CSV
// row) per observation. Every row shares the SDMX reference columns and adds one
// value column plus, for three of the datasets, a code column that selects the
// subset the dashboard shows.
//
// # Source Conventions
//
// Reference columns:
//
//	REF_AREA_CODE    ISO-3 country code or regional aggregate ("USA", "EU27_2020")
//	REF_AREA_NAME    display name ("United States")
//	TIME_PERIOD      observation year, a JSON number or a numeric string
//	OBS_STATUS_CODE  SDMX observation status ("A" normal, "E" estimated, "P" provisional)
//	OBS_STATUS_NAME  human-readable status
//
// Value columns are strings with thousands separators ("1,234.5") or plain
// numbers. Empty or non-numeric values mean "not observed" and parse to NaN;
// they are excluded from every aggregate. See [ParseValue].
//
// Discriminants (rows failing the predicate are dropped before mapping):
//
//	Water     WATER_TYPE_CODE  "_T" or the legacy "*T" (total freshwater abstraction)
//	Nutrient  NUTRIENTS        "NITROGEN" (gross nitrogen balance)
//	Energy    MEASURE_CODE     "TOTNRJ" (total direct on-farm energy)
//	Land      none
//
// Land exports carry two header defects from an older extraction. The value
// column may be spelled OBS_VALUE_THOUSAND_H2 instead of OBS_VALUE_THOUSAND_HA and
// the name column may be spelled "REF_CODE_ NAME". The corrected value column
// wins unless it is blank; the legacy name column wins whenever it is filled.
//
// # Keys
//
// Observations are keyed by (REF_AREA_CODE, TIME_PERIOD). Filtering and joins
// match on the code, never on the display name, because names vary in
// punctuation across exports. Duplicate keys are averaged rather than rejected;
// see [BuildIndex].
//
// Years are kept only when they are integral and four digits long. Anything else
// is dropped during normalization so NaN never reaches a year axis.
package domain
