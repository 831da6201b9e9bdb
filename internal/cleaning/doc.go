// Package cleaning normalizes a raw patient roster into an analysis-ready
// dataset.
//
// The Cleaner applies its passes in a fixed order: field coercion (dates,
// billing amounts, ages), gender normalization, free-text trimming, exact
// duplicate removal, missing-value imputation, and finally derived columns
// (Age Group, Admission Year, Admission Month, Month Name). Imputation
// statistics are computed before any value is filled, so imputed values never
// influence the median.
//
// Every pass checks for its column first; a roster without a Blood Type
// column simply skips the blood-type work rather than failing.
package cleaning
