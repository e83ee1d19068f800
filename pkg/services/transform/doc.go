// Package transform holds the row-level business rules shared by every report:
// channel extraction, directorate normalization, row classification,
// grouping and aggregation, ranking and joining.
//
// Nothing in this package returns an error. Missing or malformed optional
// values degrade to "" or 0 and callers decide whether to surface a notice.
package transform
