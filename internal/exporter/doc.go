// Package exporter writes analysis results to disk as CSV files and
// XLSX workbooks under the configured reports directory.
package exporter
