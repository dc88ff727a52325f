// Package pipeline drives the fetch, match, and load steps over the data
// directory. Steps run sequentially under a file lock so two runs never
// write the same CSVs; each incremental step keys its output on an id
// column and skips rows persisted by earlier runs.
package pipeline
