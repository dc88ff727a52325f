// Package library talks to the library catalog search API and carries the
// catalog record model. Records page through the search endpoint with a
// resumption token; per-record availability comes from the single-record
// endpoint. The CSV codec in this package is the on-disk form the rest of
// the pipeline consumes.
package library
