// Package match implements the record matching engine that links library
// catalog entries to external game database entries. Four strategies run in
// fixed priority order with strict short-circuit: exact normalized-name
// equality, substring containment ranked by fuzzy score, author lookup with
// fuzzy title comparison, and author lookup with exact year equality. The
// disambiguator reduces a strategy's candidate set to at most one winner.
//
// Provider failures never reach the strategies. The fetcher retries
// transient errors and degrades exhausted calls to empty results, so the
// matching core has only empty-result paths.
package match
