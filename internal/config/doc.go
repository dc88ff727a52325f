// Package config loads, normalizes, and validates the boardmatch
// configuration file. Configuration is TOML with a sample embedded for
// `boardmatch config init`; every path field is expanded and absolute after
// Load returns.
package config
