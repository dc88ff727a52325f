// Package textutil provides pure string helpers for the matching engine:
// title normalization for comparison and fuzzy similarity scoring between
// titles. All functions are deterministic and side-effect free.
package textutil
