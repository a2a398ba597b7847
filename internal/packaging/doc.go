// Package packaging describes a customer's current packaging profile and usage
// pattern, and holds the per-category reference constants and unit conversions
// used whenever a measurement is missing.
package packaging
