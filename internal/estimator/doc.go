// Package estimator derives cost, environmental and operational figures for
// switching a customer's current packaging to the reference flexible pouch.
//
// Everything here is a pure function of a resolved Snapshot: the same inputs
// always produce the same results, and nothing is shared between calls.
package estimator
