// Package application provides application initialization and dependency wiring.
// It builds the session storage, estimator engine, hand-off submitter, API
// router and HTTP server, leaving the main package to CLI parsing and
// orchestration.
package application
