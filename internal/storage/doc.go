// Package storage keeps live wizard sessions in memory. Nothing is persisted:
// sessions expire after an idle period and are dropped on restart.
package storage
