// Package id generates node identities for descriptors that omit an
// explicit "id" field (spec.md §6), and run-correlation ids for logging
// across a pipeline execution.
package id

import "github.com/google/uuid"

// NewNodeID returns a fresh random node id.
func NewNodeID() string { return uuid.NewString() }

// NewRunID returns a fresh random id correlating log lines for one
// pipeline run across its nodes and store backend.
func NewRunID() string { return uuid.NewString() }
