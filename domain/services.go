package domain

import "context"

// GraphService builds and analyzes the module dependency graph
type GraphService interface {
	// Analyze discovers, extracts and builds the dependency graph for a tree
	Analyze(ctx context.Context, req GraphRequest) (*GraphResponse, error)
}

// ImpactService computes the blast radius of changing one module
type ImpactService interface {
	// Analyze traverses the reverse graph from the request target
	Analyze(ctx context.Context, req ImpactRequest) (*ImpactResponse, error)
}

// DeadExportsService finds exported symbols with no importers
type DeadExportsService interface {
	// Analyze cross-references exports against all import sites
	Analyze(ctx context.Context, req DeadExportsRequest) (*DeadExportsResponse, error)
}

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	// StartTask creates a new progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress is actually displayed
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}
