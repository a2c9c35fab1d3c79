package store

// DefaultRecentRuns is used when a caller asks for a non-positive number of runs.
const DefaultRecentRuns = 10

// MaxRecentRuns caps how much history a single request may pull.
const MaxRecentRuns = 200
