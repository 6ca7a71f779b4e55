package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (invalid file, environment or flag values)
	ExitDataError   = 3 // Registry unavailable, no publications, metadata lookup failed
)
