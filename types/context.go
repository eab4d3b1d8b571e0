package types

import "github.com/charmbracelet/log"

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// ExitFailure is the process status for every fatal error
const ExitFailure = 1

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Logger  *log.Logger
}
