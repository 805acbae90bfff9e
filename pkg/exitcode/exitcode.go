// Package exitcode provides standardized exit codes for brandkit
package exitcode

// Exit codes for the brandkit CLI. A run that only produced warnings still
// exits with Success; fatal errors map to the codes below.
const (
	Success        = 0
	GeneralError   = 1
	ConfigError    = 2
	SourceError    = 3
	OutputError    = 4
	ManifestError  = 5
	ResolutionMiss = 6
	ServerError    = 7
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case SourceError:
		return "Source tree error"
	case OutputError:
		return "Output tree error"
	case ManifestError:
		return "Manifest error"
	case ResolutionMiss:
		return "No matching variant"
	case ServerError:
		return "Server error"
	default:
		return "Unknown error"
	}
}
