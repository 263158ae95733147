package internal

import "strconv"

var (
	rawQuiet   = "false" // Whether quiet mode defaults on
	rawDebug   = "false" // Whether debug mode defaults on
	rawVerbose = "false" // Whether verbose logging defaults on
)

var quietMode, debugMode, verboseMode bool

// Parses the linker flags into usable runtime variables.
//
// The rawQuiet, rawDebug, and rawVerbose variables may be set via ldflags
// during the build process. If not set, they default to "false". CLI flags
// parsed later take precedence over these defaults.
func init() {
	quietMode, _ = strconv.ParseBool(rawQuiet)
	debugMode, _ = strconv.ParseBool(rawDebug)
	verboseMode, _ = strconv.ParseBool(rawVerbose)
}

// Returns true if quiet mode defaults on for this build.
func IsQuiet() bool { return quietMode }

// Returns true if debug mode defaults on for this build.
func IsDebug() bool { return debugMode }

// Returns true if verbose logging defaults on for this build.
func IsVerbose() bool { return verboseMode }
