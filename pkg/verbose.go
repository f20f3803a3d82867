package hashmyfiles

import (
	"fmt"
	"os"
	"strings"
)

var globalVerboseLevel int
var debugFlags map[string]bool

// SetVerboseLevel sets the global verbose level (0=quiet, 1=basic, 2=detailed, 3=trace)
func SetVerboseLevel(level int) {
	globalVerboseLevel = level
}

// GetVerboseLevel returns the current verbose level
func GetVerboseLevel() int {
	return globalVerboseLevel
}

// VerboseLog logs a message at the specified verbose level
func VerboseLog(level int, format string, args ...interface{}) {
	if globalVerboseLevel >= level {
		fmt.Fprintf(os.Stderr, "[VERBOSE-%d] ", level)
		fmt.Fprintf(os.Stderr, format, args...)
		if !strings.HasSuffix(format, "\n") {
			fmt.Fprintf(os.Stderr, "\n")
		}
	}
}

// SetDebugFlags sets the debug flags from a comma-separated string,
// e.g. "scan,hash,store"
func SetDebugFlags(flagsStr string) {
	debugFlags = make(map[string]bool)
	if flagsStr == "" {
		return
	}

	for _, flag := range strings.Split(flagsStr, ",") {
		flag = strings.ToLower(strings.TrimSpace(flag))
		if flag != "" {
			debugFlags[flag] = true
		}
	}
}

// IsDebugEnabled returns true if the specified debug flag is enabled
func IsDebugEnabled(flag string) bool {
	if debugFlags == nil {
		return false
	}
	return debugFlags[strings.ToLower(flag)]
}
