package debug

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Important info (topology, verdicts, summary)
	LevelLive    = 2 // Live info (evaluations as they happen)
	LevelVerbose = 3 // Verbose (derivation stages, intermediate values)
	LevelTrace   = 4 // Trace (every formula input and output)
)

var (
	level  int
	logger *log.Logger
)

// Init initializes the debug system with a level (0-4).
// 0 = no output
// 1 = important info (topology, limit verdicts)
// 2 = live info (evaluations, report emission)
// 3 = verbose (derivation stages, intermediate values)
// 4 = trace (every formula input and output)
func Init(debugLevel int) {
	level = debugLevel
	if level > LevelOff {
		logger = log.New(os.Stdout, "[AxialMotor] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// SetOutput redirects the trace to w (e.g. a MultiWriter that tees into
// the web activity stream). No-op before Init or at level 0.
func SetOutput(w io.Writer) {
	if logger != nil {
		logger.SetOutput(w)
	}
}

// Level returns the current debug level.
func Level() int {
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return level >= minLevel
}

// --- Level 1 functions (Info): important info ---

// Info prints a level 1 message (important info).
func Info(format string, args ...interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] "+format, args...)
	}
}

// Summary prints an important summary (level 1).
func Summary(title string) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("═══════════════════════════════════════")
		logger.Printf("  %s", title)
		logger.Printf("═══════════════════════════════════════")
	}
}

// Topology prints the resolved machine topology (level 1).
func Topology(coils, poles, magnets int) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] Topology: %d coils, %d poles, %d magnets", coils, poles, magnets)
	}
}

// Check prints a limit-check verdict (level 1).
func Check(name, verdict string) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] Check %s: %s", name, verdict)
	}
}

// Value prints a named value in formatted form (level 1).
func Value(name string, value interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO]   %s = %v", name, value)
	}
}

// --- Level 2 functions (Live): real-time info ---

// Live prints a level 2 message (live info).
func Live(format string, args ...interface{}) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] "+format, args...)
	}
}

// Evaluation prints the start of a design evaluation (level 2).
func Evaluation(id string, coils int, torque float64) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] Evaluating design %s: %d coils, %.1f N·m target", id, coils, torque)
	}
}

// --- Level 3 functions (Verbose): everything ---

// Verbose prints a level 3 message (verbose).
func Verbose(format string, args ...interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] "+format, args...)
	}
}

// Print prints a level 3 message (alias for Verbose).
func Print(format string, args ...interface{}) {
	Verbose(format, args...)
}

// Printf is an alias for Print for compatibility.
func Printf(format string, args ...interface{}) {
	Verbose(format, args...)
}

// Println prints a level 3 message followed by a newline.
func Println(args ...interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Println(args...)
	}
}

// PrintStruct prints a struct in formatted form (level 3).
func PrintStruct(name string, v interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] %s: %+v", name, v)
	}
}

// Section prints a section separator (level 3).
func Section(name string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		logger.Printf("  %s", name)
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

// Step prints a numbered step (level 3).
func Step(num int, description string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] Step %d: %s", num, description)
	}
}

// --- Level 4 functions (Trace): very low level ---

// Trace prints a level 4 message (trace).
func Trace(format string, args ...interface{}) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[TRACE] "+format, args...)
	}
}

// Derivation prints one formula evaluation (level 4).
func Derivation(name string, value float64, unit string) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[TRACE] %s = %.6f %s", name, value, unit)
	}
}

// --- General functions ---

// Error prints a debug error (level 1+).
func Error(err error) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[ERROR] %v", err)
	}
}

// Fmt is a helper function that returns a formatted string
// only if debug is enabled (to avoid unnecessary allocations).
func Fmt(format string, args ...interface{}) string {
	if level > 0 {
		return fmt.Sprintf(format, args...)
	}
	return ""
}
