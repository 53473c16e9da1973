// Package env holds the process-wide runtime state the cone engine
// consults: the verbose/error log sinks and the arithmetic overflow
// check switch. All of it is single-writer-init, read-only thereafter.
package env

import (
	"math/big"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu sync.RWMutex

	verbose    = false
	verboseLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	errorLog   = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.ErrorLevel)

	arithmeticOverflowTest = false
	overflowTestModulus    = big.NewInt(1000000007)
)

// SetVerbose toggles the verbose output sink. Meant to be called once
// during setup, before any FullCone.Compute runs concurrently.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		verboseLog = verboseLog.Level(zerolog.DebugLevel)
	} else {
		verboseLog = verboseLog.Level(zerolog.InfoLevel)
	}
}

// Verbose reports whether verbose logging is enabled.
func Verbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// VerboseLog returns the logger used for non-fatal progress output.
func VerboseLog() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &verboseLog
}

// ErrorLog returns the logger used for user-visible failure output.
func ErrorLog() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &errorLog
}

// SetArithmeticCheck enables or disables the mod-p shadow computation
// performed during the Fourier-Motzkin pivot, and sets its modulus.
func SetArithmeticCheck(enabled bool, modulus *big.Int) {
	mu.Lock()
	defer mu.Unlock()
	arithmeticOverflowTest = enabled
	if modulus != nil {
		overflowTestModulus = new(big.Int).Set(modulus)
	}
}

// ArithmeticCheck reports whether the mod-p shadow computation is enabled,
// and the modulus to use.
func ArithmeticCheck() (bool, *big.Int) {
	mu.RLock()
	defer mu.RUnlock()
	return arithmeticOverflowTest, new(big.Int).Set(overflowTestModulus)
}
