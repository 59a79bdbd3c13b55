package assert

import "github.com/cargorun/playmode/oerror"

// IsTrue panics with a formatted error if ok is false. It guards internal invariants that callers can
// only break through programming mistakes.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
