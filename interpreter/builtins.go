package interpreter

import "time"

// defineBuiltins installs the language's built-ins into globals. clock is
// the only standard-library surface this language has.
func defineBuiltins(globals *environment) {
	globals.define("clock", &nativeFunction{
		name:   "clock",
		arityN: 0,
		fn: func([]loxObject) loxObject {
			return loxNumber(float64(time.Now().UnixNano()) / float64(time.Second))
		},
	})
}
