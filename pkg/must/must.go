// Package must turns errors into panics. It is for tests, and for the rare
// places where an error cannot happen.
package must

import (
	"os"
	"path/filepath"
)

// OK panics with err if it is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v, or panics with err if it is not nil. It wraps calls like
// OK1(strconv.Atoi(s)).
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 is like OK1, for functions returning two values and an error.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// WriteFile writes data to the named file, creating its parent directories
// first.
func WriteFile(name, data string) {
	OK(os.MkdirAll(filepath.Dir(name), 0o700))
	OK(os.WriteFile(name, []byte(data), 0o600))
}
