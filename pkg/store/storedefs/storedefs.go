// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoMatchingEntry is the error returned when an Entry, NextEntry or
// PrevEntry query completes with no result.
var ErrNoMatchingEntry = errors.New("no matching history entry")

// ErrNoVar is returned by Var when there is no such variable.
var ErrNoVar = errors.New("no such variable")

// Store is an interface satisfied by the storage service.
type Store interface {
	NextSeq() (int, error)
	AddEntry(text string) (int, error)
	DelEntry(seq int) error
	Entry(seq int) (string, error)
	Entries(from, upto int) ([]Entry, error)
	NextEntry(from int, prefix string) (Entry, error)
	PrevEntry(upto int, prefix string) (Entry, error)

	Var(name string) (string, error)
	SetVar(name, value string) error
	DelVar(name string) error
	VarNames() ([]string, error)
}

// Entry is an expression in the evaluation history.
type Entry struct {
	Text string
	Seq  int
}
