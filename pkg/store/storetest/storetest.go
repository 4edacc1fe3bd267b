// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/aurelia/aurelia-sub054/pkg/store/storedefs"
	"github.com/google/go-cmp/cmp"
)

var (
	entries = []string{"a + b", "a | upper", "items.length", "a & debounce"}
	starts  = 1
	ends    = starts + len(entries)
)

func matchErr(e1, e2 error) bool {
	return (e1 == nil && e2 == nil) || (e1 != nil && e2 != nil && e1.Error() == e2.Error())
}

// TestHistory runs the test suite for the history API.
func TestHistory(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextSeq()
	if startSeq != starts || err != nil {
		t.Errorf("store.NextSeq() => (%v, %v), want (%v, nil)",
			startSeq, err, starts)
	}

	for i, text := range entries {
		wantSeq := starts + i
		seq, err := store.AddEntry(text)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddEntry(%q) => (%v, %v), want (%v, nil)",
				text, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextSeq()
	if endSeq != ends || err != nil {
		t.Errorf("store.NextSeq() => (%v, %v), want (%v, nil)",
			endSeq, err, ends)
	}

	for i, wantText := range entries {
		seq := starts + i
		text, err := store.Entry(seq)
		if text != wantText || err != nil {
			t.Errorf("store.Entry(%v) => (%q, %v), want (%q, nil)",
				seq, text, err, wantText)
		}
	}
	if _, err := store.Entry(ends); !matchErr(err, storedefs.ErrNoMatchingEntry) {
		t.Errorf("store.Entry(%v) => error %v, want %v",
			ends, err, storedefs.ErrNoMatchingEntry)
	}

	got, err := store.Entries(starts+1, ends-1)
	want := []storedefs.Entry{{Text: entries[1], Seq: starts + 1}, {Text: entries[2], Seq: starts + 2}}
	if !cmp.Equal(got, want) || err != nil {
		t.Errorf("store.Entries(...) => (%v, %v), want (%v, nil)", got, err, want)
	}

	prefixTests := []struct {
		reverse bool
		seq     int
		prefix  string
		wantSeq int
		wantErr error
	}{
		{false, starts, "a", starts, nil},
		{false, starts + 1, "a", starts + 1, nil},
		{false, starts + 2, "a", starts + 3, nil},
		{false, starts, "items", starts + 2, nil},
		{false, starts, "x", 0, storedefs.ErrNoMatchingEntry},
		{true, ends, "a", starts + 3, nil},
		{true, starts + 3, "a", starts + 1, nil},
		{true, ends + 10, "items", starts + 2, nil},
		{true, starts, "a", 0, storedefs.ErrNoMatchingEntry},
	}
	for _, tt := range prefixTests {
		f, name := store.NextEntry, "NextEntry"
		if tt.reverse {
			f, name = store.PrevEntry, "PrevEntry"
		}
		entry, err := f(tt.seq, tt.prefix)
		if !matchErr(err, tt.wantErr) {
			t.Errorf("store.%s(%v, %q) => error %v, want %v",
				name, tt.seq, tt.prefix, err, tt.wantErr)
		}
		if tt.wantErr == nil && entry.Seq != tt.wantSeq {
			t.Errorf("store.%s(%v, %q) => seq %v, want %v",
				name, tt.seq, tt.prefix, entry.Seq, tt.wantSeq)
		}
	}

	if err := store.DelEntry(starts); err != nil {
		t.Errorf("store.DelEntry(%v) => %v, want nil", starts, err)
	}
	if _, err := store.Entry(starts); !matchErr(err, storedefs.ErrNoMatchingEntry) {
		t.Errorf("store.Entry(%v) after deletion => error %v, want %v",
			starts, err, storedefs.ErrNoMatchingEntry)
	}
}

// TestVar runs the test suite for the variable API.
func TestVar(t *testing.T, store storedefs.Store) {
	t.Helper()

	const name = "user"
	const value = "{ name: 'Ada' }"

	if _, err := store.Var(name); !matchErr(err, storedefs.ErrNoVar) {
		t.Errorf("store.Var(%q) => error %v, want %v", name, err, storedefs.ErrNoVar)
	}
	if err := store.SetVar(name, value); err != nil {
		t.Errorf("store.SetVar(%q, %q) => %v, want nil", name, value, err)
	}
	if v, err := store.Var(name); v != value || err != nil {
		t.Errorf("store.Var(%q) => (%q, %v), want (%q, nil)", name, v, err, value)
	}
	if err := store.SetVar("count", "2"); err != nil {
		t.Errorf("store.SetVar(%q, %q) => %v, want nil", "count", "2", err)
	}
	names, err := store.VarNames()
	if wantNames := []string{"count", name}; !cmp.Equal(names, wantNames) || err != nil {
		t.Errorf("store.VarNames() => (%v, %v), want (%v, nil)", names, err, wantNames)
	}
	if err := store.DelVar(name); err != nil {
		t.Errorf("store.DelVar(%q) => %v, want nil", name, err)
	}
	if _, err := store.Var(name); !matchErr(err, storedefs.ErrNoVar) {
		t.Errorf("store.Var(%q) after deletion => error %v, want %v",
			name, err, storedefs.ErrNoVar)
	}
	if err := store.DelVar("missing"); err != nil {
		t.Errorf("store.DelVar(%q) => %v, want nil", "missing", err)
	}
}
