package store_test

import (
	"path/filepath"
	"testing"

	"github.com/aurelia/aurelia-sub054/pkg/store"
	"github.com/aurelia/aurelia-sub054/pkg/store/storetest"
)

func TestHistory(t *testing.T) {
	storetest.TestHistory(t, store.MustTempStore(t))
}

func TestVar(t *testing.T) {
	storetest.TestVar(t, store.MustTempStore(t))
}

func TestNewStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")
	st, err := store.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	st.AddEntry("a.b")
	st.Close()

	st, err = store.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if text, err := st.Entry(1); text != "a.b" || err != nil {
		t.Errorf("Entry(1) => (%q, %v), want (%q, nil)", text, err, "a.b")
	}
	if seq, err := st.NextSeq(); seq != 2 || err != nil {
		t.Errorf("NextSeq() => (%v, %v), want (2, nil)", seq, err)
	}
}
