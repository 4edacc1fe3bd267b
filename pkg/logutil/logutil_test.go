package logutil

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestGetLogger(t *testing.T) {
	logger := GetLogger("[foo] ")
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)

	logger.Printf("x = %d", 10)
	if !strings.Contains(buf.String(), "[foo] ") || !strings.HasSuffix(buf.String(), "x = 10\n") {
		t.Errorf("got log output %q", buf.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	logger := GetLogger("[bar] ")
	fname := t.TempDir() + "/log"
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("hello")
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}
}
