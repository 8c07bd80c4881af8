package msg

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetLogWriters_Streams(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(LogWriters{Ops: &ops, Diag: &diag, Trace: &trace})
	defer SetLogWriters(LogWriters{})

	Opsf("plan %d", 1)
	Diagf("melt line %s", "z")
	Tracef("module %d", 7)

	if !strings.Contains(ops.String(), "[msg] ") || !strings.Contains(ops.String(), "plan 1") {
		t.Errorf("ops output = %q", ops.String())
	}
	if !strings.Contains(diag.String(), "melt line z") {
		t.Errorf("diag output = %q", diag.String())
	}
	if !strings.Contains(trace.String(), "module 7") {
		t.Errorf("trace output = %q", trace.String())
	}
}

func TestSetLogWriters_Disable(t *testing.T) {
	var ops bytes.Buffer
	SetLogWriters(LogWriters{Ops: &ops})
	SetLogWriters(LogWriters{})

	Opsf("should not appear")
	Diagf("should not appear")
	Tracef("should not appear")

	if ops.Len() > 0 {
		t.Errorf("output after disabling = %q, want empty", ops.String())
	}
}
