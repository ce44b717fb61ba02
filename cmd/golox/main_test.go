package main

import (
	"bytes"
	"testing"

	"golox/interpreter"
)

func TestStartProfilingNoFlagsIsANoOp(t *testing.T) {
	stop := startProfiling()
	if stop == nil {
		t.Fatal("startProfiling() returned a nil stop function")
	}
	// With none of -cpuprofile/-memprofile/-trace set, this must not touch
	// the filesystem or panic.
	stop()
}

func TestRunSourceUnitSuccess(t *testing.T) {
	var out bytes.Buffer
	in := interpreter.New()
	in.Stdout = &out
	if code := runSourceUnit([]byte(`print 1 + 1;`), "", in); code != 0 {
		t.Errorf("runSourceUnit() = %d, want 0", code)
	}
	if out.String() != "2\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "2\n")
	}
}

func TestRunSourceUnitStaticError(t *testing.T) {
	in := interpreter.New()
	in.Stdout = &bytes.Buffer{}
	if code := runSourceUnit([]byte(`print 1 +;`), "", in); code != exitStatic {
		t.Errorf("runSourceUnit() = %d, want %d (static error)", code, exitStatic)
	}
}

func TestRunSourceUnitRuntimeError(t *testing.T) {
	in := interpreter.New()
	in.Stdout = &bytes.Buffer{}
	if code := runSourceUnit([]byte(`print b;`), "", in); code != exitRuntime {
		t.Errorf("runSourceUnit() = %d, want %d (runtime error)", code, exitRuntime)
	}
}

func TestRunSourceUnitStatePersistsAcrossCalls(t *testing.T) {
	var out bytes.Buffer
	in := interpreter.New()
	in.Stdout = &out
	if code := runSourceUnit([]byte(`var a = 41;`), "", in); code != 0 {
		t.Fatalf("runSourceUnit() = %d, want 0", code)
	}
	if code := runSourceUnit([]byte(`print a + 1;`), "", in); code != 0 {
		t.Fatalf("runSourceUnit() = %d, want 0", code)
	}
	if out.String() != "42\n" {
		t.Errorf("stdout = %q, want %q (REPL-style state should persist)", out.String(), "42\n")
	}
}
