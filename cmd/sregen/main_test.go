package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunRequiresPatternAndName(t *testing.T) {
	err := run([]string{})
	if err == nil {
		t.Fatal("run() with no flags should fail")
	}
}

func TestRunRequiresName(t *testing.T) {
	err := run([]string{"-pattern", "abc"})
	if err == nil {
		t.Fatal("run() without -name should fail")
	}
}

func TestRunRejectsInvalidPattern(t *testing.T) {
	err := run([]string{"-pattern", "a(", "-name", "Bad"})
	if err == nil {
		t.Fatal("run() with an unbalanced group should fail")
	}
}

func TestGenerateEmitsDeserializeCall(t *testing.T) {
	f := generate("patterns", "Digits", `\d+`, "v1:L(1,*,[u0030-u0039])")
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "package patterns") {
		t.Errorf("output missing package clause:\n%s", out)
	}
	if !strings.Contains(out, "DigitsSerialized") {
		t.Errorf("output missing serialized constant:\n%s", out)
	}
	if !strings.Contains(out, "MustDeserialize") {
		t.Errorf("output missing MustDeserialize call:\n%s", out)
	}
}
