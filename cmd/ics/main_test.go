package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWritesStaticCalendar(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public", "wedding.ics")

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--output", out, "--uid-domain", "uyenbatu.test"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc := string(data)
	if !strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(doc, "END:VCALENDAR\r\n") {
		t.Fatalf("unexpected document framing:\n%s", doc)
	}
	if !strings.Contains(doc, "@uyenbatu.test\r\n") {
		t.Fatalf("uid domain flag not applied:\n%s", doc)
	}
	if !strings.Contains(stdout.String(), "Wrote "+out) {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestRejectsMissingEventFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--event", filepath.Join(t.TempDir(), "missing.yaml"), "--output", filepath.Join(t.TempDir(), "x.ics")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for a missing event file")
	}
}
