package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validRecords = `source: people.csv
groups:
  - name: person
    maps:
      - role: subject
        template: "http://example.org/person/{id}"
      - role: object
        reference: name
`

const invalidRecords = `groups:
  - name: person
    maps:
      - role: predicate
        constant: {literal: "name"}
      - role: subject
        template: "http://example.org/{id"
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeRecords(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "semmap version "+Version) {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestCheckCommand_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeRecords(t, dir, "people.termmap.yaml", validRecords)

	out, err := execute(t, "check", "--log-level", "error", path)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "checked 1 files: 2 term maps built, 0 rejected") {
		t.Errorf("unexpected summary: %q", out)
	}
}

func TestCheckCommand_ReportsRejections(t *testing.T) {
	dir := t.TempDir()
	path := writeRecords(t, dir, "bad.termmap.yaml", invalidRecords)

	out, err := execute(t, "check", "--log-level", "error", filepath.Join(dir, "*.termmap.yaml"))
	if !errors.Is(err, errRejected) {
		t.Fatalf("expected errRejected, got %v", err)
	}
	for _, want := range []string{
		path + ":4: data error in predicate map",
		path + ":6: syntax error in subject map",
		"field: http://www.w3.org/ns/r2rml#template",
		"link: http://www.w3.org/ns/r2rml#subjectMap",
		"link: http://www.w3.org/ns/r2rml#predicateMap",
		"hint:",
		"2 rejected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCommand_FailFast(t *testing.T) {
	dir := t.TempDir()
	writeRecords(t, dir, "bad.termmap.yaml", invalidRecords)

	out, err := execute(t, "check", "--log-level", "error", "--policy", "fail-fast", dir)
	if !errors.Is(err, errRejected) {
		t.Fatalf("expected errRejected, got %v", err)
	}
	if !strings.Contains(out, "1 rejected") {
		t.Errorf("fail-fast should stop at the first rejection:\n%s", out)
	}
}

func TestCheckCommand_InvalidPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeRecords(t, dir, "people.termmap.yaml", validRecords)

	_, err := execute(t, "check", "--policy", "sometimes", path)
	if err == nil || errors.Is(err, errRejected) {
		t.Fatalf("expected config validation error, got %v", err)
	}
}

func TestCheckCommand_NoMatches(t *testing.T) {
	_, err := execute(t, "check", "--log-level", "error", filepath.Join(t.TempDir(), "*.termmap.yaml"))
	if err == nil {
		t.Fatal("expected error when no files match")
	}
}
