package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yaml")

	content := `
questions:
  - name: username
    kind: input
    message: "What's your name?"
    hint: "first name is fine"
  - name: proceed
    kind: confirm
    message: "Continue?"
    default: "true"
  - name: color
    kind: select
    message: "Pick a color"
    choices:
      - red
      - green
      - blue
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Questions) != 3 {
		t.Fatalf("Questions = %d, want 3", len(f.Questions))
	}
	if f.Questions[0].Kind != KindInput {
		t.Errorf("Questions[0].Kind = %q, want %q", f.Questions[0].Kind, KindInput)
	}
	if f.Questions[2].Kind != KindSelect || len(f.Questions[2].Choices) != 3 {
		t.Errorf("Questions[2] = %+v, want select with 3 choices", f.Questions[2])
	}
}

func TestLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	f, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load should not error for a missing file: %v", err)
	}
	if f != nil {
		t.Error("expected nil File for a missing path")
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
questions:
  - kind: input
    message: "hi"
`,
			wantErr: "'name' is required",
		},
		{
			name: "missing message",
			content: `
questions:
  - name: q1
    kind: input
`,
			wantErr: "'message' is required",
		},
		{
			name: "missing kind",
			content: `
questions:
  - name: q1
    message: "hi"
`,
			wantErr: "'kind' is required",
		},
		{
			name: "invalid kind",
			content: `
questions:
  - name: q1
    kind: textarea
    message: "hi"
`,
			wantErr: "invalid kind",
		},
		{
			name: "select without choices",
			content: `
questions:
  - name: q1
    kind: select
    message: "hi"
`,
			wantErr: "'choices' is required",
		},
		{
			name: "input with choices",
			content: `
questions:
  - name: q1
    kind: input
    message: "hi"
    choices: ["a", "b"]
`,
			wantErr: "'choices' is not valid",
		},
		{
			name: "duplicate name",
			content: `
questions:
  - name: q1
    kind: input
    message: "hi"
  - name: q1
    kind: input
    message: "there"
`,
			wantErr: "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "questions.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load() error = nil, want containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}
