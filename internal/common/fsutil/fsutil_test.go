package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cases := map[string]string{
		"":                   "",
		"~":                  home,
		"~/layout.json":      filepath.Join(home, "layout.json"),
		"~/a/b":              filepath.Join(home, "a", "b"),
		"/abs/layout.json":   "/abs/layout.json",
		"relative/file.json": "relative/file.json",
		"~other/file":        "~other/file",
	}
	for in, want := range cases {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ExpandHome(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExpandAll(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	a, b, empty := "~/ca.pem", "/etc/x", ""
	if err := ExpandAll(&a, &b, &empty, nil); err != nil {
		t.Fatalf("ExpandAll: %v", err)
	}
	if a != filepath.Join(home, "ca.pem") || b != "/etc/x" || empty != "" {
		t.Fatalf("unexpected: %q %q %q", a, b, empty)
	}
}

func TestFileExists(t *testing.T) {
	d := t.TempDir()
	f := filepath.Join(d, "layout.json")
	if FileExists(f) {
		t.Fatalf("file should not exist yet")
	}
	if err := os.WriteFile(f, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !FileExists(f) {
		t.Fatalf("expected file to exist")
	}
	if FileExists(d) {
		t.Fatalf("directory is not a regular file")
	}
}
