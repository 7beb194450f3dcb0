package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runPagectl(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("pagectl %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestImportListPublish(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PAGE_STORE", "")
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "site.db"))
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	importTitle, importSlug, importOwner, databasePath = "", "", "", ""

	runPagectl(t, "user", "create", "admin@example.com", "pw")

	md := filepath.Join(dir, "about.md")
	if err := os.WriteFile(md, []byte("# About Our Studio\n\nWe design **things**.\n"), 0o644); err != nil {
		t.Fatalf("write markdown: %v", err)
	}

	out := runPagectl(t, "import", md)
	if !strings.Contains(out, "/about-our-studio") {
		t.Fatalf("unexpected import output %q", out)
	}

	out = runPagectl(t, "list")
	if !strings.Contains(out, "about-our-studio") || !strings.Contains(out, "draft") {
		t.Fatalf("expected draft in list, got %q", out)
	}

	out = runPagectl(t, "publish", "about-our-studio")
	if !strings.Contains(out, "/about-our-studio is now published") {
		t.Fatalf("unexpected publish output %q", out)
	}
}
