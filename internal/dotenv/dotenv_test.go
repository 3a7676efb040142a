package dotenv

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_MissingFileIsNoop(t *testing.T) {
	t.Parallel()
	if err := LoadFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadFile missing file error: %v", err)
	}
}

func TestLoadFile_LoadsValuesAndPreservesExisting(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	content := "" +
		"# comment\n" +
		"LEADGATE_TEST_PLAIN=loaded\n" +
		"LEADGATE_TEST_QUOTED=\"hello world\"\n" +
		"LEADGATE_TEST_SINGLE='quoted too'\n" +
		"export LEADGATE_TEST_EXPORTED=ok\n" +
		"LEADGATE_TEST_EXISTING=from_file\n" +
		"not a pair\n" +
		"=no_key\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("LEADGATE_TEST_EXISTING", "already_set")

	if err := LoadFile(envPath); err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	for _, k := range []string{
		"LEADGATE_TEST_PLAIN",
		"LEADGATE_TEST_QUOTED",
		"LEADGATE_TEST_SINGLE",
		"LEADGATE_TEST_EXPORTED",
	} {
		t.Cleanup(func() { os.Unsetenv(k) })
	}

	if got := os.Getenv("LEADGATE_TEST_PLAIN"); got != "loaded" {
		t.Fatalf("PLAIN=%q", got)
	}
	if got := os.Getenv("LEADGATE_TEST_QUOTED"); got != "hello world" {
		t.Fatalf("QUOTED=%q", got)
	}
	if got := os.Getenv("LEADGATE_TEST_SINGLE"); got != "quoted too" {
		t.Fatalf("SINGLE=%q", got)
	}
	if got := os.Getenv("LEADGATE_TEST_EXPORTED"); got != "ok" {
		t.Fatalf("EXPORTED=%q", got)
	}
	if got := os.Getenv("LEADGATE_TEST_EXISTING"); got != "already_set" {
		t.Fatalf("EXISTING=%q, want existing value preserved", got)
	}
}

func TestParseLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		key  string
		val  string
		ok   bool
	}{
		{"KEY=value", "KEY", "value", true},
		{"  KEY = value ", "KEY", "value", true},
		{"export KEY=value", "KEY", "value", true},
		{`KEY="a b"`, "KEY", "a b", true},
		{"KEY=", "KEY", "", true},
		{"# comment", "", "", false},
		{"", "", "", false},
		{"novalue", "", "", false},
		{"=orphan", "", "", false},
	}
	for _, tt := range tests {
		key, val, ok := parseLine(tt.line)
		if key != tt.key || val != tt.val || ok != tt.ok {
			t.Fatalf("parseLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.line, key, val, ok, tt.key, tt.val, tt.ok)
		}
	}
}
