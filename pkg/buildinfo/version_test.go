package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(String(), "commit: "+Commit) {
		t.Errorf("String() = %q", String())
	}
}

func TestCacheVersion(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got := CacheVersion(); got != "v1.2.3" {
		t.Errorf("CacheVersion() = %q, want v1.2.3", got)
	}

	Version = "dev"
	if got := CacheVersion(); !strings.HasPrefix(got, "dev") {
		t.Errorf("CacheVersion() = %q, want dev prefix", got)
	}
}
