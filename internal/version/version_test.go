package version

import "testing"

func TestVersionAlwaysSet(t *testing.T) {
	// Whatever init resolved (ldflags, VCS revision, or the dev
	// fallback), commands must always have something to print.
	if Version == "" {
		t.Fatal("Version is empty")
	}
}
