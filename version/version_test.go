package version

import (
	"fmt"
	"testing"
)

func TestVersion(t *testing.T) {
	want := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if got := Version(); got != want {
		t.Fatalf("TestVersion: got %s, want %s", got, want)
	}
}

func TestSanitizeBuild(t *testing.T) {
	tests := []struct {
		build string
		want  string
	}{
		{"", ""},
		{"release", "release"},
		{"rc-1", "rc-1"},
		{"bad metadata", ""},
		{"under_score", ""},
	}
	for _, test := range tests {
		if got := sanitizeBuild(test.build); got != test.want {
			t.Errorf("TestSanitizeBuild: sanitizeBuild(%q) is %q, want %q",
				test.build, got, test.want)
		}
	}
}
