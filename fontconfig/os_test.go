package fontconfig

import "testing"

func TestOperatingSystemString(t *testing.T) {
	tests := []struct {
		os   OperatingSystem
		want string
	}{
		{OSLinux, "linux"},
		{OSWindows, "windows"},
		{OSMacOS, "macos"},
		{OSWasm, "wasm"},
	}
	for _, tt := range tests {
		if got := tt.os.String(); got != tt.want {
			t.Errorf("OperatingSystem(%d).String() = %q, want %q", tt.os, got, tt.want)
		}
	}
}

func TestCurrentReturnsAStableKnownValue(t *testing.T) {
	got := Current()
	switch got {
	case OSLinux, OSWindows, OSMacOS, OSWasm:
	default:
		t.Errorf("Current() returned unrecognized value %v", got)
	}
}

func TestExpandGenericFamilyForOSDiffersAcrossPlatforms(t *testing.T) {
	linux := ExpandGenericFamilyForOS(FamilySansSerif, OSLinux)
	windows := ExpandGenericFamilyForOS(FamilySansSerif, OSWindows)
	macos := ExpandGenericFamilyForOS(FamilySansSerif, OSMacOS)

	if len(linux) == 0 || len(windows) == 0 || len(macos) == 0 {
		t.Fatalf("expected every OS to expand sans-serif to at least one family")
	}
	if equalStringSlices(linux, windows) {
		t.Errorf("expected linux and windows sans-serif stacks to differ, both were %v", linux)
	}
}

func TestExpandFamilyStackForOSPreservesConcreteNames(t *testing.T) {
	stack := []string{"Brand Sans", "sans-serif"}
	got := ExpandFamilyStackForOS(stack, OSWindows)
	if len(got) < 2 {
		t.Fatalf("expected at least the concrete name plus an expansion, got %v", got)
	}
	if got[0] != "Brand Sans" {
		t.Errorf("expected concrete family to be preserved first, got %q", got[0])
	}
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
