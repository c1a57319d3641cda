package fontconfig

import "runtime"

// OperatingSystem identifies which platform's default font stack to use
// when expanding a generic family, independent of the OS the process is
// actually running on — useful for a document generator that must target a
// fixed platform's font set regardless of where it renders.
type OperatingSystem uint8

const (
	OSLinux OperatingSystem = iota
	OSWindows
	OSMacOS
	OSWasm
)

func (o OperatingSystem) String() string {
	switch o {
	case OSWindows:
		return "windows"
	case OSMacOS:
		return "macos"
	case OSWasm:
		return "wasm"
	default:
		return "linux"
	}
}

// Current returns the OperatingSystem matching the process's actual
// runtime.GOOS, falling back to OSLinux for any Unix-like platform that
// isn't otherwise distinguished (BSDs share the fontconfig-style stack).
func Current() OperatingSystem {
	switch runtime.GOOS {
	case "windows":
		return OSWindows
	case "darwin", "ios":
		return OSMacOS
	case "js", "wasip1":
		return OSWasm
	default:
		return OSLinux
	}
}

func (o OperatingSystem) tableKey() string {
	switch o {
	case OSWindows:
		return "windows"
	case OSMacOS:
		return "darwin"
	default:
		return "linux"
	}
}
