package fontconfig

import "github.com/h2non/filetype"

// sniffContainer reports whether data's magic bytes look like a font
// container this package can parse, independent of whatever extension the
// source path carried. TrueType Collections aren't in filetype's matcher
// set, so a "ttcf"-prefixed buffer is let through here and left for
// parseCollection itself to accept or reject.
func sniffContainer(data []byte) bool {
	if len(data) >= 4 && string(data[:4]) == "ttcf" {
		return true
	}
	return filetype.Is(data, "ttf") || filetype.Is(data, "otf")
}
