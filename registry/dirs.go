package registry

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// fontDirectories returns the OS-specific set of directories to scan for
// installed fonts. On Linux it additionally parses /etc/fonts/fonts.conf
// for any <dir> entries the distribution has added beyond the conventional
// locations.
func fontDirectories() []string {
	home, _ := homedir.Dir()

	switch runtime.GOOS {
	case "darwin":
		dirs := []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs

	case "windows":
		systemRoot := firstNonEmptyEnv("SystemRoot", "WINDIR")
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}
		dirs := []string{filepath.Join(systemRoot, "Fonts")}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
		return dirs

	default: // linux and other Unix-likes
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts"))
		}
		dirs = append(dirs, parseFontsConf("/etc/fonts/fonts.conf", home)...)
		return dedupStrings(dirs)
	}
}

func firstNonEmptyEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func dedupStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// fontsConfig mirrors the small slice of fontconfig's fonts.conf schema
// this package actually needs: a flat list of <dir> elements. fontconfig's
// real schema supports <include> and environment-variable prefixes
// (xdg:true, prefix="xdg"); those are not modeled here since no directory
// reachable only through them shows up in practice on the distributions
// this runs against.
type fontsConfig struct {
	XMLName xml.Name `xml:"fontconfig"`
	Dirs    []string `xml:"dir"`
}

// parseFontsConf reads dir entries out of a fontconfig XML file, expanding
// a leading "~" to the user's home directory. Any read or parse failure
// yields an empty, non-fatal result — fonts.conf is a nice-to-have source
// of extra directories, not a requirement.
func parseFontsConf(path, home string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cfg fontsConfig
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return nil
	}
	out := make([]string, 0, len(cfg.Dirs))
	for _, d := range cfg.Dirs {
		d = strings.TrimSpace(d)
		if home != "" && strings.HasPrefix(d, "~") {
			d = filepath.Join(home, strings.TrimPrefix(d, "~"))
		}
		out = append(out, d)
	}
	return out
}

// isFontFile reports whether path has an extension this registry knows how
// to parse.
func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	default:
		return false
	}
}

// guessFamilyFromFilename derives a coarse, lowercase, alphanumeric-only
// family guess from a font file's base name, used to seed known-path
// lookups before the file itself has been parsed. Common style suffixes
// are stripped first so e.g. "Arial-BoldItalic.ttf" and "Arial.ttf" guess
// the same family.
func guessFamilyFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	suffixes := []string{
		"-Regular", "-Bold", "-Italic", "-Light", "-Medium", "-Thin", "-Black",
		"-ExtraLight", "-ExtraBold", "-SemiBold", "-DemiBold", "-Heavy", "-Oblique",
		"_Regular", "_Bold", "_Italic",
		"Regular", "Bold", "Italic", "Light", "Medium", "Thin", "Black", "Oblique",
	}
	for _, suf := range suffixes {
		stem = strings.ReplaceAll(stem, suf, "")
	}

	var b strings.Builder
	for _, r := range stem {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// GetCommonFontFamilies returns the normalized common default family names
// for the running OS, so a host can pre-warm exactly the fonts it is
// likely to need instead of waiting on the full background scan.
func GetCommonFontFamilies() []string {
	return commonFamiliesForOS()
}

// commonFamiliesForOS lists the normalized (guessFamilyFromFilename-style)
// family names of each OS's own default stack, used to prioritize their
// build jobs ahead of the long tail of installed fonts.
func commonFamiliesForOS() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"sanfrancisco", "helveticaneue", "helvetica", "arial",
			"timesnewroman", "georgia", "menlo", "sfmono", "courier", "lucidagrande",
		}
	case "windows":
		return []string{
			"segoeui", "arial", "timesnewroman", "calibri",
			"consolas", "couriernew", "tahoma", "verdana",
		}
	default:
		return []string{
			"dejavusans", "dejavuserif", "dejavusansmono", "liberation",
			"noto", "ubuntu", "roboto", "droidsans", "arial",
		}
	}
}
