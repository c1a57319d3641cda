package fontconfig

// GenericFamily is one of the CSS generic family keywords.
type GenericFamily uint8

const (
	FamilyNone GenericFamily = iota
	FamilySerif
	FamilySansSerif
	FamilyMonospace
	FamilyCursive
	FamilyFantasy
	FamilySystemUI
)

// ParseGenericFamily recognizes the CSS generic family keywords, case
// sensitively as CSS itself does at the parser boundary (callers normalize
// case before calling this if they want it case-insensitive).
func ParseGenericFamily(name string) (GenericFamily, bool) {
	switch name {
	case "serif":
		return FamilySerif, true
	case "sans-serif":
		return FamilySansSerif, true
	case "monospace":
		return FamilyMonospace, true
	case "cursive":
		return FamilyCursive, true
	case "fantasy":
		return FamilyFantasy, true
	case "system-ui":
		return FamilySystemUI, true
	default:
		return FamilyNone, false
	}
}

// genericFamilyTable maps a GenericFamily to a per-OS, preference-ordered
// list of concrete family names to try. The lists are grounded on the
// common system font stacks shipped by major browsers/desktop toolkits;
// the first installed match wins.
var genericFamilyTable = map[string]map[GenericFamily][]string{
	"darwin": {
		FamilySerif:     {"Times New Roman", "Georgia", "Times"},
		FamilySansSerif: {"Helvetica Neue", "Helvetica", "Arial", "San Francisco"},
		FamilyMonospace: {"Menlo", "Monaco", "Courier New"},
		FamilyCursive:   {"Apple Chancery", "Snell Roundhand"},
		FamilyFantasy:   {"Papyrus"},
		FamilySystemUI:  {".AppleSystemUIFont", "San Francisco", "Helvetica Neue"},
	},
	"windows": {
		FamilySerif:     {"Times New Roman", "Georgia", "Cambria"},
		FamilySansSerif: {"Segoe UI", "Arial", "Tahoma", "Verdana"},
		FamilyMonospace: {"Consolas", "Courier New", "Lucida Console"},
		FamilyCursive:   {"Comic Sans MS"},
		FamilyFantasy:   {"Impact"},
		FamilySystemUI:  {"Segoe UI", "Tahoma"},
	},
	"linux": {
		FamilySerif:     {"DejaVu Serif", "Liberation Serif", "Noto Serif"},
		FamilySansSerif: {"DejaVu Sans", "Liberation Sans", "Noto Sans", "Ubuntu"},
		FamilyMonospace: {"DejaVu Sans Mono", "Liberation Mono", "Noto Sans Mono"},
		FamilyCursive:   {"URW Chancery L"},
		FamilyFantasy:   {"Impact"},
		FamilySystemUI:  {"Cantarell", "Noto Sans", "DejaVu Sans"},
	},
}

// ExpandGenericFamily returns the concrete family candidates for the
// running OS (or Linux's list as a generic fallback on unrecognized
// platforms — e.g. BSDs, which share the fontconfig-style stack).
func ExpandGenericFamily(g GenericFamily) []string {
	return ExpandGenericFamilyForOS(g, Current())
}

// ExpandGenericFamilyForOS is ExpandGenericFamily but for an explicitly
// chosen OS rather than the one the process happens to run on.
func ExpandGenericFamilyForOS(g GenericFamily, os OperatingSystem) []string {
	table, ok := genericFamilyTable[os.tableKey()]
	if !ok {
		table = genericFamilyTable["linux"]
	}
	return table[g]
}

// ExpandFamilyStack takes a CSS-style font-family list (concrete names
// intermixed with generic keywords) and returns the flattened list of
// concrete names to try in order, with each generic keyword replaced by
// its OS-specific expansion.
func ExpandFamilyStack(stack []string) []string {
	return ExpandFamilyStackForOS(stack, Current())
}

// ExpandFamilyStackForOS is ExpandFamilyStack but for an explicitly chosen
// OS rather than the one the process happens to run on.
func ExpandFamilyStackForOS(stack []string, os OperatingSystem) []string {
	out := make([]string, 0, len(stack))
	for _, name := range stack {
		if g, ok := ParseGenericFamily(name); ok {
			out = append(out, ExpandGenericFamilyForOS(g, os)...)
			continue
		}
		out = append(out, name)
	}
	return out
}
