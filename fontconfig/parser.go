package fontconfig

// ParseFaces decodes every face in data (a bare SFNT/OpenType file or a
// TrueType Collection) into an FcPattern. A face that fails to parse its
// required tables, or whose cmap cannot be decoded at all, is skipped
// rather than aborting the whole file. The returned patterns are in file
// order (face index 0, 1, 2… for collections).
func ParseFaces(data []byte) ([]FcPattern, error) {
	if !sniffContainer(data) {
		return nil, errBadMagic
	}

	faces, err := parseCollection(data)
	if err != nil {
		return nil, err
	}

	out := make([]FcPattern, 0, len(faces))
	for _, f := range faces {
		p, ok := parseOneFace(f)
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func parseOneFace(f *sfntFace) (FcPattern, bool) {
	head, ok := parseHead(f)
	if !ok {
		return FcPattern{}, false
	}

	cm, err := parseCmap(f)
	if err != nil {
		return FcPattern{}, false
	}

	os2 := parseOS2(f)
	post := parsePost(f)
	names := parseNames(f)

	pattern := DefaultPattern()
	pattern.Name = firstNonEmpty(names[nameIDFullName], names[nameIDFamily])
	pattern.Family = firstNonEmpty(names[nameIDFamily], names[nameIDFullName])
	pattern.PreferredFamily = names[nameIDPreferredFamily]
	pattern.PreferredSubfamily = names[nameIDPreferredSub]
	pattern.PostscriptName = names[nameIDPostscriptName]
	pattern.Copyright = names[nameIDCopyright]
	pattern.Designer = names[nameIDDesigner]
	pattern.License = names[nameIDLicense]
	pattern.Version = names[nameIDVersion]

	italic := head.macStyle&0x2 != 0
	bold := head.macStyle&0x1 != 0
	if os2.present {
		italic = italic || os2.fsSelection&fsSelectionItalic != 0
		bold = bold || os2.fsSelection&fsSelectionBold != 0
	}
	pattern.Italic = boolToMatch(italic)
	pattern.Oblique = boolToMatch(os2.present && os2.fsSelection&fsSelectionOblique != 0)
	pattern.Bold = boolToMatch(bold)

	monospace := post.isFixedPitch
	if !monospace && os2.hasPanose && os2.panose[0] == 2 && os2.panose[3] == 9 {
		monospace = true // PANOSE family class Latin Text, proportion=Monospaced
	}
	if !monospace {
		monospace = isMonospaceByMetrics(f)
	}
	pattern.Monospace = boolToMatch(monospace)

	condensed := false
	if os2.present {
		condensed = os2.widthClass > 0 && os2.widthClass < 5
	}
	pattern.Condensed = boolToMatch(condensed)

	if os2.present {
		pattern.Weight = weightFromOS2Class(os2.weightClass)
		pattern.Stretch = stretchFromOS2Class(os2.widthClass)
	} else {
		pattern.Weight = WeightBold
		if !bold {
			pattern.Weight = WeightNormal
		}
		pattern.Stretch = StretchNormal
	}

	claimed := os2UnicodeRanges(os2)
	if len(claimed) == 0 {
		claimed = []UnicodeRange{{Start: 0x0000, End: 0x10FFFF}}
	}
	pattern.UnicodeRanges = verifyCoverage(cm, claimed)

	if pattern.Name == "" && pattern.Family == "" {
		return FcPattern{}, false
	}

	return pattern, true
}

func boolToMatch(b bool) PatternMatch {
	if b {
		return True
	}
	return False
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
