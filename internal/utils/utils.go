package utils

// NormalizeNames drops empty entries and removes duplicates while preserving the order of
// first occurrence. Names are kept verbatim, surrounding whitespace included.
func NormalizeNames(names []string) []string {
	encounteredNames := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, exists := encounteredNames[name]; exists {
			continue
		}
		encounteredNames[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

// NameSet converts names into a set keyed by exact string value.
func NameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
