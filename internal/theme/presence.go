package theme

// SectionSpec names an optional document section and, optionally, the
// field an element must populate for the section to count as present.
type SectionSpec struct {
	Name  string
	Field string
}

// HasItems reports whether value is a non-empty list and, when a
// discriminator field is given, whether at least one element carries a
// non-null, non-empty value for it.
func HasItems(value interface{}, field string) bool {
	items, ok := value.([]interface{})
	if !ok || len(items) == 0 {
		return false
	}
	if field == "" {
		return true
	}
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		v, ok := m[field]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return true
	}
	return false
}

// ApplyPresenceFlags sets doc["<section>Bool"] for every section spec.
func ApplyPresenceFlags(doc map[string]interface{}, specs []SectionSpec) {
	for _, sp := range specs {
		doc[sp.Name+"Bool"] = HasItems(doc[sp.Name], sp.Field)
	}
}
