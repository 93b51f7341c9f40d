package worldgen

// IdentityMap records template-id -> save-id assignments made while copying
// identity-bearing collections. Lookup is total: ids with no mapping pass
// through unchanged, so an empty or unknown foreign key (for example a null
// initial title holder) keeps its original value.
type IdentityMap map[string]string

// Lookup resolves a template identifier to its save identifier.
func (m IdentityMap) Lookup(old string) string {
	if fresh, ok := m[old]; ok {
		return fresh
	}
	return old
}

// LookupAll resolves a slice of identifiers.
func (m IdentityMap) LookupAll(old []string) []string {
	if old == nil {
		return nil
	}
	out := make([]string, len(old))
	for i, id := range old {
		out[i] = m.Lookup(id)
	}
	return out
}
