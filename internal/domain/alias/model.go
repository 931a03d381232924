package alias

// Mapping is the full user-curated alias table: normalized raw name to
// canonical team identifier. Keys are lowercased with whitespace
// collapsed to hyphens before storage.
type Mapping map[string]string
