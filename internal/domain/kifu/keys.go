package kifu

// Storage key prefixes used by the key-value collaborator.
const (
	PrefixDetail  = "game"
	PrefixCSA     = "csa"
	PrefixHistory = "history"
)

// StorageKey builds the composite key under which an entity is persisted.
func StorageKey(prefix, id string) string {
	return prefix + ":" + id
}

// Bool returns a pointer to v; used for Player.IsWin.
func Bool(v bool) *bool {
	return &v
}
