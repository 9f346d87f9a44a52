package server

import (
	"fmt"
	"strings"

	"github.com/mito-shogi/wars-kif-service/internal/providers"
)

// normalizeProviderName is the label used for provider metrics and logs.
// An explicit name wins; otherwise the provider's package name is used,
// so *wars.Client becomes "wars".
func normalizeProviderName(raw string, provider providers.Provider) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if provider == nil {
		return "provider"
	}
	typeName := strings.TrimLeft(fmt.Sprintf("%T", provider), "*")
	if pkg, _, ok := strings.Cut(typeName, "."); ok && pkg != "" {
		typeName = pkg
	}
	return strings.ToLower(typeName)
}
