package render

import "embed"

//go:embed locales/messages.yaml
var embeddedLocales embed.FS

// DefaultCatalog returns the bundled translations. English text is the
// fallback built into renderers, so the catalog only carries other locales.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalogFS(embeddedLocales, "locales/messages.yaml")
}
