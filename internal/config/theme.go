package config

import theme "github.com/goliatone/go-theme"

// Manifest converts the theme section into a go-theme manifest.
func (t ThemeConfig) Manifest() *theme.Manifest {
	manifest := &theme.Manifest{
		Name:      t.Name,
		Version:   t.Version,
		Tokens:    t.Tokens,
		Templates: t.Templates,
		Assets: theme.Assets{
			Prefix: t.Assets.Prefix,
			Files:  t.Assets.Files,
		},
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, v := range t.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Templates,
				Assets: theme.Assets{
					Prefix: v.Assets.Prefix,
					Files:  v.Assets.Files,
				},
			}
		}
	}
	return manifest
}
