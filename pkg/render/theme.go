package render

import (
	"errors"
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys renderers look up in theme.RendererConfig.Partials.
const (
	PartialPage         = "signup.page"
	PartialForm         = "signup.form"
	PartialField        = "signup.field"
	PartialConfirmation = "signup.confirmation"
)

// ErrUnknownVariant is returned when a variant is requested that the manifest
// does not declare.
var ErrUnknownVariant = errors.New("render: unknown theme variant")

// ResolveTheme flattens manifest and the selected variant into the
// configuration renderers consume. Variant tokens, templates and asset files
// override the base manifest; fallbacks fill partials neither declares. An
// empty variant selects the base manifest only.
func ResolveTheme(manifest *theme.Manifest, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, errors.New("render: theme manifest is required")
	}
	if err := theme.NewRegistry().Register(manifest); err != nil {
		return nil, fmt.Errorf("render: invalid theme manifest %q: %w", manifest.Name, err)
	}

	variant = strings.TrimSpace(variant)
	var selected theme.Variant
	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrUnknownVariant, variant, manifest.Name)
		}
		selected = v
	}

	tokens := mergeStrings(manifest.Tokens, selected.Tokens)
	partials := mergeStrings(fallbacks, manifest.Templates, selected.Templates)

	prefix := manifest.Assets.Prefix
	if strings.TrimSpace(selected.Assets.Prefix) != "" {
		prefix = selected.Assets.Prefix
	}
	files := mergeStrings(manifest.Assets.Files, selected.Assets.Files)

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  CSSVars(tokens),
		AssetURL: assetResolver(prefix, files),
	}, nil
}

// CSSVars maps design tokens to CSS custom properties ("brand" -> "--brand").
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, "--") {
			key = "--" + strings.ReplaceAll(key, ".", "-")
		}
		vars[key] = value
	}
	return vars
}

// PartialFor returns the template a theme maps key to, or fallback.
func PartialFor(cfg *theme.RendererConfig, key, fallback string) string {
	if cfg != nil {
		if tpl := strings.TrimSpace(cfg.Partials[key]); tpl != "" {
			return tpl
		}
	}
	return fallback
}

// AssetURL resolves a theme asset key, returning "" when no theme or no
// matching file is configured.
func AssetURL(cfg *theme.RendererConfig, key string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL(key)
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || strings.TrimSpace(file) == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
			return file
		}
		if strings.Contains(prefix, "://") {
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		}
		return path.Join(prefix, file)
	}
}

func mergeStrings(layers ...map[string]string) map[string]string {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}
	if size == 0 {
		return nil
	}
	out := make(map[string]string, size)
	for _, layer := range layers {
		for key, value := range layer {
			out[key] = value
		}
	}
	return out
}
