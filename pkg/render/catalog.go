package render

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog is a Translator backed by per-locale message maps. Lookups fall
// back from "es-MX" to "es" before failing.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{messages: make(map[string]map[string]string)}
}

// LoadCatalog decodes a YAML document shaped as locale -> key -> message.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("render: decode catalog: %w", err)
	}
	catalog := NewCatalog()
	for locale, messages := range raw {
		catalog.Add(locale, messages)
	}
	return catalog, nil
}

// LoadCatalogFS reads and decodes name from fsys.
func LoadCatalogFS(fsys fs.FS, name string) (*Catalog, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("render: open catalog %q: %w", name, err)
	}
	defer file.Close()
	return LoadCatalog(file)
}

// Add merges messages into locale.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.messages[locale]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, message := range messages {
		bucket[key] = message
	}
}

// Merge copies every message of other into c. Messages in other win.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil || other == c {
		return
	}
	other.mu.RLock()
	snapshot := make(map[string]map[string]string, len(other.messages))
	for locale, messages := range other.messages {
		snapshot[locale] = messages
	}
	other.mu.RUnlock()

	for locale, messages := range snapshot {
		c.Add(locale, messages)
	}
}

// Locales lists the loaded locales.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	return out
}

// Translate implements Translator. args are applied with fmt.Sprintf when
// present.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range localeChain(normalizeLocale(locale)) {
		if message, ok := c.messages[candidate][key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(message, args...), nil
			}
			return message, nil
		}
	}
	return "", fmt.Errorf("render: no translation for %q in locale %q", key, locale)
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}

func localeChain(locale string) []string {
	if locale == "" {
		return nil
	}
	chain := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		chain = append(chain, locale[:idx])
	}
	return chain
}
