// Package catalog maps language codes to display names and emoji flags.
// A Catalog is read-only once built and safe to share between goroutines.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnknownFlag is shown when a language has no country to draw a flag for.
const UnknownFlag = "🇺🇳"

// Language describes one catalog entry.
type Language struct {
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
}

// Catalog is a lookup table keyed by language code.
type Catalog struct {
	languages map[string]Language
	byName    map[string]string
}

// File is the layout of a catalog override file.
type File struct {
	Languages map[string]Language `yaml:"languages"`
}

// New returns a catalog holding the built-in languages plus extra entries.
// Extra entries replace built-in entries with the same code.
func New(extra map[string]Language) *Catalog {
	c := &Catalog{
		languages: make(map[string]Language, len(builtin)+len(extra)),
		byName:    make(map[string]string, len(builtin)+len(extra)),
	}
	for code, lang := range builtin {
		c.add(code, lang, false)
	}
	for code, lang := range extra {
		c.add(code, lang, true)
	}
	return c
}

// Load builds a catalog from the built-in table and an optional YAML file.
// An empty path yields the built-in table.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return New(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return New(f.Languages), nil
}

// add stores an entry. Built-in names shared by several codes ("he", "iw")
// index the smallest code so name lookups stay deterministic.
func (c *Catalog) add(code string, lang Language, override bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	c.languages[code] = lang
	if lang.Name == "" {
		return
	}
	name := strings.ToLower(lang.Name)
	if prev, ok := c.byName[name]; ok && !override && prev < code {
		return
	}
	c.byName[name] = code
}

func canonicalize(code string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 && len(parts[1]) == 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// lookup resolves exact codes, normalized variants (zh_cn, ZH-cn) and finally the base code.
func (c *Catalog) lookup(code string) (Language, bool) {
	if lang, ok := c.languages[code]; ok {
		return lang, true
	}
	normalized := canonicalize(code)
	if lang, ok := c.languages[normalized]; ok {
		return lang, true
	}
	if base, _, found := strings.Cut(normalized, "-"); found {
		if lang, ok := c.languages[base]; ok {
			return lang, true
		}
	}
	return Language{}, false
}

// Has reports whether code resolves to a catalog entry.
func (c *Catalog) Has(code string) bool {
	_, ok := c.lookup(code)
	return ok
}

// DisplayName returns the human-readable name of a language, or the code itself when unknown.
func (c *Catalog) DisplayName(code string) string {
	if lang, ok := c.lookup(code); ok && lang.Name != "" {
		return lang.Name
	}
	return code
}

// CountryHint returns the country whose flag represents a language.
// Unknown languages fall back to the code, which is a valid country for many languages ("id", "fr").
func (c *Catalog) CountryHint(code string) string {
	if lang, ok := c.lookup(code); ok {
		return lang.Country
	}
	return code
}

// Flag returns the flag glyph for a language code.
func (c *Catalog) Flag(code string) string {
	return FlagGlyph(c.CountryHint(code))
}

// CodeForName maps a display name (or a code) back to a language code.
func (c *Catalog) CodeForName(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	if code, ok := c.byName[strings.ToLower(token)]; ok {
		return code, true
	}
	if _, ok := c.languages[token]; ok {
		return token, true
	}
	if normalized := canonicalize(token); normalized != token {
		if _, ok := c.languages[normalized]; ok {
			return normalized, true
		}
	}
	return "", false
}

// FlagGlyph turns an ISO 3166-1 alpha-2 country code into its regional-indicator flag.
// Anything else yields UnknownFlag.
func FlagGlyph(country string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	if _, ok := countries[country]; !ok {
		return UnknownFlag
	}
	var b strings.Builder
	for _, r := range country {
		b.WriteRune(r - 'A' + 0x1F1E6)
	}
	return b.String()
}
