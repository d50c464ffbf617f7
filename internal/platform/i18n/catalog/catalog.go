// Package catalog loads the embedded message catalogs and registers them with
// golang.org/x/text/message.
//
// Catalog files live at locales/<locale>/<namespace>.yaml and use a small,
// flat YAML subset:
//
//	locale: "en-US"
//	namespace: "cli"
//	messages:
//	  "cli.crit_notice": "Critical Hit!"
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the locale every other catalog is translated from, and the
// fallback for unknown locales.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadDefault()

// Bundle holds every loaded message, indexed by locale, then namespace, then key.
type Bundle struct {
	locales map[string]map[string]map[string]string
}

type catalogFile struct {
	locale    string
	namespace string
	messages  map[string]string
}

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/*/*.yaml file in fsys. Keys must be unique
// within a locale, and the base locale must be present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		file, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return b, nil
}

// add checks file against its path and merges it into the bundle.
func (b *Bundle) add(p string, file catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if file.locale != dirLocale {
		return fmt.Errorf("locale %q does not match directory %q", file.locale, dirLocale)
	}
	if file.namespace != fileNamespace {
		return fmt.Errorf("namespace %q does not match file name %q", file.namespace, fileNamespace)
	}
	if _, err := language.Parse(file.locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", file.locale, err)
	}

	namespaces, ok := b.locales[file.locale]
	if !ok {
		namespaces = map[string]map[string]string{}
		b.locales[file.locale] = namespaces
	}
	if _, exists := namespaces[file.namespace]; exists {
		return fmt.Errorf("namespace %q defined twice for %s", file.namespace, file.locale)
	}
	for key := range file.messages {
		for ns, messages := range namespaces {
			if _, dup := messages[key]; dup {
				return fmt.Errorf("key %q already defined in namespace %q", key, ns)
			}
		}
	}
	namespaces[file.namespace] = file.messages
	return nil
}

// Register installs every message with x/text/message, under the full
// locale tag and under its base language.
func (b *Bundle) Register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag := language.Make(base.String()); baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		for _, messages := range b.locales[locale] {
			for key, text := range messages {
				for _, t := range tags {
					if err := message.SetString(t, key, text); err != nil {
						return fmt.Errorf("register %s/%s: %w", locale, key, err)
					}
				}
			}
		}
	}
	return nil
}

// ResolveLocale returns locale when the bundle defines it, else BaseLocale.
func (b *Bundle) ResolveLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if b.HasLocale(locale) {
		return locale
	}
	return BaseLocale
}

// Printer returns a printer for locale, falling back to BaseLocale.
func (b *Bundle) Printer(locale string) *message.Printer {
	return message.NewPrinter(language.MustParse(b.ResolveLocale(locale)))
}

// HasLocale reports whether the bundle has any catalog for locale.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Namespace returns a copy of one namespace for locale. When locale lacks
// the namespace the base locale's messages are returned instead; the first
// result names the locale that answered.
func (b *Bundle) Namespace(locale, namespace string) (string, map[string]string) {
	locale = b.ResolveLocale(locale)
	messages, ok := b.locales[locale][namespace]
	if !ok {
		locale = BaseLocale
		messages = b.locales[BaseLocale][namespace]
	}
	out := make(map[string]string, len(messages))
	for key, text := range messages {
		out[key] = text
	}
	return locale, out
}

func mustLoadDefault() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}

// parseCatalogFile reads the locale and namespace headers and the quoted
// "key": "value" lines that follow messages:.
func parseCatalogFile(data []byte) (catalogFile, error) {
	file := catalogFile{messages: map[string]string{}}
	inMessages := false
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "messages:" {
			inMessages = true
			continue
		}
		if !inMessages {
			name, value, ok := strings.Cut(line, ":")
			if !ok {
				return catalogFile{}, fmt.Errorf("unexpected line %q", line)
			}
			text, err := strconv.Unquote(strings.TrimSpace(value))
			if err != nil {
				return catalogFile{}, fmt.Errorf("header %q: %w", name, err)
			}
			switch name {
			case "locale":
				file.locale = strings.TrimSpace(text)
			case "namespace":
				file.namespace = strings.TrimSpace(text)
			default:
				return catalogFile{}, fmt.Errorf("unexpected header %q", name)
			}
			continue
		}
		key, text, err := parseEntry(line)
		if err != nil {
			return catalogFile{}, fmt.Errorf("entry %q: %w", line, err)
		}
		file.messages[key] = text
	}

	switch {
	case file.locale == "":
		return catalogFile{}, fmt.Errorf("missing locale")
	case file.namespace == "":
		return catalogFile{}, fmt.Errorf("missing namespace")
	case len(file.messages) == 0:
		return catalogFile{}, fmt.Errorf("missing messages")
	}
	return file, nil
}

func parseEntry(line string) (string, string, error) {
	quotedKey, err := strconv.QuotedPrefix(line)
	if err != nil {
		return "", "", fmt.Errorf("key: %w", err)
	}
	rest := strings.TrimSpace(line[len(quotedKey):])
	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	key, err := strconv.Unquote(quotedKey)
	if err != nil {
		return "", "", fmt.Errorf("key: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("blank key")
	}
	text, err := strconv.Unquote(strings.TrimSpace(rest[1:]))
	if err != nil {
		return "", "", fmt.Errorf("value: %w", err)
	}
	return key, text, nil
}
