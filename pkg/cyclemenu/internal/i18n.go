package internal

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFiles embed.FS

// Message IDs of the bundled translations.
const (
	MessageStateClosed  = "StateClosed"
	MessageStateOpening = "StateOpening"
	MessageStateOpen    = "StateOpen"
	MessageStateClosing = "StateClosing"
	MessageToggleHint   = "ToggleHint"
	MessageItemLabel    = "ItemLabel"
)

// Translator produces localized accessibility labels. English is the
// fallback for unknown or unsupported languages.
type Translator struct {
	bundle  *i18n.Bundle
	matcher language.Matcher

	mu         sync.Mutex
	localizers map[language.Tag]*i18n.Localizer
}

var (
	translatorOnce sync.Once
	translator     *Translator
	translatorErr  error
)

// GetTranslator returns the process-wide translator loaded from the bundled
// message files.
func GetTranslator() (*Translator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = NewTranslator(localeFiles)
	})
	return translator, translatorErr
}

// NewTranslator loads every locales/*.toml file of fsys.
func NewTranslator(fsys fs.FS) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	paths, err := fs.Glob(fsys, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("list message files: %w", err)
	}
	for _, p := range paths {
		if _, err := bundle.LoadMessageFileFS(fsys, p); err != nil {
			return nil, fmt.Errorf("load message file %s: %w", p, err)
		}
	}

	return &Translator{
		bundle:     bundle,
		matcher:    language.NewMatcher(bundle.LanguageTags()),
		localizers: make(map[language.Tag]*i18n.Localizer),
	}, nil
}

// Languages lists the languages that have a message file.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// Match returns the supported language closest to lang.
func (t *Translator) Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, index, confidence := t.matcher.Match(tag)
	if confidence == language.No {
		return language.English
	}
	return t.bundle.LanguageTags()[index]
}

func (t *Translator) localizer(lang string) *i18n.Localizer {
	tag := t.Match(lang)

	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.localizers[tag]
	if !ok {
		l = i18n.NewLocalizer(t.bundle, tag.String())
		t.localizers[tag] = l
	}
	return l
}

// Translate renders message id in lang. The id itself is returned when no
// translation exists.
func (t *Translator) Translate(lang, id string, data map[string]any) string {
	s, err := t.localizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		GetInternalLogger().Debug("Missing translation", "lang", lang, "id", id, "error", err)
		return id
	}
	return s
}
