// Package i18n localizes the labels shown to students: topic names, hint
// titles and achievement names. Messages live in embedded JSON files and
// every lookup falls back to the English text compiled into the caller.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

type ctxKey struct{}

// Translator owns the message bundle.
type Translator struct {
	bundle *i18n.Bundle
	lang   string
	logger *zap.Logger
}

// New loads every embedded locale. lang is the default language used when
// a request names none.
func New(lang string, logger *zap.Logger) (*Translator, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
		logger.Debug("loaded locale file", zap.String("file", e.Name()))
	}

	return &Translator{bundle: bundle, lang: tag.String(), logger: logger}, nil
}

// Languages lists the loaded locales.
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.String()
	}
	return out
}

// Localizer returns a localizer for the given Accept-Language values,
// falling back to the translator's default language.
func (t *Translator) Localizer(langs ...string) *Localizer {
	langs = append(langs, t.lang)
	return &Localizer{loc: i18n.NewLocalizer(t.bundle, langs...), logger: t.logger}
}

// Localizer translates messages for one set of preferred languages.
type Localizer struct {
	loc    *i18n.Localizer
	logger *zap.Logger
}

// WithLocalizer stores a localizer in the context.
func WithLocalizer(ctx context.Context, l *Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the localizer stored by WithLocalizer, or nil.
func FromContext(ctx context.Context) *Localizer {
	l, _ := ctx.Value(ctxKey{}).(*Localizer)
	return l
}

// Label translates id, returning fallback when the message is missing.
// A nil Localizer always returns fallback.
func (l *Localizer) Label(id, fallback string) string {
	if l == nil {
		return fallback
	}
	s, err := l.loc.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: fallback},
	})
	if err != nil {
		l.logger.Debug("missing translation", zap.String("id", id), zap.Error(err))
		return fallback
	}
	return s
}

// Plural translates a counted message such as "3 problems solved". one
// and other are the English templates and may use {{.Count}}.
func (l *Localizer) Plural(id string, count int, one, other string) string {
	fallback := other
	if count == 1 {
		fallback = one
	}
	fallback = strings.ReplaceAll(fallback, "{{.Count}}", strconv.Itoa(count))
	if l == nil {
		return fallback
	}
	s, err := l.loc.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, One: one, Other: other},
		PluralCount:    count,
		TemplateData:   map[string]any{"Count": count},
	})
	if err != nil {
		l.logger.Debug("missing translation", zap.String("id", id), zap.Error(err))
		return fallback
	}
	return s
}

// T translates id with the context's localizer.
func T(ctx context.Context, id, fallback string) string {
	return FromContext(ctx).Label(id, fallback)
}

// TopicName localizes a topic display name.
func (l *Localizer) TopicName(id, fallback string) string {
	return l.Label("topic."+id, fallback)
}

// HintTitle localizes a hint strategy title.
func (l *Localizer) HintTitle(strategy, fallback string) string {
	return l.Label("hint."+strategy, fallback)
}

// AchievementName localizes an achievement name.
func (l *Localizer) AchievementName(id, fallback string) string {
	return l.Label("achievement."+id, fallback)
}
