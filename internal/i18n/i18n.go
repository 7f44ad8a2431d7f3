// Package i18n localizes the user-facing strings produced around the engine:
// timeline subtitles and calendar event summaries. The engine itself never
// imports this package; it receives format functions by injection.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message keys for one configured language.
type Translator struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer

	// DetectedLanguages lists the locale codes found in the embedded files.
	DetectedLanguages []string
}

// New loads the embedded locale bundle and builds a localizer for lang,
// falling back to English for unknown codes or missing keys.
func New(lang string) *Translator {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}
		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		t.DetectedLanguages = append(t.DetectedLanguages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}
	t.localizer = goi18n.NewLocalizer(bundle, lang, config.DefaultLanguage)
	return t
}

// Msg translates a key without template data. Missing keys degrade to the
// key itself rather than failing.
func (t *Translator) Msg(key string) string {
	return t.MsgData(key, nil)
}

// MsgData translates a key with template data.
func (t *Translator) MsgData(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// BirthdaySubtitle renders the subtitle of a birthday timeline item.
// Matches the signature of engine.Engine.FormatBirthdaySubtitle.
func (t *Translator) BirthdaySubtitle(daysUntil int) string {
	switch daysUntil {
	case 0:
		return t.Msg("subtitle_birthday_today")
	case 1:
		return t.Msg("subtitle_birthday_tomorrow")
	default:
		return t.MsgData("subtitle_birthday_in_days", map[string]any{"Days": daysUntil})
	}
}

// CheckInSubtitle renders the subtitle of a check-in suggestion.
// Matches the signature of engine.Engine.FormatCheckInSubtitle.
func (t *Translator) CheckInSubtitle(daysSince int, contacted bool) string {
	if !contacted {
		return t.Msg("subtitle_never_contacted")
	}
	return t.MsgData("subtitle_days_ago", map[string]any{"Days": daysSince})
}

// EventSummary renders a calendar event title for a birthday occurrence.
func (t *Translator) EventSummary(name string, age int, yearKnown bool) string {
	switch {
	case !yearKnown:
		return t.MsgData("event_summary", map[string]any{"Name": name})
	case age == 0:
		return t.MsgData("event_summary_birth", map[string]any{"Name": name})
	default:
		return t.MsgData("event_summary_age", map[string]any{"Name": name, "Age": age})
	}
}
