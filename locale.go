package vaultprefs

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// SystemLanguage is the stored language value meaning "follow the environment".
const SystemLanguage = "system"

// Locale is a language with an optional region, e.g. {"pt", "BR"}.
type Locale struct {
	Language string
	Region   string
}

// String renders the locale in the stored "xx" or "xx_YY" form.
func (l Locale) String() string {
	if l.Region == "" {
		return l.Language
	}
	return l.Language + "_" + l.Region
}

// Tag converts the locale to a BCP 47 tag. Unrecognized input yields language.Und.
func (l Locale) Tag() language.Tag {
	if l.Region == "" {
		return language.Make(l.Language)
	}
	return language.Make(l.Language + "-" + l.Region)
}

// parseLanguageSetting splits a stored "xx" or "xx_YY" value.
// Only the first underscore separates language from region; anything after a
// second underscore is ignored.
func parseLanguageSetting(lang string) Locale {
	parts := strings.Split(lang, "_")
	if len(parts) == 1 {
		return Locale{Language: parts[0]}
	}
	return Locale{Language: parts[0], Region: parts[1]}
}

// EnvironmentLocale derives the process locale from LC_ALL, LC_MESSAGES or LANG.
// It falls back to English when none is set or the value is the POSIX locale.
func EnvironmentLocale() Locale {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return localeFromPOSIX(v)
		}
	}
	return Locale{Language: "en"}
}

// localeFromPOSIX parses values such as "pt_BR.UTF-8" or "de_DE@euro".
func localeFromPOSIX(v string) Locale {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "" || v == "C" || v == "POSIX" {
		return Locale{Language: "en"}
	}

	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return parseLanguageSetting(v)
	}
	base, _ := tag.Base()
	loc := Locale{Language: base.String()}
	if region, conf := tag.Region(); conf == language.Exact {
		loc.Region = region.String()
	}
	return loc
}
