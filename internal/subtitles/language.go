package subtitles

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultLanguage     = "en"
	samiDefaultLanguage = "ko"
	unknownLabel        = "Unknown"
)

type languageAlias struct {
	code    string
	label   string
	aliases []string
}

// languageTable is ordered; DetectLanguage returns the first entry with a
// matching filename token.
var languageTable = []languageAlias{
	{code: "en", label: "English", aliases: []string{"en", "eng", "english"}},
	{code: "ko", label: "한국어", aliases: []string{"ko", "kor", "korean", "한국어"}},
	{code: "ja", label: "日本語", aliases: []string{"ja", "jp", "jpn", "japanese", "日本語"}},
	{code: "zh", label: "中文", aliases: []string{"zh", "cn", "chi", "chinese", "中文"}},
	{code: "es", label: "Español", aliases: []string{"es", "spa", "spanish", "español"}},
	{code: "fr", label: "Français", aliases: []string{"fr", "fra", "french", "français"}},
	{code: "de", label: "Deutsch", aliases: []string{"de", "ger", "german", "deutsch"}},
	{code: "it", label: "Italiano", aliases: []string{"it", "ita", "italian", "italiano"}},
	{code: "pt", label: "Português", aliases: []string{"pt", "por", "portuguese", "português"}},
	{code: "ru", label: "Русский", aliases: []string{"ru", "rus", "russian", "русский"}},
}

// DetectLanguage infers a subtitle language code from its filename. SAMI
// files are assumed Korean. Otherwise a token bounded by '.', '_' or '-' on
// both sides (for example "movie.ko.srt") selects the language; English is
// the default.
func DetectLanguage(filename string) string {
	base := filepath.Base(filename)
	if format, err := FormatFromPath(base); err == nil && format == FormatSAMI {
		return samiDefaultLanguage
	}

	return matchLanguageTokens(base)
}

func matchLanguageTokens(base string) string {
	folder := cases.Fold()
	interior := interiorTokens(base)
	for _, entry := range languageTable {
		for _, token := range interior {
			folded := folder.String(token)
			for _, alias := range entry.aliases {
				if folded == folder.String(alias) {
					return entry.code
				}
			}
		}
	}
	return defaultLanguage
}

// interiorTokens splits name on the language delimiters and keeps only the
// tokens that have a delimiter on both sides.
func interiorTokens(name string) []string {
	var tokens []string
	start := -1
	for i, r := range name {
		if !isLanguageDelimiter(r) {
			continue
		}
		if start >= 0 && i > start {
			tokens = append(tokens, name[start:i])
		}
		start = i + 1
	}
	return tokens
}

func isLanguageDelimiter(r rune) bool {
	return r == '.' || r == '_' || r == '-'
}

// LanguageLabel returns the native display name for a language code, or
// "Unknown".
func LanguageLabel(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	for _, entry := range languageTable {
		if entry.code == normalized {
			return entry.label
		}
	}
	return unknownLabel
}

// LanguageTag returns the BCP 47 tag for a language code, or language.Und
// when the code does not parse.
func LanguageTag(code string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return language.Und
	}
	return tag
}
