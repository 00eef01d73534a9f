package domain

import (
	"regexp"
	"strings"
)

// Language tags used throughout the pipeline.
const (
	LanguageArabic  = "ar"
	LanguageEnglish = "en"
	LanguageMixed   = "mixed"
	LanguageUnknown = "unknown"
)

var (
	arabicRunes  = regexp.MustCompile(`[\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}]+`)
	englishRunes = regexp.MustCompile(`[a-zA-Z]+`)

	diacritics   = regexp.MustCompile(`[\x{064B}-\x{065F}\x{0670}]`)
	alefForms    = regexp.MustCompile(`[إأآا]`)
	yaaForms     = regexp.MustCompile(`[يى]`)
	haaForms     = regexp.MustCompile(`[ةه]`)
	hamzaForms   = regexp.MustCompile(`[ؤئ]`)
	spaceCollaps = regexp.MustCompile(`\s+`)
)

// DetectLanguage reports whether text is primarily Arabic or English.
// A language dominates when it has more than twice the other's
// character count; otherwise the text is mixed.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return LanguageUnknown
	}

	arabicCount := 0
	for _, m := range arabicRunes.FindAllString(text, -1) {
		arabicCount += len([]rune(m))
	}
	englishCount := 0
	for _, m := range englishRunes.FindAllString(text, -1) {
		englishCount += len(m)
	}

	switch {
	case arabicCount > englishCount*2:
		return LanguageArabic
	case englishCount > arabicCount*2:
		return LanguageEnglish
	case arabicCount == 0 && englishCount == 0:
		return LanguageUnknown
	default:
		return LanguageMixed
	}
}

// NormalizeArabic strips diacritics and folds letter variants so that
// query and corpus text embed consistently regardless of orthography.
func NormalizeArabic(text string) string {
	if text == "" {
		return ""
	}
	text = diacritics.ReplaceAllString(text, "")
	text = alefForms.ReplaceAllString(text, "ا")
	text = yaaForms.ReplaceAllString(text, "ي")
	text = haaForms.ReplaceAllString(text, "ه")
	text = hamzaForms.ReplaceAllString(text, "ء")
	return spaceCollaps.ReplaceAllString(text, " ")
}

// ArabicStopwords returns common Arabic stopwords, used by the local
// hash embedder to down-weight function words.
func ArabicStopwords() []string {
	return []string{
		"من", "إلى", "عن", "على", "في", "مع", "هذا", "هذه", "ذلك", "تلك",
		"هو", "هي", "هم", "هن", "انت", "انتم", "انتن", "انا", "نحن",
		"كان", "كانت", "كانوا", "يكون", "تكون", "اكون", "نكون",
		"ما", "لا", "لم", "لن", "ان", "اذا", "لو", "لكن", "و", "ف", "ثم", "او", "ام",
		"حتى", "الى", "الذي", "التي", "الذين", "اللذين", "اللتين", "اللاتي",
		"كل", "بعض", "غير", "كثير", "قليل", "جدا",
	}
}

var (
	articleEN = regexp.MustCompile(`(?i)\barticle\s+(\d+)`)
	articleAR = regexp.MustCompile(`المادة\s*[(]?\s*(\d+)`)
)

// DetectArticle returns the first article number referenced in text,
// in either language, or the empty string.
func DetectArticle(text string) string {
	if m := articleEN.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := articleAR.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
