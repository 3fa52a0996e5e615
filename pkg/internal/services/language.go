package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
	"github.com/samber/lo"
)

// The detector loads its models lazily; building it is expensive, so it is
// shared process-wide.
var languageDetector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromAllSpokenLanguages().
		WithLowAccuracyMode().
		Build()
})

// DetectLanguage guesses the lowercase ISO 639-1 code of a post body; nil
// when the detector has no confident answer.
func DetectLanguage(content string) *string {
	if len(strings.TrimSpace(content)) == 0 {
		return nil
	}
	lang, ok := languageDetector().DetectLanguageOf(content)
	if !ok {
		return nil
	}
	return lo.ToPtr(strings.ToLower(lang.IsoCode639_1().String()))
}
