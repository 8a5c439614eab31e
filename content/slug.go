package content

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrSlugEmpty is returned when a slug is empty.
	ErrSlugEmpty = errors.New("slug must not be empty")

	// ErrSlugFormat is returned when a slug does not match slugPattern.
	ErrSlugFormat = errors.New("slug must contain only lowercase letters, digits and single hyphens between them")

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	reNonAlnum  = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphens   = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug turns a title into a URL-safe identifier:
// "Culto de Ação de Graças!" -> "culto-de-acao-de-gracas".
//
// Diacritics are stripped, every run of characters outside [a-z0-9] becomes a
// single hyphen and hyphens are trimmed from both ends. An empty result means
// no slug could be produced and the caller must decide what to do. Uniqueness
// is not checked here.
func GenerateSlug(title string) string {
	s := strings.ToLower(stripDiacritics(title))
	s = reNonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return reHyphens.ReplaceAllString(s, "-")
}

// ValidateSlug reports whether slug is one or more [a-z0-9]+ groups joined by single hyphens.
func ValidateSlug(slug string) bool {
	return slug != "" && slugPattern.MatchString(slug)
}

// CheckSlug is ValidateSlug with a reason attached.
func CheckSlug(slug string) error {
	if slug == "" {
		return ErrSlugEmpty
	}
	if !slugPattern.MatchString(slug) {
		return ErrSlugFormat
	}
	return nil
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
