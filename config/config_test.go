package config

import (
	"testing"

	"github.com/igreja-site/cms-backend/content"
	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":             " 9090 ",
		"BAD_INT":          "abc",
		"AUTO_MIGRATE":     "true",
		"ACCEPTED_ORIGINS": "https://igreja.org, ,http://localhost:3000",
	}

	assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(c, "BAD_INT", 8080))
	assert.Equal(t, 1, GetInt(nil, "PORT", 1))
	assert.True(t, GetBool(c, "AUTO_MIGRATE", false))
	assert.False(t, GetBool(c, "MISSING", false))
	assert.Equal(t, "x", GetString(c, "MISSING", "x"))
	assert.Equal(t, []string{"https://igreja.org", "http://localhost:3000"}, GetStrings(c, "ACCEPTED_ORIGINS"))
	assert.Nil(t, GetStrings(c, "MISSING"))
}

func TestSEOThresholds(t *testing.T) {
	assert.Equal(t, content.DefaultThresholds(), SEOThresholds(nil))

	got := SEOThresholds(map[string]string{"SEO_TITLE_MAX": "70", "CONTENT_MIN_WORDS": "100"})
	want := content.DefaultThresholds()
	want.TitleMax = 70
	want.MinWords = 100
	assert.Equal(t, want, got)
}

func TestSplit(t *testing.T) {
	k, v := split("DATABASE_URL=postgres://u:p@h/db?a=b")
	assert.Equal(t, "DATABASE_URL", k)
	assert.Equal(t, "postgres://u:p@h/db?a=b", v)

	k, v = split("EMPTY")
	assert.Equal(t, "EMPTY", k)
	assert.Empty(t, v)
}
