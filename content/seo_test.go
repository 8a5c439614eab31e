package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTitleLength(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantValid bool
	}{
		{name: "empty", title: "", wantValid: false},
		{name: "below minimum", title: strings.Repeat("a", 29), wantValid: false},
		{name: "at minimum", title: strings.Repeat("a", 30), wantValid: true},
		{name: "at maximum", title: strings.Repeat("a", 60), wantValid: true},
		{name: "one above maximum", title: strings.Repeat("a", 61), wantValid: false},
		{name: "accented characters count once", title: strings.Repeat("ã", 60), wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateTitleLength(tt.title)
			assert.Equal(t, tt.wantValid, res.IsValid)
			assert.NotEmpty(t, res.Recommendation)
		})
	}
}

func TestValidateTitleLengthRecommendationDiffers(t *testing.T) {
	short := ValidateTitleLength("")
	long := ValidateTitleLength(strings.Repeat("a", 61))

	assert.NotEqual(t, short.Recommendation, long.Recommendation)
	assert.Contains(t, short.Recommendation, "curto")
	assert.Contains(t, long.Recommendation, "longo")
	assert.Contains(t, long.Recommendation, "1 caractere")
}

func TestValidateDescriptionLength(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		wantValid bool
	}{
		{name: "empty", length: 0, wantValid: false},
		{name: "below minimum", length: 119, wantValid: false},
		{name: "at minimum", length: 120, wantValid: true},
		{name: "at maximum", length: 160, wantValid: true},
		{name: "one above maximum", length: 161, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateDescriptionLength(strings.Repeat("d", tt.length))
			assert.Equal(t, tt.wantValid, res.IsValid)
			assert.Equal(t, tt.length, res.Length)
		})
	}

	short := ValidateDescriptionLength("curta")
	long := ValidateDescriptionLength(strings.Repeat("d", 200))
	assert.NotEqual(t, short.Recommendation, long.Recommendation)
}

func TestConfiguredThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.TitleMin, th.TitleMax = 5, 10

	assert.True(t, th.ValidateTitleLength("hello").IsValid)
	assert.False(t, th.ValidateTitleLength("hello world").IsValid)
}

func TestValidateMetaFields(t *testing.T) {
	th := DefaultThresholds()

	assert.True(t, th.ValidateMetaTitle("").IsValid, "empty meta title falls back to the title")
	assert.True(t, th.ValidateMetaTitle(strings.Repeat("m", 60)).IsValid)
	assert.False(t, th.ValidateMetaTitle(strings.Repeat("m", 61)).IsValid)

	assert.True(t, th.ValidateMetaDescription("").IsValid)
	assert.False(t, th.ValidateMetaDescription(strings.Repeat("m", 161)).IsValid)
}

func TestValidateKeywords(t *testing.T) {
	th := DefaultThresholds()

	assert.True(t, th.ValidateKeywords([]string{"fé", "oração", "igreja"}).IsValid)
	assert.True(t, th.ValidateKeywords(nil).IsValid)

	dup := th.ValidateKeywords([]string{"Oração", "oracao"})
	assert.False(t, dup.IsValid)
	assert.Contains(t, dup.Recommendation, "repetidas")

	many := make([]string, 11)
	for i := range many {
		many[i] = strings.Repeat("k", i+1)
	}
	assert.False(t, th.ValidateKeywords(many).IsValid)
}
