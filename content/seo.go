package content

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Thresholds are the advisory bounds used by the validators. Lengths are in
// characters (runes), content sizes in words.
type Thresholds struct {
	TitleMin           int
	TitleMax           int
	DescriptionMin     int
	DescriptionMax     int
	MetaTitleMax       int
	MetaDescriptionMax int
	MaxKeywords        int
	MinWords           int
	ThinWords          int
}

// DefaultThresholds follows the usual search result truncation limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TitleMin:           30,
		TitleMax:           60,
		DescriptionMin:     120,
		DescriptionMax:     160,
		MetaTitleMax:       60,
		MetaDescriptionMax: 160,
		MaxKeywords:        10,
		MinWords:           50,
		ThinWords:          300,
	}
}

// FieldResult is the outcome of a length check on one field.
type FieldResult struct {
	IsValid        bool   `json:"isValid"`
	Recommendation string `json:"recommendation"`
	Length         int    `json:"length"`
}

// ValidateTitleLength checks title against DefaultThresholds.
func ValidateTitleLength(title string) FieldResult {
	return DefaultThresholds().ValidateTitleLength(title)
}

// ValidateDescriptionLength checks description against DefaultThresholds.
func ValidateDescriptionLength(description string) FieldResult {
	return DefaultThresholds().ValidateDescriptionLength(description)
}

func (t Thresholds) ValidateTitleLength(title string) FieldResult {
	n := runeLen(title)
	switch {
	case n < t.TitleMin:
		return FieldResult{Length: n, Recommendation: fmt.Sprintf(
			"Título muito curto: adicione mais detalhes (faltam %s para o mínimo de %d).", chars(t.TitleMin-n), t.TitleMin)}
	case n > t.TitleMax:
		return FieldResult{Length: n, Recommendation: fmt.Sprintf(
			"Título muito longo: será truncado nos resultados de busca (%s a mais que o máximo de %d).", chars(n-t.TitleMax), t.TitleMax)}
	}
	return FieldResult{IsValid: true, Length: n, Recommendation: "Tamanho do título adequado."}
}

func (t Thresholds) ValidateDescriptionLength(description string) FieldResult {
	n := runeLen(description)
	switch {
	case n < t.DescriptionMin:
		return FieldResult{Length: n, Recommendation: fmt.Sprintf(
			"Descrição muito curta: resuma melhor o conteúdo (faltam %s para o mínimo de %d).", chars(t.DescriptionMin-n), t.DescriptionMin)}
	case n > t.DescriptionMax:
		return FieldResult{Length: n, Recommendation: fmt.Sprintf(
			"Descrição muito longa: será cortada nos resultados de busca (%s a mais que o máximo de %d).", chars(n-t.DescriptionMax), t.DescriptionMax)}
	}
	return FieldResult{IsValid: true, Length: n, Recommendation: "Tamanho da descrição adequado."}
}

// ValidateMetaTitle only enforces the upper bound: an empty meta title falls
// back to the post title.
func (t Thresholds) ValidateMetaTitle(metaTitle string) FieldResult {
	n := runeLen(metaTitle)
	if n > t.MetaTitleMax {
		return FieldResult{Length: n, Recommendation: fmt.Sprintf(
			"Meta título muito longo (%s a mais que o máximo de %d).", chars(n-t.MetaTitleMax), t.MetaTitleMax)}
	}
	if n == 0 {
		return FieldResult{IsValid: true, Recommendation: "Sem meta título: o título do post será usado."}
	}
	return FieldResult{IsValid: true, Length: n, Recommendation: "Tamanho do meta título adequado."}
}

// ValidateMetaDescription only enforces the upper bound: an empty meta
// description falls back to the post description.
func (t Thresholds) ValidateMetaDescription(metaDescription string) FieldResult {
	n := runeLen(metaDescription)
	if n > t.MetaDescriptionMax {
		return FieldResult{Length: n, Recommendation: fmt.Sprintf(
			"Meta descrição muito longa (%s a mais que o máximo de %d).", chars(n-t.MetaDescriptionMax), t.MetaDescriptionMax)}
	}
	if n == 0 {
		return FieldResult{IsValid: true, Recommendation: "Sem meta descrição: a descrição do post será usada."}
	}
	return FieldResult{IsValid: true, Length: n, Recommendation: "Tamanho da meta descrição adequado."}
}

// ValidateKeywords flags keyword stuffing and repeated keywords (case and
// accent insensitive).
func (t Thresholds) ValidateKeywords(keywords []string) FieldResult {
	seen := make(map[string]bool, len(keywords))
	var duplicates []string
	count := 0
	for _, k := range keywords {
		key := strings.ToLower(strings.TrimSpace(stripDiacritics(k)))
		if key == "" {
			continue
		}
		count++
		if seen[key] {
			duplicates = append(duplicates, k)
		}
		seen[key] = true
	}

	switch {
	case t.MaxKeywords > 0 && count > t.MaxKeywords:
		return FieldResult{Length: count, Recommendation: fmt.Sprintf(
			"Muitas palavras-chave (%d): use no máximo %d.", count, t.MaxKeywords)}
	case len(duplicates) > 0:
		return FieldResult{Length: count, Recommendation: fmt.Sprintf(
			"Palavras-chave repetidas: %s.", strings.Join(duplicates, ", "))}
	}
	return FieldResult{IsValid: true, Length: count, Recommendation: "Palavras-chave adequadas."}
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func chars(n int) string {
	if n == 1 {
		return "1 caractere"
	}
	return fmt.Sprintf("%d caracteres", n)
}
