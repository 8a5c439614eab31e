package content

import "github.com/google/uuid"

// Report is the full validation of a post form. Only Blocking issues prevent
// a save; Errors and Warnings are advisory so an editor can always publish.
type Report struct {
	Blocking []Issue                `json:"blocking"`
	Errors   []Issue                `json:"errors"`
	Warnings []Issue                `json:"warnings"`
	Fields   map[string]FieldResult `json:"fields"`

	WordCount   int `json:"word_count"`
	ReadingTime int `json:"reading_time"`
}

// CanSave reports whether the form may be persisted.
func (r Report) CanSave() bool {
	return len(r.Blocking) == 0
}

// Validate runs every check against the form. It is pure and cheap enough to
// run on each keystroke.
func (t Thresholds) Validate(f PostForm) Report {
	report := Report{
		Blocking: []Issue{},
		Errors:   []Issue{},
		Warnings: []Issue{},
		Fields:   map[string]FieldResult{},
	}

	if f.Slug != "" && !ValidateSlug(f.Slug) {
		report.Blocking = append(report.Blocking, Issue{
			Field:    "slug",
			Code:     CodeInvalidSlug,
			Severity: SeverityError,
			Message:  "Slug inválido: use apenas letras minúsculas, números e hífens simples entre eles.",
		})
	}
	if f.Slug == "" && GenerateSlug(f.Title) == "" {
		report.Warnings = append(report.Warnings, Issue{
			Field:    "slug",
			Code:     CodeMissingSlug,
			Severity: SeverityWarning,
			Message:  "Não foi possível gerar um slug a partir do título: o post ficará acessível apenas pelo id.",
		})
	}
	for _, id := range f.Related {
		if id == f.ID && id != uuid.Nil {
			report.Warnings = append(report.Warnings, Issue{
				Field:    "related",
				Code:     CodeSelfRelation,
				Severity: SeverityWarning,
				Message:  "Um post não pode ser relacionado a ele mesmo: a seleção será ignorada.",
			})
			break
		}
	}

	report.fieldCheck("title", CodeTitleLength, t.ValidateTitleLength(f.Title))
	report.fieldCheck("description", CodeDescLength, t.ValidateDescriptionLength(f.Description))
	report.fieldCheck("meta_title", CodeMetaTitle, t.ValidateMetaTitle(f.Seo.MetaTitle))
	report.fieldCheck("meta_description", CodeMetaDescription, t.ValidateMetaDescription(f.Seo.MetaDescription))
	report.fieldCheck("keywords", CodeKeywords, t.ValidateKeywords(f.Seo.Keywords))

	var body Result
	body.Merge(t.ValidateSemanticStructure(f.Body))
	body.Merge(t.ValidateContentLength(f.Body))
	report.Errors = append(report.Errors, body.Errors...)
	report.Warnings = append(report.Warnings, body.Warnings...)

	report.WordCount = WordCount(f.Body)
	report.ReadingTime = ReadingTime(f.Body)
	return report
}

// Validate runs the checks with DefaultThresholds.
func Validate(f PostForm) Report {
	return DefaultThresholds().Validate(f)
}

func (r *Report) fieldCheck(field, code string, res FieldResult) {
	r.Fields[field] = res
	if !res.IsValid {
		r.Warnings = append(r.Warnings, Issue{
			Field:    field,
			Code:     code,
			Severity: SeverityWarning,
			Message:  res.Recommendation,
		})
	}
}
