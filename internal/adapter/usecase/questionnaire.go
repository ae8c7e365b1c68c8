package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/reference"
)

const minutesPerQuestion = 0.5

var largeBudgetThreshold = decimal.NewFromInt(10000)

// QuestionnaireService assembles questionnaires from the question catalogue
// and validates submitted answers against them. It implements
// port.Questionnaire.
type QuestionnaireService struct {
	catalogue *reference.Catalogue
}

// NewQuestionnaireService uses the embedded catalogue when c is nil.
func NewQuestionnaireService(c *reference.Catalogue) *QuestionnaireService {
	if c == nil {
		c = reference.Questions()
	}
	return &QuestionnaireService{catalogue: c}
}

// Generate returns the base questions, the questions of the organization's
// industry and of the campaign type, and the conditional questions the
// campaign triggers, sorted by category then order index.
func (s *QuestionnaireService) Generate(_ context.Context, c domain.Campaign, org domain.Organization) domain.Questionnaire {
	var qs []domain.Question
	add := func(list ...domain.Question) {
		for _, q := range list {
			q.Options = append([]domain.Option(nil), q.Options...)
			qs = append(qs, q)
		}
	}
	add(s.catalogue.Base...)
	add(s.catalogue.Industry[reference.Normalize(org.Industry)]...)
	add(s.catalogue.CampaignType[reference.Normalize(c.CampaignType)]...)

	for _, trigger := range triggers(c) {
		if q, ok := s.catalogue.Conditional[trigger]; ok {
			add(q)
		}
	}

	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Category != qs[j].Category {
			return qs[i].Category < qs[j].Category
		}
		return qs[i].OrderIndex < qs[j].OrderIndex
	})

	categories := make(map[string][]string)
	for _, q := range qs {
		categories[q.Category] = append(categories[q.Category], q.Key)
	}
	return domain.Questionnaire{
		CampaignID:       c.ID,
		TotalQuestions:   len(qs),
		EstimatedMinutes: float64(len(qs)) * minutesPerQuestion,
		Categories:       categories,
		Questions:        qs,
	}
}

func triggers(c domain.Campaign) []string {
	var out []string
	if c.TotalBudget.Valid && c.TotalBudget.Decimal.GreaterThan(largeBudgetThreshold) {
		out = append(out, reference.TriggerLargeBudget)
	}
	if len(c.Targeting.Locations) > 1 {
		out = append(out, reference.TriggerMultiLocation)
	}
	if len(c.Targeting.Interests) > 0 {
		out = append(out, reference.TriggerInterests)
	}
	return out
}

// Validate regenerates the questionnaire and checks the responses against
// it. Answers to unknown questions are reported as warnings.
func (s *QuestionnaireService) Validate(ctx context.Context, responses domain.Responses, c domain.Campaign, org domain.Organization) domain.ValidationResult {
	qn := s.Generate(ctx, c, org)
	res := domain.ValidationResult{Errors: []string{}, Warnings: []string{}}

	for _, q := range qn.Questions {
		v, ok := responses[q.Key]
		if !ok || v == nil {
			if q.Required {
				res.Errors = append(res.Errors, fmt.Sprintf("required question %q is not answered", q.Key))
			}
			continue
		}
		if msg := checkAnswer(q, v); msg != "" {
			res.Errors = append(res.Errors, msg)
		}
	}

	unknown := make([]string, 0)
	for key := range responses {
		if _, ok := qn.Question(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		res.Warnings = append(res.Warnings, fmt.Sprintf("answer to unknown question %q is ignored", key))
	}

	res.Valid = len(res.Errors) == 0
	return res
}

func checkAnswer(q domain.Question, v any) string {
	switch q.Type {
	case domain.QuestionMultipleChoice:
		if q.MultipleSelect {
			values, ok := stringList(v)
			if !ok {
				return fmt.Sprintf("question %q expects a list of options", q.Key)
			}
			for _, e := range values {
				if !q.HasOption(e) {
					return fmt.Sprintf("invalid option %q for question %q", e, q.Key)
				}
			}
			return ""
		}
		s, ok := v.(string)
		if !ok || !q.HasOption(s) {
			return fmt.Sprintf("invalid option %v for question %q", v, q.Key)
		}
	case domain.QuestionScale:
		n, ok := number(v)
		if !ok {
			return fmt.Sprintf("question %q expects a numeric value", q.Key)
		}
		if n < float64(q.ScaleMin) || n > float64(q.ScaleMax) {
			return fmt.Sprintf("value %v for question %q is outside %d-%d", v, q.Key, q.ScaleMin, q.ScaleMax)
		}
	case domain.QuestionText:
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("question %q expects a text value", q.Key)
		}
	case domain.QuestionBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Sprintf("question %q expects a boolean value", q.Key)
		}
	}
	return ""
}

func stringList(v any) ([]string, bool) {
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// number accepts what encoding/json and Go callers produce for numbers.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
