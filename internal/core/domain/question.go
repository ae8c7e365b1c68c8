package domain

// QuestionType is the declared answer shape of a question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionScale          QuestionType = "scale"
	QuestionText           QuestionType = "text"
	QuestionBoolean        QuestionType = "boolean"
)

// Question categories.
const (
	CategoryBusinessContext   = "business_context"
	CategoryMarketContext     = "market_context"
	CategoryCampaignHistory   = "campaign_history"
	CategoryIndustryContext   = "industry_context"
	CategoryCampaignSpecifics = "campaign_specifics"
	CategoryBudgetStrategy    = "budget_strategy"
	CategoryTargetingStrategy = "targeting_strategy"
)

// Option is an allowed answer of a multiple choice question.
type Option struct {
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Question is one questionnaire entry. Key is unique within a generated
// questionnaire.
type Question struct {
	Key            string            `json:"key" yaml:"key"`
	Text           string            `json:"text" yaml:"text"`
	Type           QuestionType      `json:"type" yaml:"type"`
	Category       string            `json:"category" yaml:"category"`
	OrderIndex     int               `json:"order_index" yaml:"order_index"`
	Required       bool              `json:"required" yaml:"required"`
	Options        []Option          `json:"options,omitempty" yaml:"options"`
	MultipleSelect bool              `json:"multiple_select,omitempty" yaml:"multiple_select"`
	ScaleMin       int               `json:"scale_min,omitempty" yaml:"scale_min"`
	ScaleMax       int               `json:"scale_max,omitempty" yaml:"scale_max"`
	ScaleLabels    map[string]string `json:"scale_labels,omitempty" yaml:"scale_labels"`
}

// HasOption reports whether v is one of the question's option values.
func (q Question) HasOption(v string) bool {
	for _, o := range q.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Questionnaire is the generated, ordered question list for a campaign.
type Questionnaire struct {
	CampaignID       string              `json:"campaign_id"`
	TotalQuestions   int                 `json:"total_questions"`
	EstimatedMinutes float64             `json:"estimated_time_minutes"`
	Categories       map[string][]string `json:"categories"`
	Questions        []Question          `json:"questions"`
}

// Question returns the question with key, if present.
func (q Questionnaire) Question(key string) (Question, bool) {
	for _, question := range q.Questions {
		if question.Key == key {
			return question, true
		}
	}
	return Question{}, false
}

// ValidationResult is the outcome of validating questionnaire responses.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
