package enrich

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/baokaotong/baokao-backend/internal/model"
)

const (
	// CourseCount is the exact number of courses the model must return.
	CourseCount = 10
	// QACount is the exact number of question/answer pairs required.
	QACount = 3
	// maxProspectsRunes caps careerProspects (~200 CJK characters; the
	// prompt states the limit in characters, the cap leaves headroom).
	maxProspectsRunes = 400
	// maxAnswerRunes caps each QA answer (~150 CJK characters).
	maxAnswerRunes = 300
)

// payload is the JSON shape the model is instructed to return.
type payload struct {
	Courses         []string       `json:"courses"`
	CareerProspects string         `json:"careerProspects"`
	QA              []model.QAPair `json:"qa"`
}

// parseAndValidate decodes the raw model output and enforces the structural
// contract: required fields, exact array lengths, string length caps. It
// judges shape only, never content.
func parseAndValidate(raw string) (*payload, error) {
	var p payload
	if err := json.Unmarshal([]byte(stripFences(raw)), &p); err != nil {
		return nil, err
	}

	if p.Courses == nil {
		return nil, validationErrorf("missing required field: courses")
	}
	if p.CareerProspects == "" {
		return nil, validationErrorf("missing required field: careerProspects")
	}
	if p.QA == nil {
		return nil, validationErrorf("missing required field: qa")
	}

	if len(p.Courses) != CourseCount {
		return nil, validationErrorf("courses must contain exactly %d items, got %d", CourseCount, len(p.Courses))
	}
	if len(p.QA) != QACount {
		return nil, validationErrorf("qa must contain exactly %d pairs, got %d", QACount, len(p.QA))
	}

	if n := utf8.RuneCountInString(p.CareerProspects); n > maxProspectsRunes {
		return nil, validationErrorf("careerProspects too long: %d runes", n)
	}
	for i, qa := range p.QA {
		if n := utf8.RuneCountInString(qa.Answer); n > maxAnswerRunes {
			return nil, validationErrorf("qa[%d].answer too long: %d runes", i, n)
		}
	}

	return &p, nil
}

// stripFences removes a markdown code fence wrapper, which chat models often
// add around JSON despite instructions.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
