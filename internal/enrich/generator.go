package enrich

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/baokaotong/baokao-backend/internal/catalog"
	"github.com/baokaotong/baokao-backend/internal/llm"
	"github.com/baokaotong/baokao-backend/internal/model"
)

const (
	// maxAttempts bounds the generate-validate loop; after the last
	// attempt the error propagates, never a partial result.
	maxAttempts = 3
	// detailMaxTokens bounds the output budget of a detail generation.
	detailMaxTokens = 2000

	systemPrompt = "你是一个专业的高等教育顾问。"

	promptTemplate = `请你作为一个专业的高等教育顾问，为%s专业生成详细信息。
请严格按照以下格式返回 JSON 数据，确保courses数组包含恰好10个课程：
{
    "courses": ["主要课程1", "主要课程2", ...(恰好10个课程)],
    "careerProspects": "就业前景描述(200字以内，不要包含小标题)",
    "qa": [
        {"question": "常见问题1", "answer": "答案1(150字以内，不需要小标题)"},
        {"question": "常见问题2", "answer": "答案2(150字以内，不需要小标题)"},
        {"question": "常见问题3", "answer": "答案3(150字以内，不需要小标题)"}
    ]
}
请确保信息准确、专业，并符合最新的教育部专业目录标准。
所有内容必须是中文，不要包含英文。`
)

// Generator produces validated enrichment records by prompting the model and
// retrying structurally malformed responses.
type Generator interface {
	Generate(ctx context.Context, entry catalog.Entry, similar []model.SimilarMajor) (*model.MajorDetail, error)
}

type generator struct {
	client llm.Client
	log    zerolog.Logger
}

func NewGenerator(client llm.Client, log zerolog.Logger) Generator {
	return &generator{client: client, log: log}
}

// Generate issues the fixed detail prompt for entry and validates the
// response shape, retrying up to maxAttempts on malformed JSON or validation
// failure. On success the AI fields are merged with the catalog identity and
// the precomputed similar majors.
func (g *generator) Generate(ctx context.Context, entry catalog.Entry, similar []model.SimilarMajor) (*model.MajorDetail, error) {
	prompt := fmt.Sprintf(promptTemplate, entry.Name)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := g.client.Complete(ctx, systemPrompt, prompt, detailMaxTokens)
		if err != nil {
			// Transport errors are not retried here: the token
			// budget bounds output, the context bounds time.
			return nil, fmt.Errorf("model call: %w", err)
		}

		p, err := parseAndValidate(raw)
		if err != nil {
			lastErr = err
			g.log.Warn().
				Err(err).
				Str("code", entry.Code).
				Int("attempt", attempt).
				Msg("Model response rejected")
			continue
		}

		return &model.MajorDetail{
			Code:            entry.Code,
			Name:            entry.Name,
			Category:        entry.Category,
			Subject:         entry.Subject,
			Courses:         p.Courses,
			SimilarMajors:   similar,
			CareerProspects: p.CareerProspects,
			QA:              p.QA,
		}, nil
	}

	return nil, fmt.Errorf("generate major detail after %d attempts: %w", maxAttempts, lastErr)
}
