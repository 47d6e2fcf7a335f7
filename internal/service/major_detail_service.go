package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/baokaotong/baokao-backend/internal/catalog"
	"github.com/baokaotong/baokao-backend/internal/config"
	"github.com/baokaotong/baokao-backend/internal/enrich"
	"github.com/baokaotong/baokao-backend/internal/llm"
	"github.com/baokaotong/baokao-backend/internal/model"
	"github.com/baokaotong/baokao-backend/internal/repository"
)

const (
	// lockTTL caps how long a crashed request can hold a per-code lock.
	lockTTL = 2 * time.Minute
	// lockWaitPolls × lockWaitDelay bounds how long a lock loser waits for
	// the winner's row to appear before generating anyway.
	lockWaitPolls = 3
	lockWaitDelay = 2 * time.Second

	qaMaxTokens    = 800
	qaSystemPrompt = "你是一个专业的高等教育顾问，专门解答关于%s专业的问题。请尽量在300字以内提供准确、专业的回答, 贴近最近几年的情况。不需要小标题,直接回答问题。"
)

// MajorDetailService orchestrates the enrichment pipeline: cached read,
// generation on first access, idempotent persistence.
type MajorDetailService interface {
	// GetMajorDetail returns the stored detail for code, generating and
	// persisting it on first access. Returns enrich.ErrNotFound when the
	// code is absent from the catalog.
	GetMajorDetail(ctx context.Context, code string) (*model.MajorDetail, error)
	// AnswerQuestion is a single free-form QA turn about a major. The
	// answer is not cached.
	AnswerQuestion(ctx context.Context, majorName, question string) (string, error)
}

type majorDetailService struct {
	repo      repository.EnrichmentRepository
	index     *catalog.Index
	generator enrich.Generator
	client    llm.Client
	rdb       *redis.Client
	log       zerolog.Logger
}

func NewMajorDetailService(
	repo repository.EnrichmentRepository,
	index *catalog.Index,
	generator enrich.Generator,
	client llm.Client,
	rdb *redis.Client,
	log zerolog.Logger,
) MajorDetailService {
	return &majorDetailService{
		repo:      repo,
		index:     index,
		generator: generator,
		client:    client,
		rdb:       rdb,
		log:       log,
	}
}

func (s *majorDetailService) GetMajorDetail(ctx context.Context, code string) (*model.MajorDetail, error) {
	detail, err := s.repo.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if detail != nil {
		return detail, nil
	}

	entry, ok := s.index.Get(code)
	if !ok {
		return nil, enrich.ErrNotFound
	}

	// Best-effort advisory lock so concurrent first requests for one code
	// do not all pay for a model call. Correctness does not depend on it:
	// the unique constraint on detail_majors decides the winner.
	locked := s.acquireLock(ctx, code)
	if locked {
		defer s.releaseLock(code)
	} else {
		if detail := s.awaitWinner(ctx, code); detail != nil {
			return detail, nil
		}
	}

	similar := catalog.Similar(s.index, code)

	detail, err = s.generator.Generate(ctx, entry, similar)
	if err != nil {
		s.log.Error().Err(err).Str("code", code).Msg("Enrichment generation failed")
		return nil, err
	}

	if err := s.repo.Save(ctx, detail); err != nil {
		if errors.Is(err, repository.ErrDuplicateDetail) {
			// A concurrent request persisted first; serve its row.
			return s.repo.Lookup(ctx, code)
		}
		s.log.Error().Err(err).Str("code", code).Msg("Enrichment save failed")
		return nil, err
	}

	s.log.Info().Str("code", code).Msg("Major detail generated and stored")
	return detail, nil
}

// acquireLock takes the per-code redis lock. Lock failures (including an
// unavailable redis) degrade to unlocked operation.
func (s *majorDetailService) acquireLock(ctx context.Context, code string) bool {
	if s.rdb == nil {
		return true
	}
	ok, err := s.rdb.SetNX(ctx, config.CacheKey.EnrichLockKey(code), 1, lockTTL).Result()
	if err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("Enrichment lock unavailable")
		return true
	}
	return ok
}

func (s *majorDetailService) releaseLock(code string) {
	if s.rdb == nil {
		return
	}
	// Release must survive request cancellation.
	if err := s.rdb.Del(context.Background(), config.CacheKey.EnrichLockKey(code)).Err(); err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("Enrichment lock release failed")
	}
}

// awaitWinner polls the store briefly while another request holds the lock.
// Returns nil if no row appears in time; the caller then generates itself.
func (s *majorDetailService) awaitWinner(ctx context.Context, code string) *model.MajorDetail {
	for i := 0; i < lockWaitPolls; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(lockWaitDelay):
		}
		detail, err := s.repo.Lookup(ctx, code)
		if err == nil && detail != nil {
			return detail
		}
	}
	return nil
}

func (s *majorDetailService) AnswerQuestion(ctx context.Context, majorName, question string) (string, error) {
	system := fmt.Sprintf(qaSystemPrompt, majorName)
	answer, err := s.client.Complete(ctx, system, question, qaMaxTokens)
	if err != nil {
		s.log.Error().Err(err).Str("major", majorName).Msg("QA model call failed")
		return "", err
	}
	return answer, nil
}
