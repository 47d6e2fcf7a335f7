package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/baokaotong/baokao-backend/internal/config"
	"github.com/baokaotong/baokao-backend/internal/model"
	"github.com/baokaotong/baokao-backend/internal/repository"
)

// hierarchyTTL bounds staleness of the cached tree; the catalog only changes
// on re-import.
const hierarchyTTL = 10 * time.Minute

// CatalogService serves the browse/search endpoints over the relational
// catalog tables.
type CatalogService interface {
	Hierarchy(ctx context.Context) ([]*model.CategoryTree, error)
	Search(ctx context.Context, q string) ([]model.SearchResult, error)
}

type catalogService struct {
	repo repository.CatalogRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewCatalogService(repo repository.CatalogRepository, rdb *redis.Client, log zerolog.Logger) CatalogService {
	return &catalogService{repo: repo, rdb: rdb, log: log}
}

// Hierarchy returns the full category→subject→major tree, cached in redis.
// Cache failures fall through to the database.
func (s *catalogService) Hierarchy(ctx context.Context) ([]*model.CategoryTree, error) {
	key := config.CacheKey.HierarchyKey()

	if s.rdb != nil {
		data, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var tree []*model.CategoryTree
			if err := json.Unmarshal(data, &tree); err == nil {
				return tree, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Hierarchy cache read failed")
		}
	}

	tree, err := s.repo.Hierarchy(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(tree); err == nil {
			if err := s.rdb.Set(ctx, key, data, hierarchyTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("Hierarchy cache write failed")
			}
		}
	}

	return tree, nil
}

// Search matches major names by substring. An empty query returns an empty
// result set without touching the database.
func (s *catalogService) Search(ctx context.Context, q string) ([]model.SearchResult, error) {
	if q == "" {
		return []model.SearchResult{}, nil
	}
	return s.repo.Search(ctx, q)
}
