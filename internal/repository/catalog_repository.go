package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baokaotong/baokao-backend/internal/model"
)

// CatalogRepository reads the relational catalog tables and supports the
// one-time batch import.
type CatalogRepository interface {
	Hierarchy(ctx context.Context) ([]*model.CategoryTree, error)
	Search(ctx context.Context, q string) ([]model.SearchResult, error)
	// Import truncates the three catalog tables and reloads them from the
	// parsed records in one transaction.
	Import(ctx context.Context, categories []model.Category, subjects []model.Subject, majors []model.Major) error
}

type catalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{db: db}
}

// Hierarchy builds the full category→subject→major tree with one three-way
// join, grouped in iteration order.
func (r *catalogRepository) Hierarchy(ctx context.Context) ([]*model.CategoryTree, error) {
	query := `
		SELECT c.code, c.name, s.code, s.name, m.code, m.name
		FROM major_categories c
		LEFT JOIN major_subject s ON s.category_code = c.code
		LEFT JOIN majors m ON m.subject_code = s.code
		ORDER BY c.code ASC, s.code ASC, m.code ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query hierarchy: %w", err)
	}
	defer rows.Close()

	var (
		tree       []*model.CategoryTree
		curCat     *model.CategoryTree
		curSubject *model.SubjectTree
	)
	for rows.Next() {
		var catCode, catName string
		var subjCode, subjName, majorCode, majorName *string
		if err := rows.Scan(&catCode, &catName, &subjCode, &subjName, &majorCode, &majorName); err != nil {
			return nil, err
		}

		if curCat == nil || curCat.Code != catCode {
			curCat = &model.CategoryTree{Code: catCode, Name: catName, Subjects: []*model.SubjectTree{}}
			curSubject = nil
			tree = append(tree, curCat)
		}
		if subjCode == nil {
			continue
		}
		if curSubject == nil || curSubject.Code != *subjCode {
			curSubject = &model.SubjectTree{Code: *subjCode, Name: *subjName, Majors: []model.Major{}}
			curCat.Subjects = append(curCat.Subjects, curSubject)
		}
		if majorCode == nil {
			continue
		}
		curSubject.Majors = append(curSubject.Majors, model.Major{Code: *majorCode, Name: *majorName})
	}
	return tree, rows.Err()
}

// Search matches major names by substring, returning each hit with its
// subject and category.
func (r *catalogRepository) Search(ctx context.Context, q string) ([]model.SearchResult, error) {
	query := `
		SELECT m.code, m.name, s.code, s.name, c.code, c.name
		FROM majors m
		JOIN major_subject s ON m.subject_code = s.code
		JOIN major_categories c ON s.category_code = c.code
		WHERE m.name ILIKE '%' || $1 || '%'
		ORDER BY m.code ASC
	`
	rows, err := r.db.Query(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("search majors: %w", err)
	}
	defer rows.Close()

	var results []model.SearchResult
	for rows.Next() {
		var res model.SearchResult
		if err := rows.Scan(
			&res.Code, &res.Name,
			&res.Subject.Code, &res.Subject.Name,
			&res.Subject.Category.Code, &res.Subject.Category.Name,
		); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *catalogRepository) Import(ctx context.Context, categories []model.Category, subjects []model.Subject, majors []model.Major) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	// CASCADE clears majors and major_subject through their FKs.
	if _, err := tx.Exec(ctx, `TRUNCATE major_categories CASCADE`); err != nil {
		return fmt.Errorf("truncate catalog tables: %w", err)
	}

	for _, c := range categories {
		if _, err := tx.Exec(ctx,
			`INSERT INTO major_categories (code, name) VALUES ($1, $2)`,
			c.Code, c.Name,
		); err != nil {
			return fmt.Errorf("insert category %s: %w", c.Code, err)
		}
	}
	for _, s := range subjects {
		if _, err := tx.Exec(ctx,
			`INSERT INTO major_subject (code, name, category_code) VALUES ($1, $2, $3)`,
			s.Code, s.Name, s.CategoryCode,
		); err != nil {
			return fmt.Errorf("insert subject %s: %w", s.Code, err)
		}
	}
	for _, m := range majors {
		if _, err := tx.Exec(ctx,
			`INSERT INTO majors (code, name, subject_code) VALUES ($1, $2, $3)`,
			m.Code, m.Name, m.SubjectCode,
		); err != nil {
			return fmt.Errorf("insert major %s: %w", m.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}
