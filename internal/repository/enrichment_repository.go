package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baokaotong/baokao-backend/internal/model"
)

// ErrDuplicateDetail reports that a detail record for the code already
// exists. Under concurrent first requests the first writer wins; losers
// fall back to a re-lookup.
var ErrDuplicateDetail = errors.New("detail record already exists")

// EnrichmentRepository persists and reads back generated major details
// across the four detail tables. Writes are first-time-only: a stored
// detail is never updated.
type EnrichmentRepository interface {
	// Lookup returns the stored detail for code, or (nil, nil) when the
	// code has not been enriched yet.
	Lookup(ctx context.Context, code string) (*model.MajorDetail, error)
	// Save inserts the detail and all child rows in one transaction.
	Save(ctx context.Context, d *model.MajorDetail) error
}

type enrichmentRepository struct {
	db *pgxpool.Pool
}

func NewEnrichmentRepository(db *pgxpool.Pool) EnrichmentRepository {
	return &enrichmentRepository{db: db}
}

func (r *enrichmentRepository) Lookup(ctx context.Context, code string) (*model.MajorDetail, error) {
	d := &model.MajorDetail{Code: code}

	query := `SELECT name, category, subject, career_prospects FROM detail_majors WHERE detail_id = $1`
	err := r.db.QueryRow(ctx, query, code).Scan(&d.Name, &d.Category, &d.Subject, &d.CareerProspects)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup detail %s: %w", code, err)
	}

	if d.Courses, err = r.courses(ctx, code); err != nil {
		return nil, err
	}
	if d.SimilarMajors, err = r.similarMajors(ctx, code); err != nil {
		return nil, err
	}
	if d.QA, err = r.qaPairs(ctx, code); err != nil {
		return nil, err
	}

	return d, nil
}

func (r *enrichmentRepository) courses(ctx context.Context, code string) ([]string, error) {
	query := `SELECT course_name FROM detail_courses WHERE detail_id = $1 ORDER BY position ASC`
	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("lookup courses %s: %w", code, err)
	}
	defer rows.Close()

	var courses []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		courses = append(courses, name)
	}
	return courses, rows.Err()
}

func (r *enrichmentRepository) similarMajors(ctx context.Context, code string) ([]model.SimilarMajor, error) {
	query := `SELECT similar_major_name, similar_major_code FROM detail_similar WHERE detail_id = $1 ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("lookup similar majors %s: %w", code, err)
	}
	defer rows.Close()

	var similar []model.SimilarMajor
	for rows.Next() {
		var s model.SimilarMajor
		if err := rows.Scan(&s.Name, &s.Code); err != nil {
			return nil, err
		}
		similar = append(similar, s)
	}
	return similar, rows.Err()
}

func (r *enrichmentRepository) qaPairs(ctx context.Context, code string) ([]model.QAPair, error) {
	query := `SELECT question, answer FROM detail_qa WHERE detail_id = $1 ORDER BY position ASC`
	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("lookup qa %s: %w", code, err)
	}
	defer rows.Close()

	var qa []model.QAPair
	for rows.Next() {
		var p model.QAPair
		if err := rows.Scan(&p.Question, &p.Answer); err != nil {
			return nil, err
		}
		qa = append(qa, p)
	}
	return qa, rows.Err()
}

func (r *enrichmentRepository) Save(ctx context.Context, d *model.MajorDetail) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save detail %s: %w", d.Code, err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO detail_majors (detail_id, name, category, subject, career_prospects)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (detail_id) DO NOTHING
	`, d.Code, d.Name, d.Category, d.Subject, d.CareerProspects)
	if err != nil {
		return fmt.Errorf("insert detail %s: %w", d.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicateDetail
	}

	for i, course := range d.Courses {
		_, err := tx.Exec(ctx, `
			INSERT INTO detail_courses (detail_id, course_name, position)
			VALUES ($1, $2, $3)
		`, d.Code, course, i)
		if err != nil {
			return fmt.Errorf("insert course %d for %s: %w", i, d.Code, err)
		}
	}

	for _, s := range d.SimilarMajors {
		_, err := tx.Exec(ctx, `
			INSERT INTO detail_similar (detail_id, similar_major_name, similar_major_code)
			VALUES ($1, $2, $3)
		`, d.Code, s.Name, s.Code)
		if err != nil {
			return fmt.Errorf("insert similar major for %s: %w", d.Code, err)
		}
	}

	for i, qa := range d.QA {
		_, err := tx.Exec(ctx, `
			INSERT INTO detail_qa (detail_id, question, answer, position)
			VALUES ($1, $2, $3, $4)
		`, d.Code, qa.Question, qa.Answer, i)
		if err != nil {
			return fmt.Errorf("insert qa %d for %s: %w", i, d.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit detail %s: %w", d.Code, err)
	}
	return nil
}
