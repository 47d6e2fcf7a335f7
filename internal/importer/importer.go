// Package importer loads the flat major catalog file into the relational
// catalog tables. It is a one-time batch operation run via cmd/import-catalog;
// request-time parsing lives in internal/catalog.
package importer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/baokaotong/baokao-backend/internal/model"
	"github.com/baokaotong/baokao-backend/internal/repository"
)

var (
	categoryRe = regexp.MustCompile(`^(\d{2})\s+(\S+)`)
	// The 类 suffix marks a subject line; the stored name drops it.
	subjectRe = regexp.MustCompile(`^(\d{4})\s+(\S+)类`)
	// Leaf codes may carry the 特设/国控 markers T, K or TK.
	majorRe = regexp.MustCompile(`^(\d{6}(?:T|K|TK)?)\s+(\S+)`)
)

// Records is the parsed content of a catalog file, ready for import.
type Records struct {
	Categories []model.Category
	Subjects   []model.Subject
	Majors     []model.Major
}

// ParseFile reads the catalog file and splits its lines into the three
// tiers. A subject belongs to the most recent category line, a major to the
// most recent subject line. Lines matching no tier are skipped.
func ParseFile(path string) (*Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	rec := &Records{}
	var currentCategory, currentSubject string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := categoryRe.FindStringSubmatch(line); m != nil {
			currentCategory = m[1]
			rec.Categories = append(rec.Categories, model.Category{Code: m[1], Name: m[2]})
			continue
		}
		if m := subjectRe.FindStringSubmatch(line); m != nil {
			currentSubject = m[1]
			rec.Subjects = append(rec.Subjects, model.Subject{
				Code: m[1], Name: m[2], CategoryCode: currentCategory,
			})
			continue
		}
		if m := majorRe.FindStringSubmatch(line); m != nil {
			rec.Majors = append(rec.Majors, model.Major{
				Code: m[1], Name: m[2], SubjectCode: currentSubject,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	return rec, nil
}

// Import parses the file and replaces the catalog tables with its content.
func Import(ctx context.Context, repo repository.CatalogRepository, path string) (*Records, error) {
	rec, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := repo.Import(ctx, rec.Categories, rec.Subjects, rec.Majors); err != nil {
		return nil, err
	}
	return rec, nil
}
