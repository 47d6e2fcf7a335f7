package catalog

import "github.com/baokaotong/baokao-backend/internal/model"

// MaxSimilar is the number of related majors attached to a detail record.
const MaxSimilar = 5

// Similar selects up to MaxSimilar majors related to code: first the other
// leaves under the same subject, then — if fewer than five — leaves under the
// same category but a different subject. Among equally ranked candidates the
// order follows the catalog file. An unknown code yields an empty result,
// not an error.
func Similar(idx *Index, code string) []model.SimilarMajor {
	target, ok := idx.Get(code)
	if !ok {
		return nil
	}

	leaves := idx.Leaves()
	similar := make([]model.SimilarMajor, 0, MaxSimilar)

	for _, e := range leaves {
		if e.Code == code || e.Subject != target.Subject {
			continue
		}
		similar = append(similar, model.SimilarMajor{Name: e.Name, Code: e.Code})
	}

	if len(similar) < MaxSimilar {
		for _, e := range leaves {
			if e.Code == code || e.Category != target.Category || e.Subject == target.Subject {
				continue
			}
			similar = append(similar, model.SimilarMajor{Name: e.Name, Code: e.Code})
		}
	}

	if len(similar) > MaxSimilar {
		similar = similar[:MaxSimilar]
	}
	return similar
}
