package model

// Category is a top-level major category (2-digit code), e.g. "01 哲学".
type Category struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Subject is an academic subject group under a category (4-digit code).
type Subject struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	CategoryCode string `json:"-"`
}

// Major is a leaf major (6-digit code, optionally suffixed T/K/TK).
type Major struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	SubjectCode string `json:"-"`
}

// CategoryTree is one node of the full category→subject→major hierarchy.
type CategoryTree struct {
	Code     string         `json:"code"`
	Name     string         `json:"name"`
	Subjects []*SubjectTree `json:"subjects"`
}

// SubjectTree is a subject node carrying its leaf majors.
type SubjectTree struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Majors []Major `json:"majors"`
}

// SearchResult is one substring-search hit with its full classification.
type SearchResult struct {
	Code    string        `json:"code"`
	Name    string        `json:"name"`
	Subject SearchSubject `json:"subject"`
}

type SearchSubject struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}
