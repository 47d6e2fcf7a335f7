package model

// SimilarMajor is one related-major reference attached to a detail record.
type SimilarMajor struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// QAPair is one generated question/answer pair.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// MajorDetail is the enriched record for a single major: catalog-derived
// identity plus AI-generated content. Once persisted it is immutable — there
// is no update path, only first-write then reads.
type MajorDetail struct {
	Code            string         `json:"code"`
	Name            string         `json:"name"`
	Category        string         `json:"category"`
	Subject         string         `json:"subject"`
	Courses         []string       `json:"courses"`
	SimilarMajors   []SimilarMajor `json:"similarMajors"`
	CareerProspects string         `json:"careerProspects"`
	QA              []QAPair       `json:"qa"`
}
