package kernel

import "strings"

type Email string

func (e Email) IsEmpty() bool  { return string(e) == "" }
func (e Email) String() string { return string(e) }

// IsValid is a light format check; real verification is out of scope.
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && strings.Contains(s[at:], ".")
}

type Phone string

func (p Phone) IsEmpty() bool  { return string(p) == "" }
func (p Phone) String() string { return string(p) }

// Position is the job position a candidate applies for and a posting targets.
// Candidate pools and rankings are partitioned by position.
type Position string

func (p Position) IsEmpty() bool  { return string(p) == "" }
func (p Position) String() string { return string(p) }

type University string

func (u University) String() string { return string(u) }

// Embedding is a fixed-dimension vector produced by the external embedder.
type Embedding []float32

func (e Embedding) IsEmpty() bool { return len(e) == 0 }

// Category is one of the four fixed facets used to compare CVs and job
// descriptions.
type Category string

const (
	CategorySkills           Category = "skills"
	CategoryEducation        Category = "education"
	CategoryResponsibilities Category = "responsibilities"
	CategoryExperience       Category = "experience"
)

// Categories returns the four facets in their canonical order.
func Categories() []Category {
	return []Category{
		CategorySkills,
		CategoryEducation,
		CategoryResponsibilities,
		CategoryExperience,
	}
}

// DocumentKind distinguishes extraction prompts for CVs and job descriptions.
type DocumentKind string

const (
	DocumentKindCV DocumentKind = "cv"
	DocumentKindJD DocumentKind = "jd"
)
