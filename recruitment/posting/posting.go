package posting

import (
	"time"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
)

// Posting is one recruiter's job posting for a position. Re-registering
// the same (position, recruiter) pair overwrites the previous posting.
type Posting struct {
	Recruiter     kernel.RecruiterID `json:"recruiter"`
	RecruiterName string             `json:"recruiter_name"`
	Email         kernel.Email       `json:"email"`
	Company       string             `json:"company"`
	Salary        string             `json:"salary"`
	Position      kernel.Position    `json:"position"`
	Description   string             `json:"description"`

	// Signals hold the extracted category texts and embeddings of the job
	// description. Postings carry no rubric scores.
	Signals map[kernel.Category]candidate.CategorySignal `json:"signals"`

	// TopCount is how many ranked candidates receive offers; the rest
	// receive rejections.
	TopCount int `json:"top_count"`

	RankedCandidates []RankedCandidate `json:"ranked_candidates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RankedCandidate is one row of a posting's ranking, ordered by the
// per-posting similarity computed at ranking time.
type RankedCandidate struct {
	Rank        int                `json:"rank"`
	CandidateID kernel.CandidateID `json:"candidate_id"`
	Name        string             `json:"name"`
	University  kernel.University  `json:"university"`
	Similarity  float64            `json:"similarity"`
	ATS         float64            `json:"ats"`
	Offered     bool               `json:"offered"`
}

// Signal returns the posting's signal for a category, zero-valued when
// extraction produced none.
func (p *Posting) Signal(category kernel.Category) candidate.CategorySignal {
	if p.Signals == nil {
		return candidate.CategorySignal{}
	}
	return p.Signals[category]
}

// Offer builds the denormalized snapshot recorded on a candidate when this
// posting issues an offer or rejection.
func (p *Posting) Offer() candidate.CompanyOffer {
	return candidate.CompanyOffer{
		Recruiter:      p.Recruiter,
		Company:        p.Company,
		Salary:         p.Salary,
		JobDescription: p.Description,
		Position:       p.Position,
		IssuedAt:       time.Now(),
	}
}

// PipelineConfig switches optional ranking behaviors without code changes.
type PipelineConfig struct {
	// GateZeroScoreSimilarity forces a category's similarity to 0 when the
	// candidate's rubric score for that category is 0, regardless of the
	// embedding distance.
	GateZeroScoreSimilarity bool

	// DedupOffersByRecruiter drops repeat offers and rejections from the
	// same recruiter to the same candidate.
	DedupOffersByRecruiter bool

	// TruncateRankedListInStorage stores only the top candidates on the
	// posting instead of the whole ranked pool.
	TruncateRankedListInStorage bool
}

// DefaultPipelineConfig returns the standard flag settings.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		GateZeroScoreSimilarity:     true,
		DedupOffersByRecruiter:      true,
		TruncateRankedListInStorage: false,
	}
}
