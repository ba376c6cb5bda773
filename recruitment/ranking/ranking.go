package ranking

import (
	"time"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
)

// GlobalRanking orders every candidate of one position by overall
// similarity. It is derived data: it can always be rebuilt from the
// candidate store and is refreshed after every posting run.
type GlobalRanking struct {
	Position  kernel.Position `json:"position"`
	Entries   []Entry         `json:"entries"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Entry is one candidate's place in a position's global ranking.
type Entry struct {
	Rank              int                `json:"rank"`
	CandidateID       kernel.CandidateID `json:"candidate_id"`
	Name              string             `json:"name"`
	University        kernel.University  `json:"university"`
	OverallSimilarity float64            `json:"overall_similarity"`
	ATS               float64            `json:"ats"`
}

// RankOf returns a candidate's 1-based rank, false when the candidate is
// not ranked for this position.
func (g *GlobalRanking) RankOf(id kernel.CandidateID) (int, bool) {
	for _, entry := range g.Entries {
		if entry.CandidateID == id {
			return entry.Rank, true
		}
	}
	return 0, false
}
