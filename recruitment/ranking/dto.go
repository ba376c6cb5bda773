package ranking

import "time"

// ReportRow is one line of a university report: a candidate's standing
// for one position.
type ReportRow struct {
	CandidateID       string  `json:"candidate_id"`
	Name              string  `json:"name"`
	Position          string  `json:"position"`
	OverallSimilarity float64 `json:"overall_similarity"`
	ATS               float64 `json:"ats"`

	// Rank is the candidate's place in the position's global ranking, 0
	// when the ranking has not covered this candidate yet.
	Rank   int  `json:"rank"`
	Ranked bool `json:"ranked"`

	Offers     int `json:"offers"`
	Rejections int `json:"rejections"`
}

// UniversityReport aggregates the standing of all of a university's
// candidates across positions.
type UniversityReport struct {
	University  string      `json:"university"`
	Rows        []ReportRow `json:"rows"`
	GeneratedAt time.Time   `json:"generated_at"`
}

type GlobalRankingResponse struct {
	Position  string    `json:"position"`
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToGlobalRankingResponse(g *GlobalRanking) GlobalRankingResponse {
	return GlobalRankingResponse{
		Position:  g.Position.String(),
		Entries:   g.Entries,
		UpdatedAt: g.UpdatedAt,
	}
}
