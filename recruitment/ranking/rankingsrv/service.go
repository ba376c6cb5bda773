package rankingsrv

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/logx"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking"
)

// Service maintains the derived global rankings and serves the university
// report built on top of them.
type Service struct {
	candidates candidate.Repository
	rankings   ranking.Repository
}

func NewService(candidates candidate.Repository, rankings ranking.Repository) *Service {
	return &Service{
		candidates: candidates,
		rankings:   rankings,
	}
}

// Rebuild recomputes a position's global ranking from the stored overall
// similarities. Idempotent: rebuilding twice yields the same ranking.
func (s *Service) Rebuild(ctx context.Context, position kernel.Position) (*ranking.GlobalRanking, error) {
	if position.IsEmpty() {
		return nil, ranking.ErrInvalidRequest(fmt.Errorf("position is required"))
	}

	pool, err := s.candidates.ListByPosition(ctx, position)
	if err != nil {
		return nil, err
	}

	ordered := make([]*candidate.Profile, len(pool))
	copy(ordered, pool)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OverallSimilarity > ordered[j].OverallSimilarity
	})

	entries := make([]ranking.Entry, len(ordered))
	for i, profile := range ordered {
		entries[i] = ranking.Entry{
			Rank:              i + 1,
			CandidateID:       profile.ID,
			Name:              profile.Name,
			University:        profile.University,
			OverallSimilarity: profile.OverallSimilarity,
			ATS:               profile.ATS,
		}
	}

	g := &ranking.GlobalRanking{
		Position:  position,
		Entries:   entries,
		UpdatedAt: time.Now(),
	}
	if err := s.rankings.Put(ctx, g); err != nil {
		return nil, err
	}

	logx.Infof("Rebuilt global ranking for position %s with %d candidates", position, len(entries))
	return g, nil
}

// Ranking returns the stored global ranking for a position.
func (s *Service) Ranking(ctx context.Context, position kernel.Position) (*ranking.GlobalRanking, error) {
	if position.IsEmpty() {
		return nil, ranking.ErrInvalidRequest(fmt.Errorf("position is required"))
	}
	return s.rankings.Get(ctx, position)
}

// UniversityReport lists the standing of every candidate from a university
// across all positions, best ranked first. Candidates not yet covered by a
// global ranking sort after every ranked one.
func (s *Service) UniversityReport(ctx context.Context, university kernel.University) (*ranking.UniversityReport, error) {
	if university.String() == "" {
		return nil, ranking.ErrInvalidRequest(fmt.Errorf("university is required"))
	}

	profiles, err := s.candidates.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type keyedRow struct {
		key int
		row ranking.ReportRow
	}

	rankings := map[kernel.Position]*ranking.GlobalRanking{}
	keyed := []keyedRow{}

	for _, profile := range profiles {
		if profile.University != university {
			continue
		}

		g, ok := rankings[profile.Position]
		if !ok {
			g, err = s.rankings.Get(ctx, profile.Position)
			if err != nil && !errx.IsType(err, errx.TypeNotFound) {
				return nil, err
			}
			rankings[profile.Position] = g
		}

		row := ranking.ReportRow{
			CandidateID:       profile.ID.String(),
			Name:              profile.Name,
			Position:          profile.Position.String(),
			OverallSimilarity: profile.OverallSimilarity,
			ATS:               profile.ATS,
			Offers:            len(profile.Offers),
			Rejections:        len(profile.Rejections),
		}

		// Unranked candidates sort after every ranked one.
		sortKey := math.MaxInt
		if g != nil {
			if rank, ranked := g.RankOf(profile.ID); ranked {
				row.Rank = rank
				row.Ranked = true
				sortKey = rank
			}
		}

		keyed = append(keyed, keyedRow{key: sortKey, row: row})
	}

	// Ties on rank break on position then candidate id so repeated report
	// runs over an unchanged store produce the same row order.
	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].key != keyed[j].key {
			return keyed[i].key < keyed[j].key
		}
		if keyed[i].row.Position != keyed[j].row.Position {
			return keyed[i].row.Position < keyed[j].row.Position
		}
		return keyed[i].row.CandidateID < keyed[j].row.CandidateID
	})

	rows := make([]ranking.ReportRow, len(keyed))
	for i, kr := range keyed {
		rows[i] = kr.row
	}

	return &ranking.UniversityReport{
		University:  university.String(),
		Rows:        rows,
		GeneratedAt: time.Now(),
	}, nil
}
