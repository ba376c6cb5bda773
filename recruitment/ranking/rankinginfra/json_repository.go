package rankinginfra

import (
	"context"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/storex"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking"
)

// rankingDocument is the on-disk shape of the ranking store, keyed by
// position.
type rankingDocument struct {
	Rankings map[string]*ranking.GlobalRanking `json:"rankings"`
}

func emptyRankingDocument() rankingDocument {
	return rankingDocument{Rankings: map[string]*ranking.GlobalRanking{}}
}

// JSONRepository persists global rankings in a single JSON document.
type JSONRepository struct {
	store *storex.File
}

func NewJSONRepository(store *storex.File) *JSONRepository {
	return &JSONRepository{store: store}
}

func (r *JSONRepository) Put(ctx context.Context, g *ranking.GlobalRanking) error {
	err := r.store.Update(func(read, write func(any) error) error {
		doc := emptyRankingDocument()
		if err := read(&doc); err != nil {
			return err
		}
		doc.Rankings[g.Position.String()] = g
		return write(doc)
	})
	if err != nil {
		if _, ok := err.(*errx.Error); ok {
			return err
		}
		return ranking.ErrRepository(err)
	}
	return nil
}

func (r *JSONRepository) Get(ctx context.Context, position kernel.Position) (*ranking.GlobalRanking, error) {
	doc := emptyRankingDocument()
	if err := r.store.Read(&doc); err != nil {
		return nil, ranking.ErrRepository(err)
	}

	g, ok := doc.Rankings[position.String()]
	if !ok {
		return nil, ranking.ErrRankingNotFound().WithDetail("position", position.String())
	}
	return g, nil
}

func (r *JSONRepository) ListAll(ctx context.Context) ([]*ranking.GlobalRanking, error) {
	doc := emptyRankingDocument()
	if err := r.store.Read(&doc); err != nil {
		return nil, ranking.ErrRepository(err)
	}

	all := make([]*ranking.GlobalRanking, 0, len(doc.Rankings))
	for _, g := range doc.Rankings {
		all = append(all, g)
	}
	return all, nil
}
