// Package search provides full-text search over problem statements,
// examples and notes.
package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/midaytech/brainloop/internal/models"
)

// DefaultLimit is the maximum number of hits returned when no limit is
// given.
const DefaultLimit = 10

// Hit is a matching problem with its relevance score.
type Hit struct {
	Problem models.Problem
	Score   float64
}

// Index is an in-memory search index over a problem collection.
type Index struct {
	index    bleve.Index
	problems map[string]models.Problem
}

// buildIndexMapping creates the index mapping for problems.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	problemMapping := bleve.NewDocumentMapping()

	for _, name := range []string{"title", "problem", "examples", "notes"} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = standard.Name
		f.Store = false
		f.Index = true
		problemMapping.AddFieldMappingsAt(name, f)
	}

	tagField := bleve.NewTextFieldMapping()
	tagField.Analyzer = keyword.Name
	tagField.Store = false
	tagField.Index = true
	problemMapping.AddFieldMappingsAt("tags", tagField)

	indexMapping.DefaultMapping = problemMapping

	return indexMapping
}

// New indexes problems in memory.
func New(problems []models.Problem) (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}

	idx := &Index{
		index:    index,
		problems: make(map[string]models.Problem, len(problems)),
	}

	batch := index.NewBatch()

	for i := range problems {
		p := &problems[i]
		id := p.ID.String()

		doc := map[string]any{
			"title":    p.Title,
			"problem":  p.Problem,
			"examples": p.Examples,
			"notes":    p.Notes,
			"tags":     p.TagNames(),
		}

		if err := batch.Index(id, doc); err != nil {
			index.Close()
			return nil, fmt.Errorf("indexing %q: %w", p.Title, err)
		}

		idx.problems[id] = *p
	}

	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("indexing problems: %w", err)
	}

	return idx, nil
}

// Search returns the problems matching text, best match first. When tag
// is set only problems carrying that tag match.
func (idx *Index) Search(text, tag string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var q query.Query = bleve.NewMatchQuery(text)

	if tag != "" {
		tagQuery := bleve.NewTermQuery(tag)
		tagQuery.SetField("tags")

		q = bleve.NewConjunctionQuery(q, tagQuery)
	}

	req := bleve.NewSearchRequest(q)
	req.Size = limit

	res, err := idx.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))

	for _, h := range res.Hits {
		p, ok := idx.problems[h.ID]
		if !ok {
			continue
		}

		hits = append(hits, Hit{Problem: p, Score: h.Score})
	}

	return hits, nil
}

// Close releases the index.
func (idx *Index) Close() error {
	return idx.index.Close()
}
