// Package keyword provides full-text search over the candidates of one screening session.
package keyword

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/screener/internal/models"
)

const (
	defaultLimit  = 10
	filenameBoost = 2.0
	skillsBoost   = 3.0
	candidateType = "candidate"
)

// Hit is a single keyword match. Index is the candidate's position in the ranked list.
type Hit struct {
	Index    int     `json:"index"`
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
}

type candidateDoc struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Skills   string `json:"skills"`
}

// Index is an in-memory Bleve index of candidate filename, text and skills.
type Index struct {
	index     bleve.Index
	filenames []string
}

// NewIndex builds an in-memory index over candidates, keyed by their position.
func NewIndex(ctx context.Context, candidates []*models.Candidate) (*Index, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	// Standard analyzer: lowercase + tokenize, no stemming.
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	textFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("filename", textFieldMapping)
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	docMapping.AddFieldMappingsAt("skills", textFieldMapping)
	im.AddDocumentMapping(candidateType, docMapping)
	im.DefaultType = candidateType
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}

	idx := &Index{index: index, filenames: make([]string, len(candidates))}
	batch := index.NewBatch()
	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			index.Close()
			return nil, err
		}
		idx.filenames[i] = c.Filename
		doc := candidateDoc{
			Filename: c.Filename,
			Content:  c.RawText,
			Skills:   strings.Join(c.Skills, " "),
		}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			index.Close()
			return nil, fmt.Errorf("index candidate %d: %w", i, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index candidates: %w", err)
	}
	return idx, nil
}

// Search matches query against skills, filename and text, and returns up to limit hits by relevance.
// A non-positive limit uses the default of 10. A blank query returns no hits.
func (x *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	req := bleve.NewSearchRequest(buildQuery(query))
	req.Size = limit
	results, err := x.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}

	out := make([]Hit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(x.filenames) {
			continue
		}
		out = append(out, Hit{Index: i, Filename: x.filenames[i], Score: hit.Score})
	}
	return out, nil
}

// buildQuery ORs a match query per field, boosting skills and filename over body text.
func buildQuery(query string) blevequery.Query {
	skills := bleve.NewMatchQuery(query)
	skills.SetField("skills")
	skills.SetBoost(skillsBoost)

	filename := bleve.NewMatchQuery(query)
	filename.SetField("filename")
	filename.SetBoost(filenameBoost)

	content := bleve.NewMatchQuery(query)
	content.SetField("content")

	return bleve.NewDisjunctionQuery(skills, filename, content)
}

// DocCount returns the number of indexed candidates.
func (x *Index) DocCount() (uint64, error) {
	return x.index.DocCount()
}

// Close releases the index.
func (x *Index) Close() error {
	return x.index.Close()
}
