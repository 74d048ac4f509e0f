// Package screening ranks résumés against a job description and keeps the results of each run
// in a session scoped store.
package screening

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/screener/internal/classify"
	"github.com/hyperjump/screener/internal/embedding"
	"github.com/hyperjump/screener/internal/gap"
	"github.com/hyperjump/screener/internal/models"
	"github.com/hyperjump/screener/internal/scoring"
	"github.com/hyperjump/screener/internal/skills"
	"github.com/hyperjump/screener/internal/vector"
	"github.com/hyperjump/screener/pkg/utils"
)

// ErrEmptyJobDescription is returned when the job description is blank.
var ErrEmptyJobDescription = errors.New("job description is empty")

const defaultWorkers = 4

// Resume is one résumé already reduced to plain text.
type Resume struct {
	Filename string
	Text     string
}

// Screener runs a screening: one job description against many résumés.
// It holds only read-only collaborators and is safe for concurrent use.
type Screener struct {
	embedder  embedding.Embedder
	extractor *skills.Extractor
	scorer    scoring.Scorer
	workers   int
	logger    *zap.Logger
}

// NewScreener creates a screener. workers bounds the number of résumés processed in parallel.
func NewScreener(
	embedder embedding.Embedder,
	extractor *skills.Extractor,
	scorer scoring.Scorer,
	workers int,
	logger *zap.Logger,
) *Screener {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Screener{
		embedder:  embedder,
		extractor: extractor,
		scorer:    scorer,
		workers:   workers,
		logger:    utils.OrNop(logger),
	}
}

// ScoringMode reports which scoring strategy this screener uses.
func (s *Screener) ScoringMode() string {
	return s.scorer.Mode()
}

// Screen ranks resumes against jdText. Blank résumés and résumés that fail to embed are skipped and
// listed in the result; they never fail the run. Candidates are sorted by score descending, ties
// keeping input order. Zero usable résumés yields an empty candidate list.
func (s *Screener) Screen(ctx context.Context, jdText string, resumes []Resume) (*models.ScreeningResult, error) {
	startTime := time.Now()
	if strings.TrimSpace(jdText) == "" {
		return nil, ErrEmptyJobDescription
	}

	jdEmbedding, err := s.embedder.Embed(ctx, jdText)
	if err != nil {
		return nil, fmt.Errorf("embed job description: %w", err)
	}
	jdSkills := s.extractor.ExtractSkills(jdText)

	slots := make([]*models.Candidate, len(resumes))
	skipped := make([]bool, len(resumes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, r := range resumes {
		if strings.TrimSpace(r.Filename) == "" || strings.TrimSpace(r.Text) == "" {
			s.logger.Debug("skipping blank resume", zap.Int("position", i), zap.String("filename", r.Filename))
			skipped[i] = true
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emb, err := s.embedder.Embed(gctx, r.Text)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Warn("skipping resume: embedding failed", zap.String("filename", r.Filename), zap.Error(err))
				skipped[i] = true
				return nil
			}
			slots[i] = s.evaluate(r, emb, jdEmbedding, jdSkills)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]*models.Candidate, 0, len(resumes))
	skippedNames := make([]string, 0)
	for i, c := range slots {
		if skipped[i] {
			skippedNames = append(skippedNames, skippedName(resumes[i], i))
			continue
		}
		candidates = append(candidates, c)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	result := &models.ScreeningResult{
		SessionID:   uuid.NewString(),
		JDSkills:    jdSkills,
		Candidates:  candidates,
		ScoringMode: s.scorer.Mode(),
		Received:    len(resumes),
		Skipped:     skippedNames,
		CreatedAt:   startTime.UTC(),
		Duration:    time.Since(startTime).Milliseconds(),
	}
	s.logger.Info("screening complete",
		zap.String("session_id", result.SessionID),
		zap.Int("resumes", len(resumes)),
		zap.Int("candidates", len(candidates)),
		zap.String("scoring_mode", result.ScoringMode),
		zap.Duration("duration", time.Since(startTime)),
	)
	return result, nil
}

// evaluate builds the candidate record for one résumé.
func (s *Screener) evaluate(r Resume, emb, jdEmbedding []float32, jdSkills []string) *models.Candidate {
	profile := s.extractor.Profile(r.Text)
	similarity := vector.CosineSimilarity(jdEmbedding, emb)
	score := s.scorer.Score(models.Features{
		Similarity:      similarity,
		SkillCount:      len(profile.Skills),
		ExperienceYears: profile.ExperienceYears,
	})
	g := gap.Compute(jdSkills, profile.Skills)
	return &models.Candidate{
		Filename:        r.Filename,
		Skills:          profile.Skills,
		Similarity:      similarity,
		Score:           score,
		ExperienceYears: profile.ExperienceYears,
		Education:       profile.Education,
		Domain:          classify.InferDomain(profile.Skills, r.Text),
		Seniority:       classify.InferSeniority(profile.ExperienceYears, r.Text),
		MatchedSkills:   g.Matched,
		MissingSkills:   g.Missing,
		ExtraSkills:     g.Extra,
		RawText:         r.Text,
	}
}

func skippedName(r Resume, position int) string {
	if name := strings.TrimSpace(r.Filename); name != "" {
		return name
	}
	return fmt.Sprintf("resume #%d", position+1)
}
