package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"golang.org/x/sync/errgroup"
)

const explanationCorrect = "Correct!"

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	tables  *ReferenceTables
	logger  *slog.Logger
	workers int
	extra   map[models.QuestionType]Matcher
}

// WithReferenceTables replaces the built-in synonym, variation and plural tables.
func WithReferenceTables(t *ReferenceTables) Option {
	return func(c *config) {
		if t != nil {
			c.tables = t
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkers bounds the goroutines used by EvaluateBatchParallel.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithMatcher installs or overrides the matcher for one question type.
func WithMatcher(t models.QuestionType, m Matcher) Option {
	return func(c *config) {
		if m != nil {
			c.extra[t] = m
		}
	}
}

// Evaluator decides correctness of answers. It holds only immutable state and is safe for
// concurrent use.
type Evaluator struct {
	tables   *ReferenceTables
	matchers matcherSet
	logger   *slog.Logger
	workers  int
}

func NewEvaluator(opts ...Option) *Evaluator {
	cfg := &config{
		tables:  DefaultReferenceTables(),
		logger:  slog.New(slog.DiscardHandler),
		workers: 4,
		extra:   map[models.QuestionType]Matcher{},
	}
	for _, o := range opts {
		o(cfg)
	}

	matchers := newMatcherSet(cfg.tables, ReadingSimilarityThreshold, ListeningSimilarityThreshold)
	for t, m := range cfg.extra {
		matchers.byType[t] = m
	}

	return &Evaluator{
		tables:   cfg.tables,
		matchers: matchers,
		logger:   cfg.logger.With("component", "evaluator"),
		workers:  cfg.workers,
	}
}

// ReferenceTables returns the tables this evaluator matches against.
func (e *Evaluator) ReferenceTables() *ReferenceTables {
	return e.tables
}

// Evaluate judges one answer against the question it answers.
func (e *Evaluator) Evaluate(answer string, q models.Question) models.EvaluationResult {
	correct := false
	if len(q.CorrectAnswers) > 0 {
		m, fallback := e.matchers.forQuestion(q)
		if fallback {
			e.logger.Debug("No matcher for question type, using skill fallback",
				"question_type", q.Type,
				"skill_area", q.SkillArea)
		}
		correct = m.Match(answer, q.CorrectAnswers)
	}

	return models.EvaluationResult{
		QuestionID:     q.ID,
		SkillArea:      q.SkillArea,
		IsCorrect:      correct,
		UserAnswer:     answer,
		CorrectAnswers: append([]string{}, q.CorrectAnswers...),
		Explanation:    Explain(correct, answer, q.CorrectAnswers),
	}
}

// EvaluateBatch pairs answers[i] with questions[i]. Answers without a question at the same
// index are skipped, so the result has min(len(answers), len(questions)) entries.
func (e *Evaluator) EvaluateBatch(answers []string, questions []models.Question) []models.EvaluationResult {
	n := pairCount(answers, questions)
	if len(answers) > n {
		e.logger.Debug("Skipping answers without a matching question",
			"answers", len(answers),
			"questions", len(questions))
	}

	results := make([]models.EvaluationResult, n)
	for i := 0; i < n; i++ {
		results[i] = e.Evaluate(answers[i], questions[i])
	}
	return results
}

// EvaluateBatchParallel is EvaluateBatch spread over a bounded number of goroutines. The
// only error it returns is the context's.
func (e *Evaluator) EvaluateBatchParallel(ctx context.Context, answers []string, questions []models.Question) ([]models.EvaluationResult, error) {
	n := pairCount(answers, questions)
	results := make([]models.EvaluationResult, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Evaluate(answers[i], questions[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("Evaluated batch", "pairs", n, "workers", e.workers)
	return results, nil
}

func pairCount(answers []string, questions []models.Question) int {
	return min(len(answers), len(questions))
}

// Explain builds the human readable verdict shown next to an answer.
func Explain(correct bool, userAnswer string, correctAnswers []string) string {
	if correct {
		return explanationCorrect
	}
	return fmt.Sprintf("Incorrect. The correct answer(s): %s. Your answer: %s",
		strings.Join(correctAnswers, ", "), userAnswer)
}
