package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"waver/internal/answer"
	"waver/internal/config"
	"waver/internal/inference"
	"waver/internal/labelnoise"
	"waver/internal/question"
	"waver/internal/stability"
	"waver/internal/variant"
)

// Orchestrator drives the cross product of variants, models, and arms
// against the inference provider and assembles evaluation rows. The
// provider is a constructor-time dependency; nothing here is global.
type Orchestrator struct {
	provider inference.Provider
	cfg      config.Config
	opts     Options
}

// NewOrchestrator constructs an orchestrator for one evaluation run.
func NewOrchestrator(provider inference.Provider, cfg config.Config, opts Options) *Orchestrator {
	return &Orchestrator{provider: provider, cfg: cfg, opts: opts}
}

// armSpec couples an arm tag with its temperature setting.
type armSpec struct {
	arm         stability.Arm
	temperature *float64
}

// preparedQuestion caches per-question work shared across models and arms.
type preparedQuestion struct {
	item          question.Question
	variants      []variant.Variant
	groundTruthID int
}

// groupJob is one (model, question) flip group; all of its variant and arm
// calls complete before flip detection runs.
type groupJob struct {
	index    int
	model    string
	prepared preparedQuestion
}

// Evaluate runs every (model, question) group and returns the annotated rows
// and summary. Any provider failure other than the recognized
// unsupported-temperature condition aborts the whole run with no partial
// results.
func (o *Orchestrator) Evaluate(ctx context.Context, questions []question.Question) (Results, error) {
	now := o.opts.Now
	if now == nil {
		now = time.Now
	}
	runID := ""
	if o.opts.RunID != nil {
		runID = o.opts.RunID()
	} else {
		runID = NewRunID()
	}
	startedAt := now().UTC()

	prepared := o.prepareQuestions(questions)
	jobs := make([]groupJob, 0, len(o.cfg.Models)*len(prepared))
	for _, model := range o.cfg.Models {
		for _, item := range prepared {
			jobs = append(jobs, groupJob{index: len(jobs), model: model, prepared: item})
		}
	}

	groupRows, err := o.runGroups(ctx, jobs)
	if err != nil {
		return Results{}, err
	}

	rows := make([]stability.Row, 0, len(jobs))
	for _, group := range groupRows {
		rows = append(rows, group...)
	}

	return Results{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: now().UTC(),
		Summary:    stability.Summarize(rows),
		Results:    rows,
	}, nil
}

// prepareQuestions resolves variants and noise-adjusted ground truth once
// per question. A question whose ground-truth letter is out of range is a
// fatal configuration error for that question: it contributes no rows.
func (o *Orchestrator) prepareQuestions(questions []question.Question) []preparedQuestion {
	prepared := make([]preparedQuestion, 0, len(questions))
	for _, item := range questions {
		groundTruth, err := question.GroundTruthIndex(item)
		if err != nil {
			o.logf(styleError, "Skipping question %s: %v", item.ID, err)
			continue
		}
		groundTruth = labelnoise.Resolve(groundTruth, o.cfg.LabelNoisePct, len(item.Choices), o.cfg.Invariance.Seed, item.ID)
		prepared = append(prepared, preparedQuestion{
			item:          item,
			variants:      variant.Generate(item.ID, item.Prompt, item.Choices, o.cfg.Invariance),
			groundTruthID: groundTruth,
		})
	}
	return prepared
}

// runGroups executes group jobs on a bounded worker pool. Row order follows
// the deterministic model-by-question job order regardless of scheduling.
func (o *Orchestrator) runGroups(ctx context.Context, jobs []groupJob) ([][]stability.Row, error) {
	groupCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := o.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([][]stability.Row, len(jobs))
	jobCh := make(chan groupJob)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				rows, err := o.runGroup(groupCtx, job)
				if err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				results[job.index] = rows
			}
		}()
	}

	for _, job := range jobs {
		select {
		case jobCh <- job:
		case <-groupCtx.Done():
		}
	}
	close(jobCh)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// runGroup issues every variant and arm call for one (model, question)
// group, then annotates flips for the completed group.
func (o *Orchestrator) runGroup(ctx context.Context, job groupJob) ([]stability.Row, error) {
	arms := o.arms()
	rows := make([]stability.Row, 0, len(arms)*len(job.prepared.variants))
	for _, arm := range arms {
		for _, v := range job.prepared.variants {
			row, err := o.evaluateVariant(ctx, job, arm, v)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return stability.AnnotateFlips(rows), nil
}

// evaluateVariant performs one inference call and builds its row.
func (o *Orchestrator) evaluateVariant(ctx context.Context, job groupJob, arm armSpec, v variant.Variant) (stability.Row, error) {
	system, user := buildPrompt(v, o.cfg.PromptStyle)
	o.logf(styleTask, "Model %s question %s arm=%s variant=%s/%d", job.model, job.prepared.item.ID, arm.arm, v.Type, v.Index)

	raw, temperatureApplied, err := o.invokeWithTemperatureRetry(ctx, inference.Request{
		Model:         job.model,
		System:        system,
		Messages:      []inference.Message{{Role: "user", Content: user}},
		Temperature:   arm.temperature,
		ReasoningHint: o.cfg.ReasoningHint,
	})
	if err != nil {
		o.logf(styleError, "Model %s question %s variant %d failed: %v", job.model, job.prepared.item.ID, v.Index, err)
		return stability.Row{}, fmt.Errorf("invoke %s for question %s: %w", job.model, job.prepared.item.ID, err)
	}

	outcome := parseOutput(o.cfg.PromptStyle, raw, len(v.Choices))
	predicted := predictedOriginalID(outcome, v)
	row := stability.Row{
		Model:              job.model,
		QuestionID:         job.prepared.item.ID,
		Arm:                arm.arm,
		VariantType:        v.Type,
		VariantIndex:       v.Index,
		Permutation:        v.Permutation,
		RawOutput:          raw,
		Answer:             outcome.Letter,
		ParseMethod:        outcome.Method,
		SchemaCompliant:    outcome.SchemaCompliant,
		PredictedID:        predicted,
		GroundTruthID:      job.prepared.groundTruthID,
		Correct:            predicted != nil && *predicted == job.prepared.groundTruthID,
		TemperatureApplied: temperatureApplied,
	}
	return row, nil
}

// invokeWithTemperatureRetry calls the provider, retrying exactly once
// without the temperature parameter when the provider rejects it. The
// returned flag reports whether the requested temperature was applied.
func (o *Orchestrator) invokeWithTemperatureRetry(ctx context.Context, req inference.Request) (string, bool, error) {
	raw, err := o.provider.Invoke(ctx, req)
	if err == nil {
		return raw, true, nil
	}
	if req.Temperature == nil || !errors.Is(err, inference.ErrTemperatureUnsupported) {
		return "", false, err
	}
	o.logf(styleStats, "Model %s rejected temperature; retrying without it", req.Model)
	retry := req
	retry.Temperature = nil
	raw, err = o.provider.Invoke(ctx, retry)
	if err != nil {
		return "", false, err
	}
	return raw, false, nil
}

// arms resolves the evaluation arms for the configured profile.
func (o *Orchestrator) arms() []armSpec {
	if o.cfg.Profile == config.ProfileControlled {
		zero := 0.0
		stochastic := o.cfg.StochasticTemperature
		return []armSpec{
			{arm: stability.ArmDeterministic, temperature: &zero},
			{arm: stability.ArmStochastic, temperature: &stochastic},
		}
	}
	return []armSpec{{arm: stability.ArmSingle}}
}

// parseOutput selects the parsing regime for the prompt style.
func parseOutput(style, raw string, numChoices int) answer.Outcome {
	switch style {
	case config.PromptChainOfThought:
		return answer.ParseChainOfThought(raw, numChoices)
	case config.PromptStrictJSON:
		return answer.ParseStrict(raw, numChoices)
	default:
		return answer.ParseDirect(raw, numChoices)
	}
}

// predictedOriginalID maps a parsed display letter through the variant's
// permutation back to the original choice id; nil means unparseable.
func predictedOriginalID(outcome answer.Outcome, v variant.Variant) *int {
	index, ok := question.IndexForLetter(outcome.Letter)
	if !ok || index >= len(v.Permutation) {
		return nil
	}
	original := v.Permutation[index]
	return &original
}

func (o *Orchestrator) logf(style verboseStyle, format string, args ...any) {
	logVerbose(o.opts.Verbose, o.opts.VerboseWriter, o.opts.NoColor, style, format, args...)
}
