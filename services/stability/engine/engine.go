// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/bellwether-analytics/bellwether/services/stability/aggregate"
	"github.com/bellwether-analytics/bellwether/services/stability/graph"
	"github.com/bellwether-analytics/bellwether/services/stability/quadrant"
	"github.com/bellwether-analytics/bellwether/services/stability/risk"
	"github.com/bellwether-analytics/bellwether/services/stability/snapshot"
)

// Run executes a full stability analysis: baseline classification from the
// snapshot's point estimates, N Monte Carlo trials on a worker pool, and
// cross-trial aggregation into a Report.
//
// Description:
//
//	The snapshot is shared read-only across all workers; each trial writes
//	only its own pre-assigned output slot, so trial completion order never
//	affects the result. Trial i's random stream is derived from
//	(cfg.Seed, i), making runs reproducible for equal seed and trial count.
//
//	The run may be aborted between trials via ctx; outcomes of trials that
//	never launched are discarded and ctx.Err() is returned.
//
// Inputs:
//
//   - ctx: Context for cancellation and tracing. Must not be nil.
//   - snap: Resolved snapshot. Must not be nil or empty.
//   - cfg: Run configuration; zero fields receive defaults.
//
// Outputs:
//
//   - *aggregate.Report: per-node stability statistics.
//   - *Diagnostics: accumulated data-quality warnings, never nil on a
//     non-fatal run.
//   - error: configuration errors (before any trial), cancellation, or
//     tolerance escalation when too many trials failed.
//
// Thread Safety: Safe for concurrent use; runs share no mutable state.
func Run(ctx context.Context, snap *snapshot.AnalysisSnapshot, cfg Config) (*aggregate.Report, *Diagnostics, error) {
	start := time.Now()
	if err := initMetrics(); err != nil {
		slog.Warn("stability metrics unavailable", slog.String("error", err.Error()))
	}

	if snap == nil {
		return nil, nil, ErrNilSnapshot
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if snap.NodeCount() == 0 {
		return nil, nil, snapshot.ErrEmptyNodeSet
	}
	if len(snap.Index()) == 0 {
		return nil, nil, ErrSnapshotUnresolved
	}

	ctx, span := tracer.Start(ctx, "engine.Run",
		trace.WithAttributes(
			attribute.Int("node_count", snap.NodeCount()),
			attribute.Int("trial_count", cfg.TrialCount),
			attribute.Int("workers", cfg.Workers),
		),
	)
	defer span.End()

	diag := &Diagnostics{}
	adj := snap.AdjacencyResolved()

	// Shared read-only trial plan.
	order, complete := graph.TopologicalOrder(adj)
	if !complete {
		diag.record(Warning{
			Code: WarnIncompleteOrder,
			Message: fmt.Sprintf("topological order covers %d of %d nodes, propagation uses the partial order",
				len(order), snap.NodeCount()),
			Trial: -1,
		})
	}
	parents := make([][]int, snap.NodeCount())
	for i := range parents {
		parents[i] = graph.Parents(adj, i)
	}
	plan := &trialPlan{
		samplers: buildSamplers(snap, diag),
		order:    order,
		parents:  parents,
		seed:     cfg.Seed,
	}

	// Baseline classification from point estimates, same median rule the
	// trials use.
	baselineRisk, baselineInfluence := snap.PointEstimates()
	baseline, err := quadrant.Classify(baselineRisk, baselineInfluence, quadrant.ByMedian)
	if err != nil {
		return nil, nil, err
	}

	outcomes, failed, err := runTrials(ctx, plan, cfg, diag)
	if err != nil {
		if ctx.Err() != nil {
			span.SetAttributes(attribute.Bool("cancelled", true))
		}
		return nil, diag, err
	}

	report := aggregate.Aggregate(snap.Index(), baseline, outcomes)
	report.RunID = uuid.NewString()
	if err := applyBaselineAnalysis(ctx, report, snap, cfg, plan, baselineRisk); err != nil {
		return nil, diag, err
	}

	elapsed := time.Since(start)
	if runLatency != nil {
		runLatency.Record(ctx, elapsed.Seconds())
	}
	if runTotal != nil {
		runTotal.Add(ctx, 1)
	}
	span.SetAttributes(
		attribute.Int("failed_trials", failed),
		attribute.Float64("mean_stability", report.MeanStability),
	)
	slog.Info("stability run completed",
		slog.String("run_id", report.RunID),
		slog.Int("trials", len(outcomes)),
		slog.Int("failed", failed),
		slog.Int("warnings", len(diag.Warnings())),
		slog.Duration("elapsed", elapsed),
	)
	return report, diag, nil
}

// runTrials executes the Monte Carlo trials on a bounded worker pool, records
// a warning per failed trial, and applies the failed-trial tolerance.
//
// The worker loop checks the context between dispatches; trials that never
// launched are not counted. Each trial writes only its own pre-assigned slot,
// so completion order never affects the returned slice, which is truncated to
// the trials actually launched.
func runTrials(ctx context.Context, plan *trialPlan, cfg Config, diag *Diagnostics) ([]aggregate.TrialOutcome, int, error) {
	outcomes := make([]aggregate.TrialOutcome, cfg.TrialCount)
	launched := 0

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Workers)
	for t := 0; t < cfg.TrialCount; t++ {
		if groupCtx.Err() != nil {
			break
		}
		launched++
		group.Go(func() error {
			outcomes[t] = plan.runTrial(t)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	failed := 0
	for t := 0; t < launched; t++ {
		if outcomes[t].Failed {
			failed++
			diag.record(Warning{
				Code:    WarnTrialFailed,
				Message: fmt.Sprintf("trial failed during %s, excluded from aggregation", outcomes[t].FailedPhase),
				Trial:   t,
			})
		}
	}
	if trialsRun != nil {
		trialsRun.Add(ctx, int64(launched))
	}
	if trialsFailed != nil && failed > 0 {
		trialsFailed.Add(ctx, int64(failed))
	}
	if failedFraction := float64(failed) / float64(launched); failedFraction > cfg.FailedTrialTolerance {
		return nil, failed, fmt.Errorf("%w: %d of %d trials (tolerance %.2f)",
			ErrTooManyFailedTrials, failed, launched, cfg.FailedTrialTolerance)
	}
	return outcomes[:launched], failed, nil
}

// applyBaselineAnalysis fills the report's point-estimate supplements:
// eigenvector centrality, cascade-propagated baseline risk, and
// distance-attenuated influence.
func applyBaselineAnalysis(ctx context.Context, report *aggregate.Report, snap *snapshot.AnalysisSnapshot, cfg Config, plan *trialPlan, baselineRisk []float64) error {
	adj := snap.AdjacencyResolved()
	centrality := graph.EigenvectorCentrality(ctx, adj, nil)
	depths := rootDepths(adj, plan.parents)

	// Cascade propagation over the topological order: each node's baseline
	// risk folds in its own scaled failure probability and every parent's
	// already-propagated risk.
	propagated := make([]float64, snap.NodeCount())
	for i := range propagated {
		propagated[i] = math.NaN()
	}
	for _, i := range plan.order {
		parentRisks := make([]float64, 0, len(plan.parents[i]))
		for _, parent := range plan.parents[i] {
			if !math.IsNaN(propagated[parent]) {
				parentRisks = append(parentRisks, propagated[parent])
			}
		}
		r, err := risk.CascadeRisk(baselineRisk[i], cfg.RiskMultiplier, parentRisks)
		if err != nil {
			return err
		}
		propagated[i] = r
	}

	for i := range report.Nodes {
		node := &snap.Nodes[i]
		report.Nodes[i].Name = node.Name
		report.Nodes[i].CriticalPath = node.CriticalPath
		report.Nodes[i].Centrality = centrality[i]
		if !math.IsNaN(propagated[i]) {
			report.Nodes[i].PropagatedRisk = propagated[i]
		} else {
			// Node outside the partial order; keep its unpropagated
			// local estimate.
			report.Nodes[i].PropagatedRisk = baselineRisk[i]
		}
		attenuated, err := risk.InfluenceScore(node.Influence, depths[i], cfg.AttenuationFactor)
		if err != nil {
			return err
		}
		report.Nodes[i].AttenuatedInfluence = attenuated
	}
	return nil
}

// rootDepths returns each node's minimum hop distance from any root (a node
// with no parents). Nodes unreachable from every root, which can only happen
// on cyclic input, get depth 0.
func rootDepths(adj [][]float64, parents [][]int) []int {
	n := len(adj)
	depths := make([]int, n)
	visited := make([]bool, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if len(parents[i]) == 0 {
			visited[i] = true
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range graph.Children(adj, current) {
			if !visited[child] {
				visited[child] = true
				depths[child] = depths[current] + 1
				queue = append(queue, child)
			}
		}
	}
	return depths
}
