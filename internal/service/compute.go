package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
)

// ComputeFunc returns the computed value of a field for the line. Returning
// values without the target field leaves the line unchanged.
type ComputeFunc func(ctx context.Context, line *model.OrderLine) (model.LineValues, error)

type computeRule struct {
	target model.Field
	deps   []model.Field
	fn     ComputeFunc
}

// ComputeRegistry declares which order line fields are recomputed from which
// others. Rules run in registration order, so a rule must be registered after
// the rules computing its dependencies.
type ComputeRegistry struct {
	rules []computeRule
}

// NewComputeRegistry creates an empty registry.
func NewComputeRegistry() *ComputeRegistry {
	return &ComputeRegistry{}
}

// Register adds a rule computing target from deps.
func (r *ComputeRegistry) Register(target model.Field, fn ComputeFunc, deps ...model.Field) {
	r.rules = append(r.rules, computeRule{target: target, deps: deps, fn: fn})
}

// Dependants returns the fields recomputed, directly or transitively, when
// the given fields change.
func (r *ComputeRegistry) Dependants(changed ...model.Field) []model.Field {
	affected := slices.Clone(changed)
	var out []model.Field
	for _, rule := range r.rules {
		if !slices.ContainsFunc(rule.deps, func(f model.Field) bool { return slices.Contains(affected, f) }) {
			continue
		}
		if !slices.Contains(out, rule.target) {
			out = append(out, rule.target)
		}
		affected = append(affected, rule.target)
	}
	return out
}

// ComputeMissing fills every computed field the caller did not supply and
// returns the fields it set.
func (r *ComputeRegistry) ComputeMissing(ctx context.Context, line *model.OrderLine, supplied model.LineValues) ([]model.Field, error) {
	ct := model.NewChangeTracker()
	for _, rule := range r.rules {
		if supplied.Has(rule.target) {
			continue
		}
		if err := r.run(ctx, rule, line, ct); err != nil {
			return nil, err
		}
	}
	return ct.DirtyFields(), nil
}

// Recompute runs the rules depending on the changed fields, skipping targets
// the caller supplied in the same write. It returns the fields whose value
// changed.
func (r *ComputeRegistry) Recompute(ctx context.Context, line *model.OrderLine, changed []model.Field, supplied model.LineValues) ([]model.Field, error) {
	affected := slices.Clone(changed)
	ct := model.NewChangeTracker()
	for _, rule := range r.rules {
		if supplied.Has(rule.target) {
			continue
		}
		if !slices.ContainsFunc(rule.deps, func(f model.Field) bool { return slices.Contains(affected, f) }) {
			continue
		}
		if err := r.run(ctx, rule, line, ct); err != nil {
			return nil, err
		}
		if ct.Dirty(rule.target) {
			affected = append(affected, rule.target)
		}
	}
	return ct.DirtyFields(), nil
}

func (r *ComputeRegistry) run(ctx context.Context, rule computeRule, line *model.OrderLine, ct *model.ChangeTracker) error {
	vals, err := rule.fn(ctx, line)
	if err != nil {
		return fmt.Errorf("compute %s: %w", rule.target, err)
	}
	if !vals.Has(rule.target) {
		return nil
	}
	if vals.Only(rule.target).ApplyTo(line).Dirty(rule.target) {
		ct.MarkDirty(rule.target)
	}
	return nil
}
