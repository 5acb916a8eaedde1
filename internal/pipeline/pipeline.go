// Package pipeline runs a submission through an ordered chain of analysis
// stages. A stage may halt the chain; an error aborts it.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Verdict int

const (
	Continue Verdict = iota
	Halt
)

type Stage[T any] interface {
	Name() string
	Cost() int
	Run(ctx context.Context, state *T) (Verdict, error)
}

// Outcome describes how far a chain got. Cost is the sum over completed
// stages only.
type Outcome struct {
	Completed []string
	Cost      int
	Halted    bool
}

type Chain[T any] struct {
	stages []Stage[T]
}

func NewChain[T any](stages ...Stage[T]) *Chain[T] {
	return &Chain[T]{stages: stages}
}

// MaxCost is what a run through every stage charges.
func (c *Chain[T]) MaxCost() int {
	total := 0
	for _, s := range c.stages {
		total += s.Cost()
	}
	return total
}

func (c *Chain[T]) Run(ctx context.Context, state *T) (Outcome, error) {
	out := Outcome{Completed: make([]string, 0, len(c.stages))}
	for _, stage := range c.stages {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}

		verdict, err := stage.Run(ctx, state)
		if err != nil {
			zap.L().Warn("pipeline stage failed", zap.String("stage", stage.Name()), zap.Strings("completed", out.Completed), zap.Error(err))
			return out, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}

		out.Completed = append(out.Completed, stage.Name())
		out.Cost += stage.Cost()
		if verdict == Halt {
			zap.L().Info("pipeline halted", zap.String("stage", stage.Name()))
			out.Halted = true
			return out, nil
		}
	}
	return out, nil
}
