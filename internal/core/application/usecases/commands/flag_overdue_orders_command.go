package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrFlagOverdueOrdersCommandIsNotConstructed = errors.New(
	"FlagOverdueOrdersCommand must be created via NewFlagOverdueOrdersCommand constructor",
)

// FlagOverdueOrdersCommand asks for one batch of the overdue scan.
type FlagOverdueOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewFlagOverdueOrdersCommand(batchSize int) (FlagOverdueOrdersCommand, error) {
	if batchSize < 1 || batchSize > 1000 {
		return FlagOverdueOrdersCommand{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"batch_size", batchSize, 1, 1000, fmt.Errorf("%d is outside [1, 1000]", batchSize))
	}
	return FlagOverdueOrdersCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c FlagOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFlagOverdueOrdersCommandIsNotConstructed)
}

func (c FlagOverdueOrdersCommand) BatchSize() int { return c.batchSize }
