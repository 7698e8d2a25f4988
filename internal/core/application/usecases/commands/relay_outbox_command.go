package commands

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrRelayOutboxCommandIsNotConstructed = errors.New(
		"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
	)
)

// RelayOutboxCommand publishes up to BatchSize pending outbox messages.
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize <= 0 {
		return RelayOutboxCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize))
	}
	return RelayOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}
