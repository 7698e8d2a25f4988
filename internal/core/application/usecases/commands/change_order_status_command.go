package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand requests a status transition on behalf of an actor.
//
// The target is kept as the caller sent it: an unknown status name is a
// rejected transition, not malformed input.
//
// Example:
//
//	managerID := kernel.NewUUID()
//	cmd, err := NewChangeOrderStatusCommand(orderID, "shipped", &managerID, order.SourceManager, "", "TTN-20450")
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	target         string
	actorID        *kernel.UUID
	source         order.ChangeSource
	comment        string
	trackingNumber string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target string,
	actorID *kernel.UUID,
	source order.ChangeSource,
	comment string,
	trackingNumber string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		actorID:        actorID,
		comment:        strings.TrimSpace(comment),
		trackingNumber: strings.TrimSpace(trackingNumber),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setSource(source),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status name as received.
func (c ChangeOrderStatusCommand) Target() string {
	return c.target
}

func (c ChangeOrderStatusCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c ChangeOrderStatusCommand) Source() order.ChangeSource {
	return c.source
}

func (c ChangeOrderStatusCommand) Comment() string {
	return c.comment
}

func (c ChangeOrderStatusCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return errs.NewValueIsRequiredError("status")
	}
	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setSource(source order.ChangeSource) error {
	if err := source.Validate(); err != nil {
		return err
	}
	c.source = source
	return nil
}
