package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// ClientType selects retail or wholesale pricing rules.
type ClientType string

const (
	Retail    ClientType = "retail"
	Wholesale ClientType = "wholesale"
)

func ParseClientType(s string) (ClientType, error) {
	ct := ClientType(strings.ToLower(strings.TrimSpace(s)))
	if err := ct.Validate(); err != nil {
		return "", err
	}
	return ct, nil
}

func (c ClientType) Validate() error {
	if c != Retail && c != Wholesale {
		return errs.NewValueIsInvalidErrorWithCause("clientType", fmt.Errorf("%q is not a valid client type", string(c)))
	}
	return nil
}

func (c ClientType) String() string {
	return string(c)
}

// ChangeSource is the actor category recorded on a status history entry.
type ChangeSource string

const (
	SourceSystem       ChangeSource = "system"
	SourceManager      ChangeSource = "manager"
	SourceClientAction ChangeSource = "client_action"
)

func ParseChangeSource(s string) (ChangeSource, error) {
	cs := ChangeSource(strings.ToLower(strings.TrimSpace(s)))
	if err := cs.Validate(); err != nil {
		return "", err
	}
	return cs, nil
}

func (c ChangeSource) Validate() error {
	switch c {
	case SourceSystem, SourceManager, SourceClientAction:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("changeSource", fmt.Errorf("%q is not a valid change source", string(c)))
	}
}

func (c ChangeSource) String() string {
	return string(c)
}

// PaymentStatus tracks payment state as reported by the order lifecycle.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Contact is the customer contact snapshot taken at checkout. It never changes afterwards.
type Contact struct {
	Name  string
	Phone string
	Email string
}

func (c Contact) Validate() error {
	var errList []error
	if strings.TrimSpace(c.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("contact name"))
	}
	if strings.TrimSpace(c.Phone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("contact phone"))
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("contact email", fmt.Errorf("%q has no @", c.Email)))
	}
	return errors.Join(errList...)
}

// Delivery describes where and how the order is shipped.
type Delivery struct {
	Method         string
	City           string
	Address        string
	Branch         string
	TrackingNumber string
}

// Payment is the chosen payment method and its current status.
type Payment struct {
	Method string
	Status PaymentStatus
}

// Checkout groups the customer-supplied details of a new order.
type Checkout struct {
	Contact       Contact
	Delivery      Delivery
	PaymentMethod string
	Comment       string
}
