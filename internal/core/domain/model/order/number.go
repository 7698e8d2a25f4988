package order

import (
	"fmt"
	"regexp"
	"time"

	"ordering/internal/pkg/errs"
)

var numberPattern = regexp.MustCompile(`^\d{8}-\d{6,}$`)

// FormatNumber builds the human-readable order number YYYYMMDD-NNNNNN from the
// checkout date and a database sequence value.
func FormatNumber(at time.Time, seq int64) (string, error) {
	if seq <= 0 {
		return "", errs.NewValueIsInvalidErrorWithCause("order number sequence", fmt.Errorf("%d is not greater than 0", seq))
	}
	return fmt.Sprintf("%s-%06d", at.UTC().Format("20060102"), seq), nil
}

func validateNumber(number string) error {
	if !numberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q does not match YYYYMMDD-NNNNNN", number))
	}
	return nil
}
