// utils/ref_code.go
package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenPaymentRef builds a payment reference like PAY-2026-3f8a1c2d.
func GenPaymentRef(t time.Time) string {
	return fmt.Sprintf("PAY-%d-%s", t.Year(), shortID())
}

// GenDeductionRef ties a payroll deduction back to its payment reference.
func GenDeductionRef(paymentRef string, debtID uint) string {
	return fmt.Sprintf("%s-D%d", paymentRef, debtID)
}

func shortID() string {
	return strings.Split(uuid.NewString(), "-")[0]
}
