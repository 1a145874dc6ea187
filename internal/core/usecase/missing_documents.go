package usecase

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

var (
	lateFeeKeywords = []string{"late fee", "penalty"}
	invoiceKeywords = []string{"invoice"}
)

// DetectMissingDocuments applies the keyword rules to notice text. Matching is
// case-insensitive substring matching with no negation awareness, so "no late
// fee applicable" still asks for proof of payment.
func DetectMissingDocuments(text string, attachmentCount int) []string {
	missing := make([]string, 0, 2)
	if text == "" {
		return missing
	}

	folded := cases.Fold().String(text)
	if containsAny(folded, lateFeeKeywords) {
		missing = append(missing, domain.MissingLateFeeProof)
	}
	if attachmentCount == 0 && containsAny(folded, invoiceKeywords) {
		missing = append(missing, domain.MissingSupportingInvoice)
	}
	return missing
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
