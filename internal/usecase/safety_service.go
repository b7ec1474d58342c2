package usecase

import (
	"strings"

	"github.com/safeplate/backend/internal/domain"
)

// gradedReason pairs a reason with its severity grade. The grade rides
// alongside the reason so the aggregator compares structured data instead
// of label prose.
type gradedReason struct {
	reason domain.Reason
	unsafe bool
}

// SafetyEvaluator classifies products against a user's safety profile.
// It is stateless and safe for concurrent use from any number of callers.
type SafetyEvaluator struct{}

// NewSafetyEvaluator creates a new safety evaluator
func NewSafetyEvaluator() *SafetyEvaluator {
	return &SafetyEvaluator{}
}

// Evaluate classifies a product as safe, caution or unsafe for the given
// profile. It is a pure function of its inputs and never fails: absent or
// malformed product data degrades to a safe verdict with MissingData set.
func (e *SafetyEvaluator) Evaluate(product *domain.Product, profile domain.SafetyProfile) domain.Verdict {
	n := normalizeProduct(product)

	graded := make([]gradedReason, 0, 4)

	// Gluten is the scanner baseline: always evaluated, whatever the
	// profile declares.
	if r := detectGluten(n); r != nil {
		graded = append(graded, *r)
	}

	graded = append(graded, detectAllergens(n, gatingTokens(profile))...)
	graded = append(graded, detectDietViolations(n, profile.Diet)...)

	reasons := make([]domain.Reason, 0, len(graded))
	unsafe := false
	for _, g := range graded {
		reasons = append(reasons, g.reason)
		if g.unsafe {
			unsafe = true
		}
	}

	verdict := domain.Verdict{
		Reasons:     reasons,
		MissingData: n.missingData,
	}

	switch {
	case unsafe:
		verdict.Level = domain.LevelUnsafe
		verdict.Advice = domain.AdviceUnsafe
	case len(reasons) > 0:
		verdict.Level = domain.LevelCaution
		verdict.Advice = domain.AdviceCaution
	default:
		verdict.Level = domain.LevelSafe
		verdict.Advice = domain.AdviceSafe
	}

	return verdict
}

// gatingTokens lowercases the profile entries that can enable allergen
// checks. Declared allergens and medical conditions both count, so
// "lactose intolerance" enables the dairy check just like "dairy" does.
func gatingTokens(profile domain.SafetyProfile) []string {
	tokens := make([]string, 0, len(profile.Allergens)+len(profile.Conditions))
	for _, entry := range profile.Allergens {
		if entry = strings.ToLower(strings.TrimSpace(entry)); entry != "" {
			tokens = append(tokens, entry)
		}
	}
	for _, entry := range profile.Conditions {
		if entry = strings.ToLower(strings.TrimSpace(entry)); entry != "" {
			tokens = append(tokens, entry)
		}
	}
	return tokens
}

// detectAllergens runs every enabled allergen category against the
// combined text, in the fixed category order. Each category emits at most
// one reason with the first matched keyword as evidence.
func detectAllergens(n *normalizedProduct, tokens []string) []gradedReason {
	if len(tokens) == 0 {
		return nil
	}

	var out []gradedReason
	for _, cat := range allergenCategories {
		if !categoryEnabled(cat, tokens) {
			continue
		}
		if hit := containsAny(n.combined, cat.keywords); hit != "" {
			out = append(out, gradedReason{
				reason: domain.Reason{
					Type:     domain.ReasonAllergen,
					Key:      cat.key,
					Label:    "Contains " + strings.ToLower(cat.label),
					Evidence: hit,
				},
				unsafe: true,
			})
		}
	}
	return out
}

// categoryEnabled reports whether any profile entry carries one of the
// category's tokens. Substring matching keeps common synonyms working:
// "peanuts" and "nuts" enable both nut categories, "peanut allergy"
// enables peanuts.
func categoryEnabled(cat allergenCategory, tokens []string) bool {
	for _, entry := range tokens {
		for _, token := range cat.profileTokens {
			if strings.Contains(entry, token) {
				return true
			}
		}
	}
	return false
}

// detectDietViolations checks vegan and halal rules independently; both
// may fire on the same product.
func detectDietViolations(n *normalizedProduct, diet []string) []gradedReason {
	var out []gradedReason

	if dietDeclared(diet, "vegan") {
		if hit := containsAny(n.combined, veganViolationKeywords); hit != "" {
			out = append(out, gradedReason{
				reason: domain.Reason{
					Type:     domain.ReasonDiet,
					Key:      "vegan",
					Label:    "Not vegan",
					Evidence: hit,
				},
			})
		}
	}

	if dietDeclared(diet, "halal") {
		if hit := containsAny(n.combined, halalViolationKeywords); hit != "" {
			out = append(out, gradedReason{
				reason: domain.Reason{
					Type:     domain.ReasonDiet,
					Key:      "halal",
					Label:    "Not halal",
					Evidence: hit,
				},
			})
		}
	}

	return out
}

func dietDeclared(diet []string, name string) bool {
	for _, entry := range diet {
		if strings.Contains(strings.ToLower(entry), name) {
			return true
		}
	}
	return false
}
