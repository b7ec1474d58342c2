package usecase

import (
	"strings"

	"github.com/safeplate/backend/internal/domain"
)

// normalizedProduct is the lowercase view of a product record that the
// detectors run against. It is built fresh per verdict computation and
// never persisted or shared across calls.
type normalizedProduct struct {
	combined        string
	ingredientsText string
	allergensTags   map[string]bool
	tracesTags      map[string]bool
	labelsTags      map[string]bool
	missingData     bool
}

// normalizeProduct collapses a raw product record into lowercase text blobs
// and tag sets. Absent fields degrade to empty values; it never fails.
func normalizeProduct(p *domain.Product) *normalizedProduct {
	if p == nil {
		p = &domain.Product{}
	}

	// First non-empty text variant wins for ingredientsText: localized over
	// generic over allergen-annotated, with the structured ingredient list
	// joined as a final fallback.
	listText := joinIngredientList(p.Ingredients)
	ingredientsText := firstNonEmpty(
		p.IngredientsTextEn,
		p.IngredientsText,
		p.IngredientsTextWithAllergens,
		listText,
	)

	allergensText := firstNonEmpty(p.Allergens, p.AllergensFromIngredients)
	tracesText := firstNonEmpty(p.Traces, p.TracesFromIngredients)

	// combined carries every available text source, not just the winning
	// ingredient variant, so a signal present in any field is scannable.
	segments := make([]string, 0, 12)
	appendSegment := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	appendSegment(p.IngredientsTextEn)
	appendSegment(p.IngredientsText)
	appendSegment(p.IngredientsTextWithAllergens)
	appendSegment(listText)
	appendSegment(allergensText)
	appendSegment(tracesText)
	appendSegment(strings.Join(p.AllergensTags, " "))
	appendSegment(strings.Join(p.TracesTags, " "))
	appendSegment(strings.Join(p.LabelsTags, " "))
	appendSegment(p.ProductName)
	appendSegment(p.ProductNameEn)

	allergensTags := toTagSet(p.AllergensTags)
	labelsTags := toTagSet(p.LabelsTags)

	// Trace-only or name-only data still counts as missing: there is
	// essentially nothing to judge safety from.
	missing := ingredientsText == "" &&
		allergensText == "" &&
		len(allergensTags) == 0 &&
		len(labelsTags) == 0

	return &normalizedProduct{
		combined:        strings.ToLower(strings.Join(segments, "\n")),
		ingredientsText: strings.ToLower(ingredientsText),
		allergensTags:   allergensTags,
		tracesTags:      toTagSet(p.TracesTags),
		labelsTags:      labelsTags,
		missingData:     missing,
	}
}

// joinIngredientList flattens the structured ingredient entries into a
// comma-separated text blob.
func joinIngredientList(ingredients []domain.Ingredient) string {
	if len(ingredients) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if text := strings.TrimSpace(ing.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, ", ")
}

// toTagSet lowercases a tag list into a set for exact-match lookups.
func toTagSet(tags domain.StringList) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			set[tag] = true
		}
	}
	return set
}

// firstNonEmpty returns the first value with non-whitespace content.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// containsAny scans s for the given substrings and returns the first one
// present, or "" when none match.
func containsAny(s string, subs []string) string {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return sub
		}
	}
	return ""
}

// firstTagMatch returns the first canonical tag present in the set.
func firstTagMatch(set map[string]bool, tags []string) string {
	for _, tag := range tags {
		if set[tag] {
			return tag
		}
	}
	return ""
}
