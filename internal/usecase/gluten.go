package usecase

import (
	"strings"

	"github.com/safeplate/backend/internal/domain"
)

// glutenSignals are the label signals feeding the gluten decision list.
// All of them are collected up front so each branch is a pure predicate
// over this struct.
type glutenSignals struct {
	offAllergenTag string // canonical gluten allergen tag, "" if absent
	offTraceTag    string // canonical gluten trace tag, "" if absent
	explicitlyGF   bool   // gluten-free label tag or free-text claim
	grain          string // first gluten grain keyword in combined text
	tracePhrase    string // first cross-contamination phrase in combined text
	oats           string // oats keyword or tag, "" if absent
	unsafeFlour    string // first explicit flour pattern in ingredient text
	genericFlour   bool   // "flour" present without a safe-flour context
}

// collectGlutenSignals evaluates every gluten signal against the
// normalized product.
func collectGlutenSignals(n *normalizedProduct) glutenSignals {
	sig := glutenSignals{
		offAllergenTag: firstTagMatch(n.allergensTags, glutenAllergenTags),
		offTraceTag:    firstTagMatch(n.tracesTags, glutenTraceTags),
		grain:          containsAny(n.combined, glutenGrainKeywords),
		tracePhrase:    containsAny(n.combined, glutenTracePhrases),
	}

	sig.explicitlyGF = firstTagMatch(n.labelsTags, glutenFreeLabelTags) != "" ||
		containsAny(n.combined, glutenFreePhrases) != ""

	if tag := firstTagMatch(n.allergensTags, oatsTags); tag != "" {
		sig.oats = tag
	} else if tag := firstTagMatch(n.tracesTags, oatsTags); tag != "" {
		sig.oats = tag
	} else {
		sig.oats = containsAny(n.combined, oatsKeywords)
	}

	for _, p := range unsafeFlourPatterns {
		if p.pattern.MatchString(n.ingredientsText) {
			sig.unsafeFlour = p.name
			break
		}
	}

	sig.genericFlour = strings.Contains(n.ingredientsText, "flour") &&
		containsAny(n.ingredientsText, safeFlourPhrases) == ""

	return sig
}

// glutenBranch is one step of the gluten decision list: a predicate plus a
// reason builder. Branches are evaluated in order and the first match wins,
// which is what guarantees at most one gluten reason per product.
type glutenBranch struct {
	match func(glutenSignals) bool
	build func(glutenSignals) gradedReason
}

var glutenBranches = []glutenBranch{
	// Canonical allergen tag. A coexisting gluten-free claim is a labeling
	// conflict and stays at caution; a plain tag is a direct hit.
	{
		match: func(s glutenSignals) bool { return s.offAllergenTag != "" },
		build: func(s glutenSignals) gradedReason {
			if s.explicitlyGF {
				return gradedReason{
					reason: glutenReason(
						"Label says gluten-free but allergen tag indicates gluten, verify before eating",
						s.offAllergenTag+" vs gluten-free label",
					),
				}
			}
			return gradedReason{
				reason: glutenReason("Contains gluten", s.offAllergenTag),
				unsafe: true,
			}
		},
	},
	// Explicit gluten-bearing flour in the ingredient text.
	{
		match: func(s glutenSignals) bool { return s.unsafeFlour != "" },
		build: func(s glutenSignals) gradedReason {
			return gradedReason{
				reason: glutenReason("Contains gluten (wheat/barley/rye flour)", s.unsafeFlour),
				unsafe: true,
			}
		},
	},
	// Gluten grain keyword anywhere in the text. Softened when the label
	// claims gluten-free.
	{
		match: func(s glutenSignals) bool { return s.grain != "" },
		build: func(s glutenSignals) gradedReason {
			if s.explicitlyGF {
				return gradedReason{
					reason: glutenReason("Potential gluten risk, verify label", s.grain),
				}
			}
			return gradedReason{
				reason: glutenReason("Contains gluten", s.grain),
				unsafe: true,
			}
		},
	},
	// Soft signals: oats, canonical trace tag, or a trace phrase.
	{
		match: func(s glutenSignals) bool {
			return s.oats != "" || s.offTraceTag != "" || s.tracePhrase != ""
		},
		build: func(s glutenSignals) gradedReason {
			evidence := firstNonEmpty(s.oats, s.offTraceTag, s.tracePhrase)
			if s.explicitlyGF {
				return gradedReason{
					reason: glutenReason("Possible cross-contamination, check for certified gluten-free", evidence),
				}
			}
			return gradedReason{
				reason: glutenReason("Possible gluten risk (oats/traces)", evidence),
			}
		},
	},
	// Generic "flour" with unknown type, unless a safe-flour phrase
	// explains it away.
	{
		match: func(s glutenSignals) bool { return s.genericFlour },
		build: func(s glutenSignals) gradedReason {
			return gradedReason{
				reason: glutenReason("Contains flour (type unclear), verify", "flour"),
			}
		},
	},
}

// detectGluten runs the gluten decision list. It is evaluated for every
// scan regardless of the user's profile and emits at most one reason.
func detectGluten(n *normalizedProduct) *gradedReason {
	sig := collectGlutenSignals(n)
	for _, branch := range glutenBranches {
		if branch.match(sig) {
			r := branch.build(sig)
			return &r
		}
	}
	return nil
}

func glutenReason(label, evidence string) domain.Reason {
	return domain.Reason{
		Type:     domain.ReasonAllergen,
		Key:      "gluten",
		Label:    label,
		Evidence: evidence,
	}
}
