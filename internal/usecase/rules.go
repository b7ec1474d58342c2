package usecase

import "regexp"

// Static rule tables for the verdict engine. Loaded once, never mutated;
// ordering inside each table is the precedence order the detectors report
// evidence in.

// glutenGrainKeywords are hard gluten signals scanned against the combined
// text. Oats is intentionally not in this list: uncontaminated oats are
// gluten-free, so it is handled as a soft signal instead.
var glutenGrainKeywords = []string{
	"wheat", "barley", "rye", "malt", "semolina", "spelt",
	"farina", "triticale", "bulgur", "couscous", "breadcrumbs",
}

// glutenTracePhrases are cross-contamination declarations found in free text.
var glutenTracePhrases = []string{
	"may contain wheat", "may contain gluten",
	"traces of gluten", "gluten traces",
}

// oatsKeywords and oatsTags form the oats soft signal.
var (
	oatsKeywords = []string{"oats"}
	oatsTags     = []string{"en:oats"}
)

// Canonical Open Food Facts gluten tags. The source data is not consistent
// about which vocabulary marks traces versus full allergens, so the two
// lists are kept separate.
var (
	glutenAllergenTags = []string{"en:gluten", "en:wheat", "en:barley", "en:rye"}
	glutenTraceTags    = []string{"en:gluten", "en:wheat"}
)

// Gluten-free claims: canonical label tags plus free-text phrasings.
var (
	glutenFreeLabelTags = []string{"en:gluten-free", "en:no-gluten"}
	glutenFreePhrases   = []string{"gluten-free", "gluten free"}
)

// safeFlourPhrases suppress the generic "flour" fallback: these flours are
// naturally gluten-free, so a generic flour hit inside one of these phrases
// is a false positive.
var safeFlourPhrases = []string{
	"rice flour", "brown rice flour", "corn flour", "maize flour",
	"tapioca flour", "potato flour", "almond flour", "coconut flour",
	"buckwheat flour", "sorghum flour", "cassava flour",
	"chickpea flour", "gram flour", "lentil flour",
}

// unsafeFlourPatterns match explicitly gluten-bearing flour phrasings in
// the ingredient text. The name is what gets reported as evidence.
var unsafeFlourPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"wheat flour", regexp.MustCompile(`(?i)\bwheat\s+flour\b`)},
	{"flour (wheat)", regexp.MustCompile(`(?i)\bflour\s*\(\s*wheat\s*\)`)},
	{"barley flour", regexp.MustCompile(`(?i)\bbarley\s+flour\b`)},
	{"rye flour", regexp.MustCompile(`(?i)\brye\s+flour\b`)},
	{"malted flour", regexp.MustCompile(`(?i)\bmalt(?:ed)?\s+flour\b`)},
}

// allergenCategory is one non-gluten allergen rule: which user profile
// tokens enable the check and which keywords trigger it. Keywords mix
// common ingredient names with one canonical tag.
type allergenCategory struct {
	key           string
	label         string
	profileTokens []string
	keywords      []string
}

// allergenCategories are checked in this fixed order, so reasons come out
// in a stable sequence.
var allergenCategories = []allergenCategory{
	{
		key:           "dairy",
		label:         "Dairy",
		profileTokens: []string{"dairy", "milk", "lactose"},
		keywords:      []string{"milk", "cheese", "butter", "cream", "whey", "casein", "lactose", "yogurt", "en:milk"},
	},
	{
		key:           "peanuts",
		label:         "Peanuts",
		profileTokens: []string{"peanut", "nuts"},
		keywords:      []string{"peanut", "groundnut", "en:peanuts"},
	},
	{
		key:           "tree_nuts",
		label:         "Tree nuts",
		profileTokens: []string{"tree_nuts", "tree nuts", "nuts", "peanut"},
		keywords:      []string{"almond", "cashew", "hazelnut", "walnut", "pecan", "pistachio", "macadamia", "brazil nut", "en:nuts"},
	},
	{
		key:           "soy",
		label:         "Soy",
		profileTokens: []string{"soy", "soya"},
		keywords:      []string{"soy", "soya", "soybean", "tofu", "edamame", "en:soybeans"},
	},
	{
		key:           "eggs",
		label:         "Eggs",
		profileTokens: []string{"egg"},
		keywords:      []string{"egg", "albumen", "albumin", "mayonnaise", "en:eggs"},
	},
	{
		key:           "sesame",
		label:         "Sesame",
		profileTokens: []string{"sesame"},
		keywords:      []string{"sesame", "tahini", "en:sesame-seeds"},
	},
	{
		key:           "fish",
		label:         "Fish",
		profileTokens: []string{"fish"},
		keywords:      []string{"fish", "anchovy", "salmon", "tuna", "cod", "sardine", "en:fish"},
	},
	{
		key:           "shellfish",
		label:         "Shellfish",
		profileTokens: []string{"shellfish", "crustacean", "mollusc"},
		keywords:      []string{"shrimp", "prawn", "crab", "lobster", "oyster", "mussel", "clam", "scallop", "en:crustaceans", "en:molluscs"},
	},
}

// Diet rule keywords: presence of any of these violates the diet.
var (
	veganViolationKeywords = []string{"milk", "whey", "casein", "egg", "honey", "gelatin", "cheese", "butter"}
	halalViolationKeywords = []string{"pork", "gelatin", "lard", "wine", "beer", "rum", "brandy"}
)
