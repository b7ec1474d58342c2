package domain

// Level classifies how safe a scanned product is for the user.
type Level string

const (
	LevelSafe    Level = "safe"
	LevelCaution Level = "caution"
	LevelUnsafe  Level = "unsafe"
)

// ReasonType distinguishes allergen findings from diet-rule findings.
type ReasonType string

const (
	ReasonAllergen ReasonType = "allergen"
	ReasonDiet     ReasonType = "diet"
)

// Reason is a single detected concern: which category fired, a
// human-readable label, and the keyword or tag that triggered it.
type Reason struct {
	Type     ReasonType `json:"type"`
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Evidence string     `json:"evidence,omitempty"`
}

// Verdict is the engine's classification of one product for one user.
// MissingData signals that the record had essentially nothing to judge
// safety from; the UI is expected to show a verify-manually disclaimer.
type Verdict struct {
	Level       Level    `json:"level"`
	Reasons     []Reason `json:"reasons"`
	MissingData bool     `json:"missingData,omitempty"`
	Advice      string   `json:"advice"`
}

// Advice strings keyed by verdict level.
const (
	AdviceSafe    = "No flagged ingredients found. Still check the label yourself if you have severe allergies."
	AdviceCaution = "Proceed with caution. Double-check the label and look for certified statements."
	AdviceUnsafe  = "Not recommended. Avoid this product unless you can confirm it is safe."
)

// SafetyProfile is the user's declared sensitivities. Tokens are free
// text and matched case-insensitively; the profile only gates which
// detectors run. Gluten detection always runs regardless of profile.
type SafetyProfile struct {
	Allergens  []string `json:"allergens"`
	Diet       []string `json:"diet"`
	Conditions []string `json:"conditions"`
}

// ScanRequest is the barcode-scan request body.
type ScanRequest struct {
	Barcode    string   `json:"barcode" binding:"required"`
	Allergens  []string `json:"allergens"`
	Diet       []string `json:"diet"`
	Conditions []string `json:"conditions"`
}

// ScanResult pairs the looked-up product with its verdict.
type ScanResult struct {
	Barcode string   `json:"barcode"`
	Product *Product `json:"product"`
	Verdict Verdict  `json:"verdict"`
	Source  string   `json:"source"` // "OpenFoodFacts" or "Cache"
}
