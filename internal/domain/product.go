package domain

import (
	"encoding/json"
	"strings"
)

// StringList is a tag field that Open Food Facts returns either as a JSON
// array of strings or as a single comma-separated string, depending on the
// product and API version. It normalizes both shapes into a trimmed,
// non-empty slice at decode time so the rest of the engine never branches
// on input shape.
type StringList []string

// UnmarshalJSON accepts both a JSON array and a comma-separated string.
// Unknown shapes decode to an empty list rather than failing the product.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = cleanStringList(arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*l = nil
		return nil
	}

	*l = cleanStringList(strings.Split(s, ","))
	return nil
}

// cleanStringList trims entries and drops empties, deduplicating while
// preserving order.
func cleanStringList(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// Ingredient is one entry of the structured ingredient list that some
// products carry instead of (or alongside) free ingredient text.
type Ingredient struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text,omitempty"`
}

// Product is an Open Food Facts product record. Every field is optional:
// real records routinely miss fields or contradict themselves (for example
// a gluten-free label tag next to a wheat-containing ingredient string),
// and the verdict engine must degrade rather than fail on any of it.
type Product struct {
	Code          string `json:"code,omitempty"`
	ProductName   string `json:"product_name,omitempty"`
	ProductNameEn string `json:"product_name_en,omitempty"`
	Brands        string `json:"brands,omitempty"`

	IngredientsText              string       `json:"ingredients_text,omitempty"`
	IngredientsTextEn            string       `json:"ingredients_text_en,omitempty"`
	IngredientsTextWithAllergens string       `json:"ingredients_text_with_allergens,omitempty"`
	Ingredients                  []Ingredient `json:"ingredients,omitempty"`

	Allergens                string     `json:"allergens,omitempty"`
	AllergensFromIngredients string     `json:"allergens_from_ingredients,omitempty"`
	Traces                   string     `json:"traces,omitempty"`
	TracesFromIngredients    string     `json:"traces_from_ingredients,omitempty"`
	AllergensTags            StringList `json:"allergens_tags,omitempty"`
	TracesTags               StringList `json:"traces_tags,omitempty"`
	LabelsTags               StringList `json:"labels_tags,omitempty"`

	ImageURL        string `json:"image_url,omitempty"`
	NutriScoreGrade string `json:"nutriscore_grade,omitempty"`
}

// DisplayName returns the localized product name, falling back to the
// generic one.
func (p *Product) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.ProductNameEn != "" {
		return p.ProductNameEn
	}
	return p.ProductName
}
