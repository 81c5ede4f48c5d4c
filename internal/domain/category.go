package domain

import "strings"

// Category is an entry of the explore catalog.
type Category struct {
	ID      string `json:"id" yaml:"id"`
	LabelEN string `json:"label_en" yaml:"label_en"`
	LabelAR string `json:"label_ar" yaml:"label_ar"`
}

// Label returns the category label for lang.
func (c Category) Label(lang Language) string {
	if lang == LanguageArabic {
		return c.LabelAR
	}
	return c.LabelEN
}

// Categories is the fixed explore catalog.
var Categories = []Category{
	{ID: "restaurants", LabelEN: "Food & Dining", LabelAR: "مطاعم ومأكولات"},
	{ID: "shopping", LabelEN: "Shopping", LabelAR: "تسوق"},
	{ID: "culture", LabelEN: "Culture & History", LabelAR: "ثقافة وتاريخ"},
	{ID: "nature", LabelEN: "Nature & Sightseeing", LabelAR: "طبيعة ومعالم"},
	{ID: "adventure", LabelEN: "Adventure", LabelAR: "مغامرة"},
	{ID: "nightlife", LabelEN: "Nightlife", LabelAR: "ترفيه ليلي"},
	{ID: "beauty", LabelEN: "Beauty & Spa", LabelAR: "جمال وسبا"},
	{ID: "fitness", LabelEN: "Gym & Fitness", LabelAR: "لياقة وبدنية"},
	{ID: "health", LabelEN: "Hospitals", LabelAR: "مستشفيات"},
	{ID: "heritage", LabelEN: "Heritage Sites", LabelAR: "مواقع تراثية"},
}

// FindCategory looks up a category by id.
func FindCategory(id string) (Category, bool) {
	want := strings.ToLower(strings.TrimSpace(id))
	for _, category := range Categories {
		if category.ID == want {
			return category, true
		}
	}
	return Category{}, false
}
