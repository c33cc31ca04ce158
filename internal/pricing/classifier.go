package pricing

import "strings"

// animalCategoryTokens is the fixed catalog of pet-species category labels the
// storefront uses, English plus Thai synonyms. Matching is case-insensitive
// substring so compound labels like "Dogs - Small Breed" or "แมวเปอร์เซีย" resolve.
var animalCategoryTokens = []string{
	"dog", "cat", "bird", "fish", "rabbit", "hamster", "reptile", "small-pet", "small pet",
	"สุนัข", "หมา", "แมว", "นก", "ปลา", "กระต่าย", "แฮมสเตอร์", "สัตว์เลื้อยคลาน", "สัตว์เล็ก",
}

// IsAnimalCategory reports whether a product category label describes a live
// animal line. Unknown labels classify as merchandise.
func IsAnimalCategory(label string) bool {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return false
	}
	for _, token := range animalCategoryTokens {
		if strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}
