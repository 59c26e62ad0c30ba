package larder

import (
	"regexp"
	"strings"
)

// CourseLabels is the fixed vocabulary for a recipe's course tag.
var CourseLabels = []string{"Starter", "Main Course", "Side Dish", "Dessert", "Snack"}

// Keyword sets for season guesses. Seasons are checked in this order and
// the first hit wins.
var seasonKeywords = []struct {
	season string
	words  []string
}{
	{"Spring", []string{"asparagus", "peas", "radish", "fava", "rhubarb", "ramp"}},
	{"Summer", []string{"tomato", "corn", "zucchini", "peach", "berry", "melon", "cucumber"}},
	{"Fall", []string{"pumpkin", "squash", "apple", "pear", "cranberry", "fig"}},
	{"Winter", []string{"kale", "citrus", "sweet potato", "brussels sprout", "pomegranate"}},
}

var (
	meatFish = []string{"beef", "pork", "lamb", "veal", "chicken", "turkey", "duck", "fish", "salmon",
		"tuna", "shrimp", "crab", "lobster", "clam", "mussel", "oyster"}
	dairyEgg = []string{"milk", "cheese", "yogurt", "butter", "cream", "egg"}
	gluten   = []string{"flour", "bread", "pasta", "wheat", "barley", "rye", "noodle", "dough", "crust"}
)

var wordPattern = regexp.MustCompile(`\w+`)

// GuessSeason returns a season label from ingredient keywords: Spring,
// Summer, Fall, Winter or Year-Round. Unknown is returned when there are
// no ingredients.
func GuessSeason(ingredients []string) string {
	if len(ingredients) == 0 {
		return "Unknown"
	}
	text := strings.ToLower(strings.Join(ingredients, "\n"))
	tokens := wordSet(text)
	for _, s := range seasonKeywords {
		if containsAny(text, tokens, s.words) {
			return s.season
		}
	}
	return "Year-Round"
}

// GuessDiets returns diet labels implied by the absence of keywords:
// Vegan or Vegetarian, and Gluten-Free Potential.
func GuessDiets(ingredients []string) []string {
	if len(ingredients) == 0 {
		return []string{"Unknown"}
	}
	text := strings.ToLower(strings.Join(ingredients, "\n"))
	tokens := wordSet(text)

	var diets []string
	vegetarian := !containsAny(text, tokens, meatFish)
	switch {
	case vegetarian && !containsAny(text, tokens, dairyEgg) && !strings.Contains(text, "honey"):
		diets = append(diets, "Vegan")
	case vegetarian:
		diets = append(diets, "Vegetarian")
	}
	if !containsAny(text, tokens, gluten) {
		diets = append(diets, "Gluten-Free Potential")
	}
	if len(diets) == 0 {
		return []string{"Unknown"}
	}
	return diets
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(text, -1) {
		set[w] = true
	}
	return set
}

// containsAny matches single words against tokens and multi-word phrases
// against the text.
func containsAny(text string, tokens map[string]bool, words []string) bool {
	for _, w := range words {
		if strings.Contains(w, " ") {
			if strings.Contains(text, w) {
				return true
			}
		} else if tokens[w] {
			return true
		}
	}
	return false
}
