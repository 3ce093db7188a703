package lexicon

import (
	"regexp"
	"strings"

	"ClerkAI/app/services/clerk/clerk"
)

type pattern struct {
	name string
	exp  *regexp.Regexp
}

var typePatterns = []pattern{
	{"boots", regexp.MustCompile(`\bboots?\b`)},
	{"loafers", regexp.MustCompile(`\bloafers?\b`)},
	{"sunglasses", regexp.MustCompile(`\bsunglass(es)?\b|\bshades\b`)},
	{"shirts", regexp.MustCompile(`\b(shirts?|tees?|t-shirts?|tshirts?|polo)\b`)},
	{"dress", regexp.MustCompile(`\b(dress|dresses|gown)\b`)},
	{"blazer", regexp.MustCompile(`\b(blazers?|jackets?)\b`)},
	{"chinos", regexp.MustCompile(`\b(chinos?|trousers|pants)\b`)},
	{"tie", regexp.MustCompile(`\b(ties?|necktie|bow tie)\b`)},
	{"belt", regexp.MustCompile(`\bbelts?\b`)},
	{"watch", regexp.MustCompile(`\bwatch(es)?\b|\bchronograph\b`)},
	{"hat", regexp.MustCompile(`\b(hats?|fedora|caps?|beanie)\b`)},
	{"bag", regexp.MustCompile(`\b(bags?|tote|handbag|backpack|satchel)\b`)},
	{"shoes", regexp.MustCompile(`\b(shoes?|sneakers?|trainers?)\b`)},
}

var vibePatterns = []pattern{
	{"formal", regexp.MustCompile(`\b(formal|office|business|oxford|tailored|suit|dress shoes?|boardroom)\b`)},
	{"luxury", regexp.MustCompile(`\b(luxury|luxurious|premium|leather|silk|cashmere|designer|gold|italian)\b`)},
	{"casual", regexp.MustCompile(`\b(casual|everyday|relaxed|canvas|denim|cotton|comfy|comfortable)\b`)},
	{"minimal", regexp.MustCompile(`\b(minimal|minimalist|clean|simple|sleek|understated)\b`)},
	{"summer", regexp.MustCompile(`\b(summer|linen|beach|sun|breathable|lightweight|straw)\b`)},
	{"smart-casual", regexp.MustCompile(`\b(smart[- ]casual|versatile|chinos?|loafers?|polo)\b`)},
	{"occasion", regexp.MustCompile(`\b(party|wedding|evening|gala|event|occasion|cocktail)\b`)},
}

var defaultTypes = map[string]string{
	strings.ToLower(CategoryFootwear):    "shoes",
	strings.ToLower(CategoryClothing):    "apparel",
	strings.ToLower(CategoryAccessories): "accessory",
}

var defaultVibes = map[string]string{
	strings.ToLower(CategoryFootwear):    "casual",
	strings.ToLower(CategoryClothing):    "smart-casual",
	strings.ToLower(CategoryAccessories): "minimal",
}

// InferProductTypes derives canonical product types from name and
// description, falling back to one generic type for the category.
func InferProductTypes(p clerk.Product) []string {
	if out := matchPatterns(typePatterns, p); len(out) > 0 {
		return out
	}
	category := strings.ToLower(p.Category)
	if t, ok := defaultTypes[category]; ok {
		return []string{t}
	}
	if category == "" {
		return nil
	}
	return []string{category}
}

// InferVibes derives style vibes from name and description, falling back to
// one default vibe for the category.
func InferVibes(p clerk.Product) []string {
	if out := matchPatterns(vibePatterns, p); len(out) > 0 {
		return out
	}
	if v, ok := defaultVibes[strings.ToLower(p.Category)]; ok {
		return []string{v}
	}
	return []string{"casual"}
}

func matchPatterns(patterns []pattern, p clerk.Product) []string {
	text := strings.ToLower(p.Name + " " + p.Description)
	var out []string
	for _, pt := range patterns {
		if pt.exp.MatchString(text) {
			out = append(out, pt.name)
		}
	}
	return out
}
