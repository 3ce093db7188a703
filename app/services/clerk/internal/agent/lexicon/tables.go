package lexicon

const (
	CategoryFootwear    = "Footwear"
	CategoryClothing    = "Clothing"
	CategoryAccessories = "Accessories"
)

// categorySynonyms maps spelling variants, plurals and common typos onto
// canonical catalog categories.
var categorySynonyms = map[string]string{
	"footwear": CategoryFootwear, "fotwear": CategoryFootwear, "footware": CategoryFootwear,
	"shoe": CategoryFootwear, "shoes": CategoryFootwear, "shoez": CategoryFootwear, "shos": CategoryFootwear,
	"sneaker": CategoryFootwear, "sneakers": CategoryFootwear, "sneakerz": CategoryFootwear, "snekers": CategoryFootwear,
	"trainer": CategoryFootwear, "trainers": CategoryFootwear,
	"boot": CategoryFootwear, "boots": CategoryFootwear, "bootz": CategoryFootwear,
	"loafer": CategoryFootwear, "loafers": CategoryFootwear,
	"heel": CategoryFootwear, "heels": CategoryFootwear,
	"sandal": CategoryFootwear, "sandals": CategoryFootwear,
	"kicks": CategoryFootwear,

	"clothing": CategoryClothing, "clothes": CategoryClothing, "cloths": CategoryClothing, "clothng": CategoryClothing,
	"apparel": CategoryClothing, "outfit": CategoryClothing, "outfits": CategoryClothing,
	"shirt": CategoryClothing, "shirts": CategoryClothing, "tshirt": CategoryClothing, "tee": CategoryClothing, "tees": CategoryClothing,
	"dress": CategoryClothing, "dresses": CategoryClothing,
	"blazer": CategoryClothing, "blazers": CategoryClothing,
	"jacket": CategoryClothing, "jackets": CategoryClothing,
	"chino": CategoryClothing, "chinos": CategoryClothing,
	"pants": CategoryClothing, "trousers": CategoryClothing, "jeans": CategoryClothing,
	"sweater": CategoryClothing, "sweaters": CategoryClothing, "hoodie": CategoryClothing,

	"accessory": CategoryAccessories, "accessories": CategoryAccessories, "accesories": CategoryAccessories,
	"accessorys": CategoryAccessories, "acessories": CategoryAccessories,
	"watch": CategoryAccessories, "watches": CategoryAccessories,
	"belt": CategoryAccessories, "belts": CategoryAccessories,
	"tie": CategoryAccessories, "ties": CategoryAccessories, "necktie": CategoryAccessories,
	"hat": CategoryAccessories, "hats": CategoryAccessories, "cap": CategoryAccessories,
	"bag": CategoryAccessories, "bags": CategoryAccessories, "handbag": CategoryAccessories, "tote": CategoryAccessories,
	"sunglasses": CategoryAccessories, "shades": CategoryAccessories,
	"jewelry": CategoryAccessories, "jewellery": CategoryAccessories, "wallet": CategoryAccessories,
}

// typeSynonyms maps message tokens onto canonical product types.
var typeSynonyms = map[string]string{
	"boot": "boots", "boots": "boots", "bootz": "boots",
	"loafer": "loafers", "loafers": "loafers",
	"sunglasses": "sunglasses", "sunglass": "sunglasses", "shades": "sunglasses",
	"shirt": "shirts", "shirts": "shirts", "tee": "shirts", "tees": "shirts", "tshirt": "shirts",
	"dress": "dress", "dresses": "dress", "gown": "dress",
	"blazer": "blazer", "blazers": "blazer", "jacket": "blazer", "jackets": "blazer",
	"chino": "chinos", "chinos": "chinos", "trousers": "chinos", "pants": "chinos",
	"tie": "tie", "ties": "tie", "necktie": "tie",
	"belt": "belt", "belts": "belt",
	"watch": "watch", "watches": "watch",
	"hat": "hat", "hats": "hat", "cap": "hat", "fedora": "hat",
	"bag": "bag", "bags": "bag", "handbag": "bag", "tote": "bag", "backpack": "bag",
	"shoe": "shoes", "shoes": "shoes", "shoez": "shoes", "sneaker": "shoes", "sneakers": "shoes",
	"trainers": "shoes", "kicks": "shoes",
}

type vibeEntry struct {
	name     string
	keywords []string
	phrases  []string
}

// vibes is ordered; detection reports vibes in this order.
var vibes = []vibeEntry{
	{name: "formal", keywords: []string{"formal", "office", "business", "interview", "suit", "suited", "professional"}},
	{name: "luxury", keywords: []string{"luxury", "luxe", "premium", "designer", "fancy", "expensive", "classy"}, phrases: []string{"high end"}},
	{name: "casual", keywords: []string{"casual", "relaxed", "everyday", "chill", "weekend", "laidback"}, phrases: []string{"laid back"}},
	{name: "minimal", keywords: []string{"minimal", "minimalist", "clean", "simple", "sleek"}},
	{name: "summer", keywords: []string{"summer", "beach", "vacation", "holiday", "sunny", "hot", "tropical"}},
	{name: "smart-casual", keywords: []string{"smartcasual"}, phrases: []string{"smart casual"}},
	{name: "occasion", keywords: []string{"party", "wedding", "event", "gala", "date", "occasion", "celebration"}},
}

// productVerbs signal a request to see products.
var productVerbs = map[string]struct{}{
	"need": {}, "want": {}, "show": {}, "find": {}, "looking": {}, "search": {},
	"recommend": {}, "suggest": {}, "shop": {}, "browse": {}, "see": {},
}

// colors is ordered; the first hit wins.
var colors = []string{
	"black", "white", "navy", "beige", "brown", "tan", "gray", "grey",
	"red", "blue", "green", "yellow", "orange", "pink", "purple", "gold",
}

// CanonicalType maps a single token onto a canonical product type.
func CanonicalType(token string) (string, bool) {
	t, ok := typeSynonyms[token]
	return t, ok
}

// CanonicalVibe maps a single token onto the vibe it signals.
func CanonicalVibe(token string) (string, bool) {
	for _, v := range vibes {
		if v.name == token {
			return v.name, true
		}
		for _, kw := range v.keywords {
			if kw == token {
				return v.name, true
			}
		}
	}
	return "", false
}
