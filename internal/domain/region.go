package domain

// Difficulty is a region's challenge tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyExpert Difficulty = "Expert"
)

// Region is display metadata for a playable region.
type Region struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Challenge   string     `json:"challenge"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
}

// Region ids with region-specific dataset shapes.
const (
	RegionSouthAsia = "south-asia"
	RegionAfrica    = "africa"
)

var regions = []Region{
	{
		ID:          RegionSouthAsia,
		Name:        "South Asia",
		Challenge:   "Monsoon farming with rice paddies",
		Difficulty:  DifficultyMedium,
		Description: "Master water management in monsoon-dependent agriculture",
	},
	{
		ID:          RegionAfrica,
		Name:        "Sub-Saharan Africa",
		Challenge:   "Drought-resistant farming",
		Difficulty:  DifficultyHard,
		Description: "Overcome water scarcity and build soil resilience",
	},
	{
		ID:          "south-america",
		Name:        "South America",
		Challenge:   "Sustainable rainforest agriculture",
		Difficulty:  DifficultyMedium,
		Description: "Balance productivity with rainforest conservation",
	},
	{
		ID:          "north-america",
		Name:        "North America",
		Challenge:   "Industrial-scale grain production",
		Difficulty:  DifficultyEasy,
		Description: "Optimize large-scale farming with modern technology",
	},
	{
		ID:          "europe",
		Name:        "Europe",
		Challenge:   "Precision agriculture",
		Difficulty:  DifficultyEasy,
		Description: "Implement sustainable practices in temperate climates",
	},
	{
		ID:          "mars",
		Name:        "Mars",
		Challenge:   "Extraterrestrial hydroponics",
		Difficulty:  DifficultyExpert,
		Description: "Pioneer agriculture on the Red Planet",
	},
}

// Regions returns the catalog in display order. The slice is a copy.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// LookupRegion returns the region with the given id.
func LookupRegion(id string) (Region, bool) {
	for _, r := range regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// RegionName returns the display name for id, or "" when the id is unknown.
func RegionName(id string) string {
	r, _ := LookupRegion(id)
	return r.Name
}
