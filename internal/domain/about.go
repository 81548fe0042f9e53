package domain

// DataSource describes one Earth observation mission the datasets imitate.
type DataSource struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Resolution  string `json:"resolution,omitempty"`
}

// Feature is one landing page highlight.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Landing is the entry summary.
type Landing struct {
	Title    string    `json:"title"`
	Tagline  string    `json:"tagline"`
	Features []Feature `json:"features"`
	Regions  int       `json:"regions"`
}

// About explains the data and how to play.
type About struct {
	Mission     string       `json:"mission"`
	DataSources []DataSource `json:"data_sources"`
	Attribution string       `json:"attribution"`
	HowToPlay   []string     `json:"how_to_play"`
	SampleData  bool         `json:"sample_data"`
}

// LandingSummary returns the landing content.
func LandingSummary() Landing {
	return Landing{
		Title:   "AgroVerse: Guardians of the Green Planet",
		Tagline: "Learn sustainable agriculture through satellite data. Make decisions, run simulations, and become a planetary guardian.",
		Features: []Feature{
			{Title: "Satellite Data", Description: "Soil moisture, rainfall and vegetation health series for every region."},
			{Title: "Interactive Learning", Description: "Make farming decisions, run simulations and see their environmental impact."},
			{Title: "Global Perspective", Description: "Explore agricultural challenges from Asian rice paddies to African savannas and even Mars."},
		},
		Regions: len(regions),
	}
}

// AboutPage returns the about content.
func AboutPage() About {
	return About{
		Mission: "AgroVerse uses Earth observation data to teach sustainable agriculture, " +
			"pairing satellite measurements with an interactive farming simulation.",
		DataSources: []DataSource{
			{
				Name:        "SMAP (Soil Moisture Active Passive)",
				Description: "Global soil moisture for understanding agricultural water availability.",
				Resolution:  "9km spatial, 2-3 day temporal",
			},
			{
				Name:        "MODIS (Moderate Resolution Imaging Spectroradiometer)",
				Description: "NDVI for monitoring crop health and vegetation.",
				Resolution:  "250m-1km spatial, daily temporal",
			},
			{
				Name:        "GPM/IMERG (Global Precipitation Measurement)",
				Description: "Rainfall patterns for rain-fed agriculture and irrigation planning.",
				Resolution:  "0.1° spatial, 30-minute temporal",
			},
			{
				Name:        "Landsat",
				Description: "Long-term land use and land cover for tracking agricultural change.",
			},
		},
		Attribution: "NASA Earth Science Division. Datasets including SMAP, MODIS, GPM/IMERG and Landsat.",
		HowToPlay: []string{
			"Select a region from the catalog",
			"Review the satellite data for the region",
			"Choose a crop, irrigation, fertilizer and conservation practices",
			"Run the simulation to see the environmental and economic impact",
			"Read the analysis and try different strategies",
			"Compare results across regions and approaches",
		},
		SampleData: true,
	}
}
