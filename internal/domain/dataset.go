package domain

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Dataset names a satellite-style series shown on the dashboard.
type Dataset string

const (
	DatasetOverview   Dataset = "overview"
	DatasetRainfall   Dataset = "rainfall"
	DatasetSoil       Dataset = "soil"
	DatasetVegetation Dataset = "vegetation"
)

var months = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Monsoon months for South Asia, as zero-based month indexes (Jun..Oct).
const (
	monsoonStart = 5
	monsoonEnd   = 9
)

// Point is one monthly value.
type Point struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// Series is a generated monthly dataset for one region.
type Series struct {
	Region  string  `json:"region"`
	Dataset Dataset `json:"dataset"`
	Title   string  `json:"title"`
	Unit    string  `json:"unit"`
	Chart   string  `json:"chart"` // "bar" or "line"
	Points  []Point `json:"points"`
}

// Overview is the summary card shown before any chart is opened.
type Overview struct {
	Region          string   `json:"region"`
	AvgRainfallMM   float64  `json:"avg_rainfall_mm"`
	SoilMoisture    float64  `json:"soil_moisture_m3m3"`
	NDVI            float64  `json:"ndvi"`
	DataSources     []string `json:"data_sources"`
	RegionalOutlook string   `json:"regional_outlook"`
}

// ParseDataset validates a chartable dataset name.
func ParseDataset(s string) (Dataset, error) {
	switch d := Dataset(s); d {
	case DatasetRainfall, DatasetSoil, DatasetVegetation:
		return d, nil
	default:
		return "", fmt.Errorf("unknown dataset %q", s)
	}
}

// GenerateSeries draws a twelve-month series for the region. Values are
// rounded to two decimals. Unknown regions get the generic distribution.
func GenerateSeries(rng *rand.Rand, regionID string, ds Dataset) Series {
	s := Series{Region: regionID, Dataset: ds, Chart: "line", Points: make([]Point, len(months))}
	switch ds {
	case DatasetRainfall:
		s.Title, s.Unit, s.Chart = "Monthly Rainfall (mm)", "mm", "bar"
	case DatasetSoil:
		s.Title, s.Unit = "Soil Moisture (m³/m³)", "m³/m³"
	case DatasetVegetation:
		s.Title, s.Unit = "NDVI (Vegetation Health)", "NDVI"
	}

	for i, m := range months {
		s.Points[i] = Point{Month: m, Value: round2(sample(rng, regionID, ds, i))}
	}
	return s
}

func sample(rng *rand.Rand, regionID string, ds Dataset, month int) float64 {
	u := rng.Float64()
	switch ds {
	case DatasetRainfall:
		switch regionID {
		case RegionSouthAsia:
			if month >= monsoonStart && month <= monsoonEnd {
				return u*300 + 200
			}
			return u * 50
		case RegionAfrica:
			return u*50 + 20
		default:
			return u*100 + 50
		}
	case DatasetSoil:
		return u*0.3 + 0.1
	case DatasetVegetation:
		return u*0.4 + 0.4
	default:
		return 0
	}
}

// RegionOverview returns the overview card for a region.
func RegionOverview(regionID string) Overview {
	return Overview{
		Region:          regionID,
		AvgRainfallMM:   127,
		SoilMoisture:    0.24,
		NDVI:            0.67,
		DataSources:     []string{"SMAP (Soil Moisture)", "GPM/IMERG (Precipitation)", "MODIS (NDVI)"},
		RegionalOutlook: regionalOutlook(regionID),
	}
}

func regionalOutlook(regionID string) string {
	switch regionID {
	case RegionAfrica:
		return "This region shows low rainfall patterns requiring drought-resistant strategies."
	case RegionSouthAsia:
		return "This region shows strong monsoon influence requiring water management."
	default:
		return "This region shows moderate conditions suitable for diverse crops."
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
