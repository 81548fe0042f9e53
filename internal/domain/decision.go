package domain

// Crop identifies the crop a player plants.
type Crop string

const (
	CropWheat      Crop = "wheat"
	CropRice       Crop = "rice"
	CropCorn       Crop = "corn"
	CropSorghum    Crop = "sorghum"
	CropMillet     Crop = "millet"
	CropVegetables Crop = "vegetables"
)

// Irrigation is the watering tier.
type Irrigation string

const (
	IrrigationNone   Irrigation = "none"
	IrrigationLow    Irrigation = "low"
	IrrigationMedium Irrigation = "medium"
	IrrigationHigh   Irrigation = "high"
)

// Fertilizer is a fertilizer plan tag. Tags are matched by substring, see Compute.
type Fertilizer string

const (
	FertilizerNone          Fertilizer = "none"
	FertilizerOrganicLow    Fertilizer = "organic-low"
	FertilizerOrganicMedium Fertilizer = "organic-medium"
	FertilizerSyntheticLow  Fertilizer = "synthetic-low"
	FertilizerSyntheticHigh Fertilizer = "synthetic-high"
)

// Decision is the farming strategy submitted for one simulation run.
type Decision struct {
	Crop         Crop       `json:"crop"`
	Irrigation   Irrigation `json:"irrigation"`
	Fertilizer   Fertilizer `json:"fertilizer"`
	Conservation bool       `json:"conservation"`
}

// DefaultDecision is the strategy a dashboard starts with.
func DefaultDecision() Decision {
	return Decision{
		Crop:         CropWheat,
		Irrigation:   IrrigationMedium,
		Fertilizer:   FertilizerOrganicLow,
		Conservation: true,
	}
}

// Option is one selectable menu entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CropOptions lists the crop menu in display order.
func CropOptions() []Option {
	return []Option{
		{Value: string(CropWheat), Label: "Wheat"},
		{Value: string(CropRice), Label: "Rice"},
		{Value: string(CropCorn), Label: "Corn"},
		{Value: string(CropSorghum), Label: "Sorghum"},
		{Value: string(CropMillet), Label: "Millet"},
		{Value: string(CropVegetables), Label: "Mixed Vegetables"},
	}
}

// IrrigationOptions lists the irrigation menu in display order.
func IrrigationOptions() []Option {
	return []Option{
		{Value: string(IrrigationNone), Label: "No Irrigation"},
		{Value: string(IrrigationLow), Label: "Low (Rainfed)"},
		{Value: string(IrrigationMedium), Label: "Medium (Drip)"},
		{Value: string(IrrigationHigh), Label: "High (Surface)"},
	}
}

// FertilizerOptions lists the fertilizer menu in display order.
func FertilizerOptions() []Option {
	return []Option{
		{Value: string(FertilizerNone), Label: "None"},
		{Value: string(FertilizerOrganicLow), Label: "Organic (Low)"},
		{Value: string(FertilizerOrganicMedium), Label: "Organic (Medium)"},
		{Value: string(FertilizerSyntheticLow), Label: "Synthetic (Low)"},
		{Value: string(FertilizerSyntheticHigh), Label: "Synthetic (High)"},
	}
}
