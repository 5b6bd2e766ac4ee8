package game

import "math"

const (
	positionCeiling = 0.95
	positionShape   = 3.0
	positionScale   = 0.21
	bumpScale       = 0.08
	bumpGain        = 40.0
)

// fabricLifts is the fixed demand lift per fabric option. Unknown fabrics
// contribute no lift.
var fabricLifts = map[string]float64{
	"organic-cotton": 0.06,
	"linen":          0.04,
	"denim":          0.02,
	"jersey":         0.00,
	"recycled-poly":  -0.02,
}

func FabricLift(fabric string) float64 {
	return fabricLifts[fabric]
}

// ReferencePrice derives the positioning reference from the benchmark
// competitor price.
func ReferencePrice(benchmarkPrice float64) float64 {
	return benchmarkPrice * ReferenceMarkup
}

// PositionEffect models how far a price sits from the reference price.
// The magnitude follows a saturating curve in the relative delta, plus a
// narrow bump near zero that captures the discount sweet spot just below
// the anchor. Pricing below reference boosts demand, above penalizes it.
// Output is clamped to [0, 2] and is exactly 1 at price == referencePrice.
func PositionEffect(price, referencePrice float64) float64 {
	if price <= 0 || referencePrice <= 0 {
		return 1
	}
	signed := price/referencePrice - 1
	delta := math.Abs(signed)

	base := 1 - math.Exp(-math.Pow(delta/positionScale, positionShape))
	x := delta / bumpScale
	bump := bumpGain * delta * delta * math.Exp(-x*x)
	magnitude := math.Min(1, positionCeiling*base+bump)

	raw := 1 - magnitude
	if signed < 0 {
		raw = 1 + magnitude
	}
	return clamp(raw, 0, 2)
}

type ForecastInput struct {
	ProductID      string  `json:"product_id"`
	Fabric         string  `json:"fabric,omitempty"`
	HasPrint       bool    `json:"has_print"`
	RRP            float64 `json:"rrp"`
	BaseUnits      float64 `json:"base_units"`
	ReferencePrice float64 `json:"reference_price"`
}

// ForecastDemand projects unit demand for one product at its committed
// RRP. The second return is false when the forecast is not yet computable
// (RRP unset or reference data unavailable); that is a valid state before
// the player commits pricing, not an error.
func ForecastDemand(in ForecastInput) (int64, bool) {
	if in.RRP <= 0 || in.ReferencePrice <= 0 || in.BaseUnits <= 0 {
		return 0, false
	}

	priceEffect := math.Pow(in.RRP/in.ReferencePrice, Elasticity)
	positionEffect := PositionEffect(in.RRP, in.ReferencePrice)
	designEffect := 1 + FabricLift(in.Fabric)
	if in.HasPrint {
		designEffect += PrintLift
	}

	units := in.BaseUnits * priceEffect * positionEffect * designEffect
	pct := clamp(units/in.BaseUnits, 0, 2)
	return int64(math.Round(in.BaseUnits * pct)), true
}
