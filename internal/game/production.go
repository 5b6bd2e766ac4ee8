package game

// ProductionSpec is the fixed duration and unit cost for producing one
// product with one method.
type ProductionSpec struct {
	DurationWeeks int
	UnitCost      float64
}

type productionKey struct {
	Product string
	Method  ProductionMethod
}

// ProductionTable maps product × method to its production spec. Extracted
// as a named value so the numbers can be tested and tuned independently of
// the reconciliation logic.
type ProductionTable map[productionKey]ProductionSpec

// DefaultProductionTable holds the season's production parameters. Jackets
// take an extra in-house week; outsourcing always turns around in one.
var DefaultProductionTable = ProductionTable{
	{Product: "jacket", Method: MethodInHouse}:    {DurationWeeks: 3, UnitCost: 18.50},
	{Product: "tee", Method: MethodInHouse}:       {DurationWeeks: 2, UnitCost: 4.20},
	{Product: "dress", Method: MethodInHouse}:     {DurationWeeks: 2, UnitCost: 9.80},
	{Product: "jacket", Method: MethodOutsourced}: {DurationWeeks: 1, UnitCost: 24.00},
	{Product: "tee", Method: MethodOutsourced}:    {DurationWeeks: 1, UnitCost: 6.50},
	{Product: "dress", Method: MethodOutsourced}:  {DurationWeeks: 1, UnitCost: 13.50},
}

// Lookup returns the exact spec for a product/method pair.
func (t ProductionTable) Lookup(product string, method ProductionMethod) (ProductionSpec, bool) {
	spec, ok := t[productionKey{Product: product, Method: method}]
	return spec, ok
}

// SpecFor is Lookup with the degrade-to-defaults policy: an unknown pair
// gets the method's standard duration and a zero unit cost.
func (t ProductionTable) SpecFor(product string, method ProductionMethod) ProductionSpec {
	if spec, ok := t.Lookup(product, method); ok {
		return spec
	}
	if method == MethodOutsourced {
		return ProductionSpec{DurationWeeks: 1}
	}
	return ProductionSpec{DurationWeeks: 2}
}
