package game

// GameWeekState is the immutable snapshot the simulation backend produces
// for each committed week. Optional collections may be nil; the engine
// treats missing data as zero.
type GameWeekState struct {
	WeekNumber           int                      `json:"week_number"`
	CashOnHand           float64                  `json:"cash_on_hand"`
	CreditUsed           float64                  `json:"credit_used"`
	WeeklyRevenue        float64                  `json:"weekly_revenue"`
	Awareness            float64                  `json:"awareness"`
	Intent               float64                  `json:"intent"`
	RawMaterials         map[string]MaterialStock `json:"raw_materials,omitempty"`
	FinishedGoods        FinishedGoods            `json:"finished_goods"`
	WorkInProcess        WorkInProcess            `json:"work_in_process"`
	WIPByWeek            map[int][]BatchStart     `json:"wip_by_week,omitempty"`
	ProcurementContracts ProcurementBook          `json:"procurement_contracts"`
	MarketingPlan        MarketingPlan            `json:"marketing_plan"`
	ProductData          map[string]ProductInfo   `json:"product_data,omitempty"`
	WeeklyDemand         map[string]int64         `json:"weekly_demand,omitempty"`
}

type MaterialStock struct {
	OnHand      float64 `json:"on_hand"`
	OnHandValue float64 `json:"on_hand_value"`
}

type FinishedGoods struct {
	Lots []Lot `json:"lots,omitempty"`
}

// Lot is a discrete quantity of finished goods sharing one cost basis.
// Lot ids are unique and stable across weeks.
type Lot struct {
	ID            string  `json:"id"`
	Product       string  `json:"product"`
	Quantity      int64   `json:"quantity"`
	UnitCostBasis float64 `json:"unit_cost_basis"`
}

type ProductionMethod string

const (
	MethodInHouse    ProductionMethod = "in-house"
	MethodOutsourced ProductionMethod = "outsourced"
)

type WorkInProcess struct {
	Batches []Batch `json:"batches,omitempty"`
}

type Batch struct {
	ID                 string           `json:"id"`
	Product            string           `json:"product"`
	Method             ProductionMethod `json:"method"`
	Quantity           int64            `json:"quantity"`
	StartWeek          int              `json:"start_week"`
	EndWeek            int              `json:"end_week"`
	ProductionUnitCost float64          `json:"production_unit_cost"`
}

// BatchStart is the newer per-week batch tracking record. When a snapshot
// carries wip_by_week entries for a week they supersede the batches list
// for that week's "started" derivation.
type BatchStart struct {
	ID       string           `json:"id"`
	Product  string           `json:"product"`
	Method   ProductionMethod `json:"method"`
	Quantity int64            `json:"quantity"`
}

type ProcurementBook struct {
	Contracts []Contract `json:"contracts,omitempty"`
}

type Contract struct {
	Material   string     `json:"material"`
	Deliveries []Delivery `json:"deliveries,omitempty"`
}

type Delivery struct {
	Week  int     `json:"week"`
	Units float64 `json:"units"`
}

type MarketingPlan struct {
	Channels []MarketingChannel `json:"channels,omitempty"`
}

type MarketingChannel struct {
	Name  string  `json:"name"`
	Spend float64 `json:"spend"`
}

type ProductInfo struct {
	RRP                   float64 `json:"rrp"`
	Fabric                string  `json:"fabric"`
	HasPrint              bool    `json:"has_print"`
	ConfirmedMaterialCost float64 `json:"confirmed_material_cost"`
}
