package game

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// WeeklySummary is the derived end-of-week report. Inventory deltas come
// strictly from diffing the two snapshots; ledger rows contribute only
// categorized cash totals and supplier/material attribution. The two
// sources are independent audit trails and are reported side by side, not
// reconciled against each other.
type WeeklySummary struct {
	SessionID           string          `json:"session_id"`
	WeekNumber          int             `json:"week_number"`
	GeneratedAt         time.Time       `json:"generated_at"`
	Cash                CashWaterfall   `json:"cash"`
	Materials           []MaterialDelta `json:"materials,omitempty"`
	Arrivals            []Arrival       `json:"arrivals,omitempty"`
	Settlements         []Settlement    `json:"settlements,omitempty"`
	LotsAdded           []Lot           `json:"lots_added,omitempty"`
	ProductionStarted   []StartedBatch  `json:"production_started,omitempty"`
	ProductionCompleted []Batch         `json:"production_completed,omitempty"`
	Marketing           MarketingEffect `json:"marketing"`
	DemandSeries        []DemandPoint   `json:"demand_series"`
	Ledger              []LedgerEntry   `json:"ledger,omitempty"`
}

type CashWaterfall struct {
	OpeningCash   float64  `json:"opening_cash"`
	ClosingCash   float64  `json:"closing_cash"`
	OpeningCredit float64  `json:"opening_credit"`
	ClosingCredit float64  `json:"closing_credit"`
	Revenue       float64  `json:"revenue"`
	Outflows      Outflows `json:"outflows"`
	Interest      float64  `json:"interest"`
}

type Outflows struct {
	Marketing    float64 `json:"marketing"`
	MaterialsSPT float64 `json:"materials_spt"`
	MaterialsGMC float64 `json:"materials_gmc"`
	Production   float64 `json:"production"`
	Logistics    float64 `json:"logistics"`
	Holding      float64 `json:"holding"`
}

type MaterialDelta struct {
	Material         string   `json:"material"`
	DeltaUnits       float64  `json:"delta_units"`
	DeltaValue       float64  `json:"delta_value"`
	OnHandAfter      float64  `json:"on_hand_after"`
	ValueAfter       float64  `json:"value_after"`
	AvgUnitCostAfter *float64 `json:"avg_unit_cost_after,omitempty"`
}

// Arrival is an inferred receipt: any positive stock delta cross-referenced
// against the procurement contract deliveries scheduled for the week.
// DefectiveUnits is derived, not recorded: ordered units that did not make
// it into stock are assumed rejected or lost in transit.
type Arrival struct {
	Material       string  `json:"material"`
	GoodUnits      float64 `json:"good_units"`
	DefectiveUnits float64 `json:"defective_units"`
	OrderedUnits   float64 `json:"ordered_units"`
	UnitPrice      float64 `json:"unit_price"`
}

type SettlementKind string

const (
	SettlementSPT SettlementKind = "SPT"
	SettlementGMC SettlementKind = "GMC"
)

type Settlement struct {
	Kind     SettlementKind `json:"kind"`
	Supplier string         `json:"supplier"`
	Material string         `json:"material"`
	Amount   float64        `json:"amount"`
}

type StartedBatch struct {
	ID        string           `json:"id"`
	Product   string           `json:"product"`
	Method    ProductionMethod `json:"method"`
	Quantity  int64            `json:"quantity"`
	StartWeek int              `json:"start_week"`
	EndWeek   int              `json:"end_week"`
	UnitCost  float64          `json:"unit_cost"`
}

type MarketingEffect struct {
	AwarenessFrom float64            `json:"awareness_from"`
	AwarenessTo   float64            `json:"awareness_to"`
	IntentFrom    float64            `json:"intent_from"`
	IntentTo      float64            `json:"intent_to"`
	Charged       float64            `json:"charged"`
	PlanApplied   []MarketingChannel `json:"plan_applied,omitempty"`
}

type DemandPoint struct {
	Week        int     `json:"week"`
	Awareness   float64 `json:"awareness"`
	Intent      float64 `json:"intent"`
	TotalDemand int64   `json:"total_demand"`
}

// ReconcilerConfig customizes the reconciliation engine. Zero fields fall
// back to the wall clock and the default production table.
type ReconcilerConfig struct {
	Clock func() time.Time
	Table ProductionTable
}

// Reconciler derives weekly summaries from consecutive snapshots and the
// ledger rows recorded between them. It is a pure single-pass computation;
// identical inputs under a fixed clock yield identical output.
type Reconciler struct {
	now   func() time.Time
	table ProductionTable
}

func NewReconciler() *Reconciler {
	return NewReconcilerWithConfig(ReconcilerConfig{})
}

func NewReconcilerWithConfig(cfg ReconcilerConfig) *Reconciler {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Table == nil {
		cfg.Table = DefaultProductionTable
	}
	return &Reconciler{now: cfg.Clock, table: cfg.Table}
}

// ComputeWeekSummary reconciles the prev→next transition. Ledger rows must
// already be filtered to next's week. allWeeks is optional; without it the
// demand series carries only the prev and next weeks.
func (r *Reconciler) ComputeWeekSummary(sessionID string, prev, next *GameWeekState, rows []LedgerEntry, allWeeks []*GameWeekState) (*WeeklySummary, error) {
	if prev == nil || next == nil {
		return nil, ErrNilState
	}
	if err := ValidateWeekNumber(next.WeekNumber); err != nil {
		return nil, err
	}
	if next.WeekNumber < 1 {
		return nil, fmt.Errorf("%w: %d", ErrWeekOutOfRange, next.WeekNumber)
	}
	if prev.WeekNumber+1 != next.WeekNumber {
		return nil, fmt.Errorf("%w: %d then %d", ErrNonConsecutiveWeeks, prev.WeekNumber, next.WeekNumber)
	}
	if err := ValidateLedger(rows, next.WeekNumber); err != nil {
		return nil, err
	}

	deltas := materialDeltas(prev, next)

	series := allWeeks
	if len(series) == 0 {
		series = []*GameWeekState{prev, next}
	}

	return &WeeklySummary{
		SessionID:           sessionID,
		WeekNumber:          next.WeekNumber,
		GeneratedAt:         r.now(),
		Cash:                cashWaterfall(prev, next, rows),
		Materials:           deltas,
		Arrivals:            arrivals(deltas, next),
		Settlements:         settlements(rows),
		LotsAdded:           lotsAdded(prev, next),
		ProductionStarted:   r.productionStarted(next),
		ProductionCompleted: productionCompleted(prev, next.WeekNumber),
		Marketing:           marketingEffect(prev, next, rows),
		DemandSeries:        DemandSeries(series),
		Ledger:              rows,
	}, nil
}

// cashWaterfall buckets ledger amounts by entry type. Revenue is read from
// prev: a week's revenue is recognized one state transition later.
func cashWaterfall(prev, next *GameWeekState, rows []LedgerEntry) CashWaterfall {
	w := CashWaterfall{
		OpeningCash:   prev.CashOnHand,
		ClosingCash:   next.CashOnHand,
		OpeningCredit: prev.CreditUsed,
		ClosingCredit: next.CreditUsed,
		Revenue:       prev.WeeklyRevenue,
	}
	for _, row := range rows {
		switch row.EntryType {
		case EntryMarketing:
			w.Outflows.Marketing += row.Amount
		case EntryMaterialsSPT:
			w.Outflows.MaterialsSPT += row.Amount
		case EntryMaterialsGMC:
			w.Outflows.MaterialsGMC += row.Amount
		case EntryProduction:
			w.Outflows.Production += row.Amount
		case EntryLogistics:
			w.Outflows.Logistics += row.Amount
		case EntryHolding:
			w.Outflows.Holding += row.Amount
		case EntryInterest:
			w.Interest += row.Amount
		}
	}
	return w
}

// materialDeltas diffs raw-material stock across the union of both
// snapshots' materials, emitting only materials where something changed.
// Results are sorted by material for stable output.
func materialDeltas(prev, next *GameWeekState) []MaterialDelta {
	names := make(map[string]struct{}, len(prev.RawMaterials)+len(next.RawMaterials))
	for m := range prev.RawMaterials {
		names[m] = struct{}{}
	}
	for m := range next.RawMaterials {
		names[m] = struct{}{}
	}

	deltas := make([]MaterialDelta, 0, len(names))
	for m := range names {
		before := prev.RawMaterials[m]
		after := next.RawMaterials[m]
		d := MaterialDelta{
			Material:    m,
			DeltaUnits:  after.OnHand - before.OnHand,
			DeltaValue:  after.OnHandValue - before.OnHandValue,
			OnHandAfter: after.OnHand,
			ValueAfter:  after.OnHandValue,
		}
		if d.DeltaUnits == 0 && d.DeltaValue == 0 {
			continue
		}
		if after.OnHand > 0 {
			avg := after.OnHandValue / after.OnHand
			d.AvgUnitCostAfter = &avg
		}
		deltas = append(deltas, d)
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].Material < deltas[j].Material })
	return deltas
}

// arrivals treats every positive stock delta as a receipt and checks it
// against the contract deliveries scheduled for the week. Ordering more
// than arrived implies defective or lost units.
func arrivals(deltas []MaterialDelta, next *GameWeekState) []Arrival {
	var out []Arrival
	for _, d := range deltas {
		if d.DeltaUnits <= 0 {
			continue
		}
		a := Arrival{
			Material:     d.Material,
			GoodUnits:    d.DeltaUnits,
			OrderedUnits: orderedUnits(next, d.Material),
		}
		if d.DeltaUnits != 0 {
			a.UnitPrice = math.Abs(d.DeltaValue) / math.Abs(d.DeltaUnits)
		}
		if a.OrderedUnits > d.DeltaUnits {
			a.DefectiveUnits = a.OrderedUnits - d.DeltaUnits
		}
		out = append(out, a)
	}
	return out
}

func orderedUnits(next *GameWeekState, material string) float64 {
	var total float64
	for _, c := range next.ProcurementContracts.Contracts {
		if c.Material != material {
			continue
		}
		for _, del := range c.Deliveries {
			if del.Week == next.WeekNumber {
				total += del.Units
			}
		}
	}
	return total
}

func settlements(rows []LedgerEntry) []Settlement {
	var out []Settlement
	for _, row := range rows {
		var kind SettlementKind
		switch row.EntryType {
		case EntryMaterialsSPT:
			kind = SettlementSPT
		case EntryMaterialsGMC:
			kind = SettlementGMC
		default:
			continue
		}
		supplier, material := splitRefID(row.RefID)
		out = append(out, Settlement{
			Kind:     kind,
			Supplier: supplier,
			Material: material,
			Amount:   row.Amount,
		})
	}
	return out
}

// lotsAdded returns lots whose ids appear in next but not prev.
func lotsAdded(prev, next *GameWeekState) []Lot {
	seen := make(map[string]struct{}, len(prev.FinishedGoods.Lots))
	for _, lot := range prev.FinishedGoods.Lots {
		seen[lot.ID] = struct{}{}
	}
	var out []Lot
	for _, lot := range next.FinishedGoods.Lots {
		if _, ok := seen[lot.ID]; !ok {
			out = append(out, lot)
		}
	}
	return out
}

// productionStarted prefers the per-week tracking records when present,
// deriving end week and unit cost from the production table. The batches
// list is strictly a fallback; the two sources are never merged.
func (r *Reconciler) productionStarted(next *GameWeekState) []StartedBatch {
	week := next.WeekNumber
	if starts := next.WIPByWeek[week]; len(starts) > 0 {
		out := make([]StartedBatch, 0, len(starts))
		for _, s := range starts {
			spec := r.table.SpecFor(s.Product, s.Method)
			out = append(out, StartedBatch{
				ID:        s.ID,
				Product:   s.Product,
				Method:    s.Method,
				Quantity:  s.Quantity,
				StartWeek: week,
				EndWeek:   week + spec.DurationWeeks,
				UnitCost:  spec.UnitCost,
			})
		}
		return out
	}

	var out []StartedBatch
	for _, b := range next.WorkInProcess.Batches {
		if b.StartWeek != week {
			continue
		}
		out = append(out, StartedBatch{
			ID:        b.ID,
			Product:   b.Product,
			Method:    b.Method,
			Quantity:  b.Quantity,
			StartWeek: b.StartWeek,
			EndWeek:   b.EndWeek,
			UnitCost:  b.ProductionUnitCost,
		})
	}
	return out
}

func productionCompleted(prev *GameWeekState, week int) []Batch {
	var out []Batch
	for _, b := range prev.WorkInProcess.Batches {
		if b.EndWeek == week {
			out = append(out, b)
		}
	}
	return out
}

// marketingEffect pairs the awareness/intent movement with the marketing
// charge and the plan that produced it. next's plan is the one applied
// this week, not the plan for the coming week.
func marketingEffect(prev, next *GameWeekState, rows []LedgerEntry) MarketingEffect {
	e := MarketingEffect{
		AwarenessFrom: prev.Awareness,
		AwarenessTo:   next.Awareness,
		IntentFrom:    prev.Intent,
		IntentTo:      next.Intent,
		PlanApplied:   next.MarketingPlan.Channels,
	}
	for _, row := range rows {
		if row.EntryType == EntryMarketing {
			e.Charged += row.Amount
		}
	}
	return e
}

// DemandSeries builds the season-long awareness/intent/demand series from
// whatever states are supplied. Weeks without a state stay zero; partial
// history is a documented fallback, not an error.
func DemandSeries(states []*GameWeekState) []DemandPoint {
	byWeek := make(map[int]*GameWeekState, len(states))
	for _, s := range states {
		if s == nil {
			continue
		}
		byWeek[s.WeekNumber] = s
	}

	points := make([]DemandPoint, 0, SeasonWeeks)
	for w := 1; w <= SeasonWeeks; w++ {
		p := DemandPoint{Week: w}
		if s, ok := byWeek[w]; ok {
			p.Awareness = s.Awareness
			p.Intent = s.Intent
			for _, units := range s.WeeklyDemand {
				p.TotalDemand += units
			}
		}
		points = append(points, p)
	}
	return points
}
