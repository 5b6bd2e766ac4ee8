package main

import (
	"fmt"

	"merch/internal/game"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func renderForecast(product string, rrp, refPrice, baseUnits float64, units int64) {
	accent.Printf("Forecast: %s\n", product)
	neutral.Printf("  RRP %s vs reference %s\n", money(rrp), money(refPrice))
	neutral.Printf("  Baseline %.0f units\n", baseUnits)
	if float64(units) >= baseUnits {
		success.Printf("  Projected demand: %d units\n", units)
	} else {
		warn.Printf("  Projected demand: %d units\n", units)
	}
}

func renderSummary(s *game.WeeklySummary) {
	accent.Printf("Week %d summary\n", s.WeekNumber)

	neutral.Println("Cash")
	neutral.Printf("  Opening %s  Closing %s  (credit %s -> %s)\n",
		money(s.Cash.OpeningCash), money(s.Cash.ClosingCash),
		money(s.Cash.OpeningCredit), money(s.Cash.ClosingCredit))
	success.Printf("  Revenue recognized: %s\n", money(s.Cash.Revenue))
	neutral.Printf("  Outflows: marketing %s, materials SPT %s / GMC %s, production %s, logistics %s, holding %s\n",
		money(s.Cash.Outflows.Marketing), money(s.Cash.Outflows.MaterialsSPT),
		money(s.Cash.Outflows.MaterialsGMC), money(s.Cash.Outflows.Production),
		money(s.Cash.Outflows.Logistics), money(s.Cash.Outflows.Holding))
	if s.Cash.Interest != 0 {
		danger.Printf("  Interest: %s\n", money(s.Cash.Interest))
	}

	if len(s.Materials) > 0 {
		neutral.Println("Raw materials")
		for _, d := range s.Materials {
			line := fmt.Sprintf("  %-16s %+.1f units, %+.2f value (now %.1f)", d.Material, d.DeltaUnits, d.DeltaValue, d.OnHandAfter)
			if d.AvgUnitCostAfter != nil {
				line += fmt.Sprintf(" @ %.4f/unit", *d.AvgUnitCostAfter)
			}
			neutral.Println(line)
		}
	}

	for _, a := range s.Arrivals {
		if a.DefectiveUnits > 0 {
			danger.Printf("  Arrival %s: %.1f good, %.1f defective of %.1f ordered @ %.4f\n",
				a.Material, a.GoodUnits, a.DefectiveUnits, a.OrderedUnits, a.UnitPrice)
		} else {
			success.Printf("  Arrival %s: %.1f units @ %.4f\n", a.Material, a.GoodUnits, a.UnitPrice)
		}
	}

	if len(s.Settlements) > 0 {
		neutral.Println("Settlements")
		for _, st := range s.Settlements {
			neutral.Printf("  %s %s/%s %s\n", st.Kind, st.Supplier, st.Material, money(st.Amount))
		}
	}

	if len(s.ProductionStarted) > 0 {
		neutral.Println("Production started")
		for _, b := range s.ProductionStarted {
			neutral.Printf("  %s %s x%d (%s, due week %d, %.2f/unit)\n", b.ID, b.Product, b.Quantity, b.Method, b.EndWeek, b.UnitCost)
		}
	}
	if len(s.ProductionCompleted) > 0 {
		neutral.Println("Production completed")
		for _, b := range s.ProductionCompleted {
			success.Printf("  %s %s x%d\n", b.ID, b.Product, b.Quantity)
		}
	}
	if len(s.LotsAdded) > 0 {
		neutral.Println("Finished goods added")
		for _, lot := range s.LotsAdded {
			neutral.Printf("  %s %s x%d @ %.2f\n", lot.ID, lot.Product, lot.Quantity, lot.UnitCostBasis)
		}
	}

	neutral.Printf("Marketing: awareness %.2f -> %.2f, intent %.2f -> %.2f, charged %s\n",
		s.Marketing.AwarenessFrom, s.Marketing.AwarenessTo,
		s.Marketing.IntentFrom, s.Marketing.IntentTo, money(s.Marketing.Charged))
}

func renderSeries(points []game.DemandPoint) {
	accent.Println("Season series")
	for _, p := range points {
		neutral.Printf("  week %2d  demand %7d  awareness %.2f  intent %.2f\n", p.Week, p.TotalDemand, p.Awareness, p.Intent)
	}
}
