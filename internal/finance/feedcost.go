package finance

import "github.com/shopspring/decimal"

// FeedUsageLine is one recorded feeding of a given feed type.
type FeedUsageLine struct {
	FeedType   string
	QuantityKg decimal.Decimal
}

// FeedStockLine is one stock receipt carrying a unit cost for a feed type.
type FeedStockLine struct {
	FeedType  string
	CostPerKg decimal.Decimal
}

type FeedTypeCost struct {
	FeedType     string
	AvgCostPerKg decimal.Decimal
}

type FeedCostAnalysis struct {
	TotalFeedUsedKg   decimal.Decimal
	EstimatedFeedCost decimal.Decimal
	FeedCostPerType   []FeedTypeCost
}

// ComputeFeedCostAnalysis estimates feed spend from usage and stock records.
// The cost per kg of a feed type is the mean of all stock-record unit costs
// for that type; total cost is usage quantity times that mean, summed per
// type. Output order follows the first appearance of each type in usage.
func ComputeFeedCostAnalysis(usage []FeedUsageLine, stocks []FeedStockLine) FeedCostAnalysis {
	costSumByType := map[string]decimal.Decimal{}
	costCountByType := map[string]int64{}
	for _, s := range stocks {
		costSumByType[s.FeedType] = costSumByType[s.FeedType].Add(s.CostPerKg)
		costCountByType[s.FeedType]++
	}

	qtyByType := map[string]decimal.Decimal{}
	typeOrder := make([]string, 0, len(usage))
	for _, u := range usage {
		if _, seen := qtyByType[u.FeedType]; !seen {
			typeOrder = append(typeOrder, u.FeedType)
		}
		qtyByType[u.FeedType] = qtyByType[u.FeedType].Add(u.QuantityKg)
	}

	totalUsed := decimal.Zero
	totalCost := decimal.Zero
	perType := make([]FeedTypeCost, 0, len(typeOrder))
	for _, t := range typeOrder {
		qty := qtyByType[t]
		totalUsed = totalUsed.Add(qty)

		avgCost := decimal.Zero
		if n := costCountByType[t]; n > 0 {
			avgCost = Round2(costSumByType[t].Div(decimal.NewFromInt(n)))
		}
		perType = append(perType, FeedTypeCost{FeedType: t, AvgCostPerKg: avgCost})
		totalCost = totalCost.Add(qty.Mul(avgCost))
	}

	return FeedCostAnalysis{
		TotalFeedUsedKg:   Round2(totalUsed),
		EstimatedFeedCost: Round2(totalCost),
		FeedCostPerType:   perType,
	}
}
