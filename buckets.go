package holdings

import "slices"

// DefaultTopBuckets is the number of holdings shown on their own in a
// concentration breakdown.
const DefaultTopBuckets = 4

// OtherLabel labels the bucket that groups the smaller holdings.
const OtherLabel = "Other"

// Bucket is one slice of a concentration breakdown.
type Bucket struct {
	Label string
	Value Money   // Value is the market value in the bucket.
	Share Percent // Share is Value relative to the sum of all buckets.
}

// Concentration breaks the market value of the open holdings down into at
// most top+1 buckets: the top largest holdings, largest first, then a single
// OtherLabel bucket for the rest. With top holdings or fewer, every holding
// gets its own bucket in the input order.
//
// Holdings valued in another currency than the first open one are left out.
//
// A top below 1 means DefaultTopBuckets. If the total market value is zero,
// there is nothing to break down and Concentration returns nil.
func Concentration(vals []Valuation, top int) []Bucket {
	if top < 1 {
		top = DefaultTopBuckets
	}

	var open []Valuation
	var total Money
	var ref string
	for _, v := range vals {
		if !v.IsOpen() {
			continue
		}
		c := v.currency()
		if ref == "" {
			ref = c
		}
		if !sameCurrency(c, ref) {
			continue
		}
		v.MarketValue = v.MarketValue.as(ref)
		open = append(open, v)
		total = total.Add(v.MarketValue)
	}
	if total.IsZero() {
		return nil
	}

	var buckets []Bucket
	if len(open) <= top {
		for _, v := range open {
			buckets = append(buckets, Bucket{Label: v.Label(), Value: v.MarketValue})
		}
	} else {
		slices.SortStableFunc(open, func(a, b Valuation) int {
			return b.MarketValue.Decimal().Cmp(a.MarketValue.Decimal())
		})
		var other Money
		for i, v := range open {
			if i < top {
				buckets = append(buckets, Bucket{Label: v.Label(), Value: v.MarketValue})
				continue
			}
			other = other.Add(v.MarketValue)
		}
		buckets = append(buckets, Bucket{Label: OtherLabel, Value: other})
	}

	for i := range buckets {
		buckets[i].Share = ratio(buckets[i].Value, total)
	}
	return buckets
}
