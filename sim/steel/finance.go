package steel

import "math"

// FinancialCalculator provides standard investment metrics used by
// per-scenario planning (technology switch evaluation). It is not part of
// the per-tick path.
type FinancialCalculator struct {
	DefaultDiscountRate float64
}

// NPV computes the net present value of a cash flow series. cashFlows[0]
// is the flow at t=0 (typically a negative investment).
func (f FinancialCalculator) NPV(cashFlows []float64, discountRate float64) float64 {
	if discountRate == 0 {
		discountRate = f.DefaultDiscountRate
	}
	var npv float64
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+discountRate, float64(t))
	}
	return npv
}

// IRR computes the internal rate of return by bisection on NPV. Returns
// false if no sign change exists in (-0.99, 10) or the series is too short.
func (f FinancialCalculator) IRR(cashFlows []float64) (float64, bool) {
	if len(cashFlows) < 2 {
		return 0, false
	}
	npvAt := func(rate float64) float64 {
		var npv float64
		for t, cf := range cashFlows {
			npv += cf / math.Pow(1+rate, float64(t))
		}
		return npv
	}
	lo, hi := -0.99, 10.0
	nLo, nHi := npvAt(lo), npvAt(hi)
	if nLo*nHi > 0 {
		return 0, false
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		nMid := npvAt(mid)
		if math.Abs(nMid) < 1e-9 {
			return mid, true
		}
		if nLo*nMid < 0 {
			hi = mid
		} else {
			lo, nLo = mid, nMid
		}
	}
	return (lo + hi) / 2, true
}

// ROI returns net profit over total investment. False when investment is 0.
func (f FinancialCalculator) ROI(netProfit, totalInvestment float64) (float64, bool) {
	if totalInvestment == 0 {
		return 0, false
	}
	return netProfit / totalInvestment, true
}

// PaybackPeriod returns the number of years (fractional, linear within the
// breakeven year) until cumulative annual cash flows recover the initial
// investment. False if the investment is never recovered.
func (f FinancialCalculator) PaybackPeriod(initialInvestment float64, annualCashFlows []float64) (float64, bool) {
	if initialInvestment <= 0 {
		return 0, true
	}
	remaining := initialInvestment
	for year, cf := range annualCashFlows {
		if cf >= remaining {
			if cf == 0 {
				continue
			}
			return float64(year) + remaining/cf, true
		}
		remaining -= cf
	}
	return 0, false
}
