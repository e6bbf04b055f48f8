package calculation

import (
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalZero   = decimal.Zero
	decimalTwelve = decimal.NewFromInt(12)
)

// compound returns (1+rate)^years.
func compound(rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return decimalOne
	}
	return decimalOne.Add(rate).Pow(decimal.NewFromInt(int64(years)))
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// simulate steps through years 0..horizon. Year 0 is the current calendar year and
// applies no growth or contribution. Inflation and property growth compound on the
// absolute step index.
func (e *Engine) simulate(snapshot domain.FinancialSnapshot, events []domain.LifeEvent, a domain.AssumptionSet, age *int, startYear, horizon int) ([]domain.ProjectionYear, *SimulationState) {
	st := newSimulationState(snapshot)

	retirementAge := snapshot.EffectiveRetirementAge()
	annualContribution := snapshot.MonthlyContribution.Mul(decimalTwelve)
	contributing := snapshot.Contributing()
	baseStatePension := snapshot.BaseStatePension(a.FullStatePension)
	principalReduction := AnnualPrincipalReduction(snapshot.TotalDebt)

	projection := make([]domain.ProjectionYear, 0, horizon+1)

	for i := 0; i <= horizon; i++ {
		year := startYear + i
		var ageNow *int
		if age != nil {
			v := *age + i
			ageNow = &v
		}

		// Phase
		retired := ageNow != nil && *ageNow >= retirementAge
		justRetired := retired && st.enterRetirement()
		statePensionEligible := ageNow != nil && *ageNow >= a.StatePensionAge
		growthRate := a.AccumulationGrowthRate
		if retired {
			growthRate = a.DrawdownGrowthRate
		}
		if justRetired {
			e.Logger.Debugf("%d: entering retirement at age %d", year, *ageNow)
		}

		potStart := st.Pot

		growth := decimalZero
		if i > 0 && !st.Depleted {
			growth = st.grow(growthRate)
		}

		contribution := decimalZero
		if i > 0 && !retired && contributing {
			contribution = annualContribution
			st.contribute(contribution)
		}

		lumpSum := decimalZero
		if justRetired {
			lumpSum = st.takeLumpSum(a.LumpSumRate)
			if lumpSum.IsPositive() {
				e.Logger.Debugf("%d: tax-free lump sum %s", year, lumpSum.StringFixed(2))
			}
		}

		inflation := compound(a.InflationRate, i)

		statePension := decimalZero
		if statePensionEligible {
			statePension = baseStatePension.Mul(inflation)
		}

		incomeTarget := decimalZero
		if retired {
			incomeTarget = snapshot.DesiredIncome.Mul(inflation)
		}

		drawdown, shortfall := decimalZero, decimalZero
		if retired {
			wasDepleted := st.Depleted
			need := decimal.Max(decimalZero, incomeTarget.Sub(statePension))
			drawdown, shortfall = st.drawdown(need, ageNow, year)
			if st.Depleted && !wasDepleted {
				e.Logger.Warnf("%d: pension pot depleted, unmet income %s", year, shortfall.StringFixed(2))
			}
		}

		eventCost, eventNames := sumLifeEvents(events, ageNow, year)
		st.applyEventCost(eventCost)

		st.amortize(principalReduction)

		grossIncome := statePension.Add(drawdown).Add(lumpSum)
		taxableIncome := statePension.Add(drawdown)
		tax := e.TaxCalc.Calculate(taxableIncome)
		netIncome := grossIncome.Sub(tax)

		propertyValue := snapshot.PropertyValue.Mul(compound(a.PropertyGrowthRate, i))
		propertyEquity := decimalZero
		if snapshot.PropertyValue.IsPositive() {
			propertyEquity = propertyValue.Sub(st.Mortgage)
		}
		netWorth := st.Pot.Add(propertyEquity).Add(st.TaxFreeCash)

		phase := domain.PhaseAccumulation
		if retired {
			phase = domain.PhaseRetirement
		}

		if taxableIncome.IsPositive() {
			e.Logger.Debugf("%d: taxable %s, tax %s (effective %s%%)", year,
				taxableIncome.StringFixed(2), tax.StringFixed(2),
				e.TaxCalc.EffectiveRate(taxableIncome).Mul(decimal.NewFromInt(100)).StringFixed(1))
		}

		projection = append(projection, domain.ProjectionYear{
			Year:               year,
			Age:                ageNow,
			Phase:              phase,
			PotStart:           roundMoney(potStart),
			PotEnd:             roundMoney(st.Pot),
			Contribution:       roundMoney(contribution),
			Growth:             roundMoney(growth),
			Drawdown:           roundMoney(drawdown),
			LumpSum:            roundMoney(lumpSum),
			StatePension:       roundMoney(statePension),
			GrossIncome:        roundMoney(grossIncome),
			TaxableIncome:      roundMoney(taxableIncome),
			Tax:                roundMoney(tax),
			NetIncome:          roundMoney(netIncome),
			IncomeTarget:       roundMoney(incomeTarget),
			IncomeShortfall:    roundMoney(shortfall),
			LifeEventCost:      roundMoney(eventCost),
			LifeEvents:         eventNames,
			PropertyValue:      roundMoney(propertyValue),
			MortgageBalance:    roundMoney(st.Mortgage),
			PropertyEquity:     roundMoney(propertyEquity),
			NetWorth:           roundMoney(netWorth),
			CumulativeDrawdown: roundMoney(st.CumulativeDrawdown),
			CumulativeTaxFree:  roundMoney(st.TaxFreeCash),
			FundsDepleted:      st.Depleted,
		})
	}

	return projection, st
}

// summarize derives headline figures from a finished projection.
func summarize(years []domain.ProjectionYear, st *SimulationState) domain.ProjectionSummary {
	summary := domain.ProjectionSummary{
		Years:         len(years),
		DepletionYear: st.DepletionYear,
		DepletionAge:  st.DepletionAge,
		PotLongevity:  len(years),
	}

	for i, y := range years {
		if y.IsRetired() && summary.FirstRetirementYear == nil {
			first := y.Year
			summary.FirstRetirementYear = &first
			summary.PotAtRetirement = y.PotStart.Add(y.Growth).Add(y.Contribution)
		}
		if y.FundsDepleted && summary.PotLongevity == len(years) {
			summary.PotLongevity = i
		}
		summary.TotalLumpSum = summary.TotalLumpSum.Add(y.LumpSum)
		summary.TotalDrawdown = summary.TotalDrawdown.Add(y.Drawdown)
		summary.TotalTax = summary.TotalTax.Add(y.Tax)
		summary.TotalShortfall = summary.TotalShortfall.Add(y.IncomeShortfall)
	}

	if len(years) > 0 {
		last := years[len(years)-1]
		summary.FinalPot = last.PotEnd
		summary.FinalNetWorth = last.NetWorth
	}
	return summary
}
