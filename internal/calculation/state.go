package calculation

import (
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/shopspring/decimal"
)

// SimulationState carries running balances and phase flags across the years of one run.
// Flags only ever move from false to true.
type SimulationState struct {
	Pot                decimal.Decimal
	Mortgage           decimal.Decimal
	TaxFreeCash        decimal.Decimal
	CumulativeDrawdown decimal.Decimal

	Retired      bool
	LumpSumTaken bool
	Depleted     bool

	DepletionAge  *int
	DepletionYear *int
}

func newSimulationState(snapshot domain.FinancialSnapshot) *SimulationState {
	return &SimulationState{
		Pot:          snapshot.PensionPot,
		Mortgage:     snapshot.TotalDebt,
		LumpSumTaken: snapshot.LumpSumTaken,
	}
}

// enterRetirement moves to the retirement phase and reports whether this call did so.
func (st *SimulationState) enterRetirement() bool {
	if st.Retired {
		return false
	}
	st.Retired = true
	return true
}

// grow applies one year of growth to the pot and returns the amount added.
func (st *SimulationState) grow(rate decimal.Decimal) decimal.Decimal {
	if st.Depleted {
		return decimal.Zero
	}
	growth := st.Pot.Mul(rate)
	st.Pot = decimal.Max(decimal.Zero, st.Pot.Add(growth))
	return growth
}

func (st *SimulationState) contribute(amount decimal.Decimal) {
	st.Pot = st.Pot.Add(amount)
}

// takeLumpSum pays the tax-free lump sum once.
func (st *SimulationState) takeLumpSum(rate decimal.Decimal) decimal.Decimal {
	if st.LumpSumTaken || !st.Pot.IsPositive() {
		return decimal.Zero
	}
	lumpSum := st.Pot.Mul(rate)
	st.Pot = st.Pot.Sub(lumpSum)
	st.TaxFreeCash = st.TaxFreeCash.Add(lumpSum)
	st.LumpSumTaken = true
	return lumpSum
}

// drawdown withdraws need from the pot. When the pot cannot cover it the pot is emptied,
// the remainder returned as shortfall and the state marked depleted.
func (st *SimulationState) drawdown(need decimal.Decimal, age *int, year int) (drawn, shortfall decimal.Decimal) {
	if st.Depleted {
		return decimal.Zero, need
	}
	if st.Pot.GreaterThanOrEqual(need) {
		st.Pot = st.Pot.Sub(need)
		st.CumulativeDrawdown = st.CumulativeDrawdown.Add(need)
		return need, decimal.Zero
	}
	drawn = st.Pot
	shortfall = need.Sub(drawn)
	st.Pot = decimal.Zero
	st.CumulativeDrawdown = st.CumulativeDrawdown.Add(drawn)
	st.deplete(age, year)
	return drawn, shortfall
}

func (st *SimulationState) deplete(age *int, year int) {
	if st.Depleted {
		return
	}
	st.Depleted = true
	if age != nil {
		a := *age
		st.DepletionAge = &a
	}
	y := year
	st.DepletionYear = &y
}

// applyEventCost deducts a net expense (floored at zero) or adds a net windfall.
func (st *SimulationState) applyEventCost(cost decimal.Decimal) {
	if cost.IsPositive() {
		st.Pot = decimal.Max(decimal.Zero, st.Pot.Sub(cost))
		return
	}
	st.Pot = st.Pot.Sub(cost)
}

func (st *SimulationState) amortize(reduction decimal.Decimal) {
	if !st.Mortgage.IsPositive() {
		return
	}
	st.Mortgage = decimal.Max(decimal.Zero, st.Mortgage.Sub(reduction))
}
