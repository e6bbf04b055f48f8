package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter exports one row per projection year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"Year", "Age", "Phase", "PotStart", "PotEnd", "Contribution", "Growth", "Drawdown",
	"LumpSum", "StatePension", "GrossIncome", "TaxableIncome", "Tax", "NetIncome",
	"IncomeTarget", "IncomeShortfall", "LifeEventCost", "LifeEvents", "PropertyValue",
	"MortgageBalance", "PropertyEquity", "NetWorth", "CumulativeDrawdown",
	"CumulativeTaxFree", "FundsDepleted",
}

func (c CSVFormatter) Format(report Report) ([]byte, error) {
	if report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, y := range report.Result.Projections {
		age := ""
		if y.Age != nil {
			age = strconv.Itoa(*y.Age)
		}
		row := []string{
			strconv.Itoa(y.Year),
			age,
			string(y.Phase),
			y.PotStart.StringFixed(0),
			y.PotEnd.StringFixed(0),
			y.Contribution.StringFixed(0),
			y.Growth.StringFixed(0),
			y.Drawdown.StringFixed(0),
			y.LumpSum.StringFixed(0),
			y.StatePension.StringFixed(0),
			y.GrossIncome.StringFixed(0),
			y.TaxableIncome.StringFixed(0),
			y.Tax.StringFixed(0),
			y.NetIncome.StringFixed(0),
			y.IncomeTarget.StringFixed(0),
			y.IncomeShortfall.StringFixed(0),
			y.LifeEventCost.StringFixed(0),
			eventNames(y.LifeEvents),
			y.PropertyValue.StringFixed(0),
			y.MortgageBalance.StringFixed(0),
			y.PropertyEquity.StringFixed(0),
			y.NetWorth.StringFixed(0),
			y.CumulativeDrawdown.StringFixed(0),
			y.CumulativeTaxFree.StringFixed(0),
			strconv.FormatBool(y.FundsDepleted),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
