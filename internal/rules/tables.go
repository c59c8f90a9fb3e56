package rules

import (
	_ "embed"
	"sync"
)

//go:embed risk_rules.yaml
var riskRulesYAML []byte

//go:embed compliance_rules.yaml
var complianceRulesYAML []byte

var (
	riskOnce       sync.Once
	riskTable      *Table
	complianceOnce sync.Once
	compTable      *Table
)

// RiskTable returns the built-in risk signal rule table.
// The table is compiled once; a defect in the embedded file panics at first use.
func RiskTable() *Table {
	riskOnce.Do(func() {
		riskTable = MustLoad(riskRulesYAML)
	})
	return riskTable
}

// ComplianceTable returns the built-in compliance rule table
func ComplianceTable() *Table {
	complianceOnce.Do(func() {
		compTable = MustLoad(complianceRulesYAML)
	})
	return compTable
}
