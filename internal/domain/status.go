package domain

import "strings"

// RiskStatus is the tri-state reorder risk classification. It is a pure
// function of days-until-reorder: infinite is OK, <= 3 days is critical,
// <= 7 days is warning, anything else is OK.
type RiskStatus string

const (
	RiskCritical RiskStatus = "critical"
	RiskWarning  RiskStatus = "warning"
	RiskOK       RiskStatus = "ok"
)

var riskStatusLabels = map[RiskStatus]string{
	RiskCritical: "Critical",
	RiskWarning:  "Warning",
	RiskOK:       "OK",
}

// Label returns a human-readable label for a risk status.
func (s RiskStatus) Label() string {
	if label, ok := riskStatusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// ParseRiskStatus maps a query-string value back to a status.
func ParseRiskStatus(value string) (RiskStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "critical":
		return RiskCritical, true
	case "warning":
		return RiskWarning, true
	case "ok":
		return RiskOK, true
	}
	return "", false
}
