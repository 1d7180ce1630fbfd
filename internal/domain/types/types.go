// Package types contains the static reference data shared by the offline
// pipeline and the serving path: branch and service catalogs, operating
// hours, and the peak-hour policy.
package types

// Operating window. Requests carry an hour in [OpenHour, CloseHour];
// arrivals are generated in the hour buckets [OpenHour, CloseHour).
const (
	OpenHour  = 8
	CloseHour = 16
)

// Confidence labels attached to predictions. These are a coarse heuristic
// derived from queue length, not a statistical confidence interval.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// ServiceProfile describes one transaction category: its service-duration
// range in minutes and its sampling weight in the categorical draw.
type ServiceProfile struct {
	Name       string
	MinMinutes float64
	MaxMinutes float64
	Weight     float64
}

var branches = []string{
	"Victoria Island",
	"Ikeja",
	"Surulere",
	"Abuja",
	"Port Harcourt",
}

// Catalog order also defines the draw order for service assignment.
var serviceCatalog = []ServiceProfile{
	{Name: "Cash Withdrawal", MinMinutes: 2, MaxMinutes: 8, Weight: 0.40},
	{Name: "Transfer", MinMinutes: 3, MaxMinutes: 10, Weight: 0.25},
	{Name: "Account Opening", MinMinutes: 15, MaxMinutes: 45, Weight: 0.15},
	{Name: "General Inquiry", MinMinutes: 1, MaxMinutes: 5, Weight: 0.15},
	{Name: "Loan Application", MinMinutes: 20, MaxMinutes: 60, Weight: 0.05},
}

// peakHours is the single source of truth for the is_peak_hour feature.
// Training and serving must never diverge on this set.
var peakHours = map[int]bool{
	9: true, 10: true, 11: true,
	13: true, 14: true, 15: true,
}

// Branches returns the fixed branch list in catalog order.
func Branches() []string {
	out := make([]string, len(branches))
	copy(out, branches)
	return out
}

// ServiceCatalog returns the fixed service profiles in catalog order.
func ServiceCatalog() []ServiceProfile {
	out := make([]ServiceProfile, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

// ServiceNames returns the service type names in catalog order.
func ServiceNames() []string {
	out := make([]string, len(serviceCatalog))
	for i, p := range serviceCatalog {
		out[i] = p.Name
	}
	return out
}

// ValidBranch reports whether name is a known branch.
func ValidBranch(name string) bool {
	for _, b := range branches {
		if b == name {
			return true
		}
	}
	return false
}

// ValidService reports whether name is a known service type.
func ValidService(name string) bool {
	for _, p := range serviceCatalog {
		if p.Name == name {
			return true
		}
	}
	return false
}

// IsPeakHour reports whether hour belongs to the peak-hour policy set.
func IsPeakHour(hour int) bool {
	return peakHours[hour]
}
