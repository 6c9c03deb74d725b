package entities

import "github.com/shopspring/decimal"

// ServiceName identifies one of the company's service offerings.
type ServiceName string

const (
	ServiceInteriorDemolition ServiceName = "Interior Demolition"
	ServiceDrywallRemoval     ServiceName = "Drywall Removal"
	ServiceSiteCleanUp        ServiceName = "Site Clean-Up"
	ServiceGarbageRemoval     ServiceName = "Garbage Removal"

	// DefaultService is preselected on empty quote and booking forms.
	DefaultService = ServiceInteriorDemolition
)

// ServiceCatalogEntry prices one service: a flat base price plus a rate per square foot.
type ServiceCatalogEntry struct {
	Name        ServiceName     `json:"name"`
	BasePrice   decimal.Decimal `json:"base_price"`
	RatePerArea decimal.Decimal `json:"rate_per_area"`
}

var serviceCatalog = []ServiceCatalogEntry{
	{Name: ServiceInteriorDemolition, BasePrice: decimal.NewFromInt(300), RatePerArea: decimal.RequireFromString("2.5")},
	{Name: ServiceDrywallRemoval, BasePrice: decimal.NewFromInt(200), RatePerArea: decimal.RequireFromString("1.8")},
	{Name: ServiceSiteCleanUp, BasePrice: decimal.NewFromInt(150), RatePerArea: decimal.RequireFromString("1.2")},
	{Name: ServiceGarbageRemoval, BasePrice: decimal.NewFromInt(250), RatePerArea: decimal.RequireFromString("2.0")},
}

// DefaultServiceEntry prices any service name the catalog does not know.
var DefaultServiceEntry = ServiceCatalogEntry{
	BasePrice:   decimal.NewFromInt(200),
	RatePerArea: decimal.RequireFromString("1.5"),
}

// ServiceCatalog returns the fixed catalog in display order.
func ServiceCatalog() []ServiceCatalogEntry {
	out := make([]ServiceCatalogEntry, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

// LookupService resolves a catalog entry by exact name.
func LookupService(name ServiceName) (ServiceCatalogEntry, bool) {
	for _, e := range serviceCatalog {
		if e.Name == name {
			return e, true
		}
	}
	return ServiceCatalogEntry{}, false
}
