package response

import (
	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/pricing"
	"greenpro_billing/internal/usecase"
)

// Money is rendered with two decimals as a string so that no float rounding
// happens on the wire.

type ServiceResponse struct {
	Name        string `json:"name"`
	BasePrice   string `json:"base_price"`
	RatePerArea string `json:"rate_per_area"`
}

type ServiceCatalogResponse struct {
	Services []ServiceResponse `json:"services"`
	RoomFee  string            `json:"room_fee"`
}

func FromServiceCatalog(entries []entities.ServiceCatalogEntry) ServiceCatalogResponse {
	out := ServiceCatalogResponse{
		Services: make([]ServiceResponse, 0, len(entries)),
		RoomFee:  pricing.FormatAmount(pricing.RoomFee),
	}
	for _, e := range entries {
		out.Services = append(out.Services, ServiceResponse{
			Name:        string(e.Name),
			BasePrice:   pricing.FormatAmount(e.BasePrice),
			RatePerArea: pricing.FormatAmount(e.RatePerArea),
		})
	}
	return out
}

type EstimateResponse struct {
	Service            string `json:"service"`
	BasePrice          string `json:"base_price"`
	AreaCost           string `json:"area_cost"`
	RoomFee            string `json:"room_fee"`
	RatePerArea        string `json:"rate_per_area"`
	TotalEstimate      string `json:"total_estimate"`
	DiscountAmount     string `json:"discount_amount"`
	DiscountedTotal    string `json:"discounted_total"`
	DepositAmount      string `json:"deposit_amount"`
	DepositAmountMinor int64  `json:"deposit_amount_minor"`
	Currency           string `json:"currency"`
	EstimateCount      int64  `json:"estimate_count,omitempty"`
}

func FromEstimateQuote(q usecase.EstimateQuote) EstimateResponse {
	return EstimateResponse{
		Service:            string(q.Estimate.Service),
		BasePrice:          pricing.FormatAmount(q.Estimate.BasePrice),
		AreaCost:           pricing.FormatAmount(q.Estimate.AreaCost),
		RoomFee:            pricing.FormatAmount(q.Estimate.RoomFee),
		RatePerArea:        pricing.FormatAmount(q.Estimate.RatePerArea),
		TotalEstimate:      pricing.FormatAmount(q.Estimate.TotalEstimate),
		DiscountAmount:     pricing.FormatAmount(q.Deposit.DiscountAmount),
		DiscountedTotal:    pricing.FormatAmount(q.Deposit.DiscountedTotal),
		DepositAmount:      pricing.FormatAmount(q.Deposit.DepositAmount),
		DepositAmountMinor: q.DepositMinor,
		Currency:           q.Currency,
		EstimateCount:      q.Count,
	}
}
