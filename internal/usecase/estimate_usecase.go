package usecase

import (
	"context"

	"go.uber.org/zap"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/pricing"
	"greenpro_billing/internal/usecase/interfaces"
)

// EstimateQuote is a priced quote: the estimate, its deposit and the deposit in minor units.
type EstimateQuote struct {
	Estimate     entities.EstimateBreakdown
	Deposit      entities.DepositQuote
	DepositMinor int64
	Currency     string
	Count        int64
}

// IEstimateUseCase exposes the service catalog and the estimate calculator.
type IEstimateUseCase interface {
	ListServices(ctx context.Context) []entities.ServiceCatalogEntry
	Calculate(ctx context.Context, service entities.ServiceName, area, rooms string) (EstimateQuote, error)
}

type EstimateUseCase struct {
	policy   pricing.DepositPolicy
	currency string
	counter  interfaces.IEstimateCounter
	logger   *zap.Logger
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(policy pricing.DepositPolicy, currency string, counter interfaces.IEstimateCounter, logger *zap.Logger) *EstimateUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimateUseCase{policy: policy, currency: currency, counter: counter, logger: logger}
}

func (u *EstimateUseCase) ListServices(context.Context) []entities.ServiceCatalogEntry {
	return entities.ServiceCatalog()
}

// Calculate prices a quote. Unparseable area or rooms count as zero and a missing or unknown
// service is priced with the default catalog entry. It fails only when the deposit does not
// fit in minor units.
func (u *EstimateUseCase) Calculate(ctx context.Context, service entities.ServiceName, area, rooms string) (EstimateQuote, error) {
	est := pricing.ComputeEstimate(service, pricing.ParseArea(area), pricing.ParseRooms(rooms))
	dep := u.policy.ComputeDeposit(est)
	minor, err := pricing.ToMinorUnits(dep.DepositAmount)
	if err != nil {
		u.logger.Info("[estimate][usecase] deposit out of range", zap.String("area", area), zap.Error(err))
		return EstimateQuote{}, err
	}

	q := EstimateQuote{
		Estimate:     est,
		Deposit:      dep,
		DepositMinor: minor,
		Currency:     u.currency,
	}

	if u.counter != nil {
		n, err := u.counter.Increment(ctx)
		if err != nil {
			u.logger.Warn("[estimate][usecase] estimate counter unavailable", zap.Error(err))
		} else {
			q.Count = n
		}
	}
	return q, nil
}
