package pricing

import (
	"fmt"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// Расчёт депозита и комиссии платформы. Все суммы - int64 в минорных
// единицах валюты (центах), вся арифметика целочисленная: повторные вызовы
// с теми же аргументами дают бит-в-бит одинаковый результат.

// ComputeDeposit вычисляет сумму депозита по цене и проценту.
// Если передан явный override (flash может нести фиксированный депозит),
// он возвращается как есть после проверки границ.
// Округление - round-half-up на минорных единицах
func ComputeDeposit(price int64, depositPercentage int, override *int64) (int64, error) {
	if price < 0 {
		return 0, fmt.Errorf("%w: price must be non-negative, got %d", ErrInvalidAmount, price)
	}
	if depositPercentage < 0 || depositPercentage > 100 {
		return 0, fmt.Errorf("%w: deposit percentage must be in [0,100], got %d", ErrInvalidAmount, depositPercentage)
	}

	if override != nil {
		if *override < 0 {
			return 0, fmt.Errorf("%w: deposit override must be non-negative, got %d", ErrInvalidAmount, *override)
		}
		if *override > price {
			return 0, fmt.Errorf("%w: deposit override %d exceeds price %d", ErrInvalidAmount, *override, price)
		}
		return *override, nil
	}

	// round(price * pct / 100), half-up
	deposit := (price*int64(depositPercentage) + 50) / 100

	// При pct <= 100 депозит не может превысить цену, но проверяем инвариант
	if deposit > price {
		return 0, fmt.Errorf("%w: computed deposit %d exceeds price %d", ErrInvalidAmount, deposit, price)
	}

	return deposit, nil
}

// ComputeCommission вычисляет комиссию платформы с суммы депозита по ставке
// тарифа. Комиссия берётся только с депозита, не с полной цены.
// Для тарифа с нулевой ставкой возвращает ровно 0
func ComputeCommission(depositAmount int64, tier domain.PricingTier) (int64, error) {
	if depositAmount < 0 {
		return 0, fmt.Errorf("%w: deposit must be non-negative, got %d", ErrInvalidAmount, depositAmount)
	}

	bps, ok := tier.CommissionRateBps()
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}

	if bps == 0 {
		return 0, nil
	}

	// round(deposit * bps / 10000), half-up
	return (depositAmount*bps + 5000) / 10000, nil
}
