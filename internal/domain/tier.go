package domain

import "fmt"

// PricingTier тариф подписки мастера, определяет комиссию платформы
type PricingTier string

const (
	TierFree    PricingTier = "FREE"
	TierStarter PricingTier = "STARTER"
	TierPro     PricingTier = "PRO"
	TierStudio  PricingTier = "STUDIO"
)

// commissionRatesBps комиссия платформы в базисных пунктах (1 bps = 0.01%)
// Ставки фиксированы per-tier и монотонно не возрастают FREE → STUDIO
// Целые базисные пункты вместо float, чтобы расчёт был воспроизводимым
var commissionRatesBps = map[PricingTier]int64{
	TierFree:    500, // 5%
	TierStarter: 300, // 3%
	TierPro:     150, // 1.5%
	TierStudio:  0,
}

// ParseTier валидирует и конвертирует строку в PricingTier
func ParseTier(s string) (PricingTier, error) {
	tier := PricingTier(s)
	if _, ok := commissionRatesBps[tier]; !ok {
		return "", fmt.Errorf("unknown pricing tier: %q", s)
	}
	return tier, nil
}

// CommissionRateBps возвращает комиссию тарифа в базисных пунктах
func (t PricingTier) CommissionRateBps() (int64, bool) {
	bps, ok := commissionRatesBps[t]
	return bps, ok
}

// IsValid возвращает true для известного тарифа
func (t PricingTier) IsValid() bool {
	_, ok := commissionRatesBps[t]
	return ok
}
