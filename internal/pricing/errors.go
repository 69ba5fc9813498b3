package pricing

import "errors"

var (
	// ErrInvalidAmount возвращается при некорректных денежных входных данных:
	// отрицательная цена, процент вне [0,100], депозит больше цены
	ErrInvalidAmount = errors.New("pricing: invalid amount")

	// ErrUnknownTier возвращается при неизвестном тарифе подписки
	ErrUnknownTier = errors.New("pricing: unknown tier")
)
