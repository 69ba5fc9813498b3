package config

import "errors"

var (
	// ErrAccessDenied возвращается, когда настройки меняет не их владелец
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidSchedule возвращается при некорректном расписании
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidGranularity возвращается при некорректном шаге слотов
	ErrInvalidGranularity = errors.New("invalid slot granularity")

	// ErrInvalidDeposit возвращается при некорректном проценте депозита
	ErrInvalidDeposit = errors.New("invalid deposit percentage")

	// ErrInvalidTier возвращается при неизвестном тарифе подписки
	ErrInvalidTier = errors.New("invalid pricing tier")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
