package domain

import "fmt"

// SourceKind тип источника бронирования
type SourceKind string

const (
	SourceFlash   SourceKind = "flash"   // Готовый эскиз из каталога мастера
	SourceProject SourceKind = "project" // Индивидуальный проект
	SourceManual  SourceKind = "manual"  // Ручная запись мастера
)

// BookingSource источник бронирования: flash-эскиз, кастомный проект или
// ручная запись. Источники взаимно исключают друг друга, поэтому вместо
// двух nullable foreign keys используется тегированный вариант
type BookingSource struct {
	Kind  SourceKind
	RefID *int64 // ID эскиза или проекта; nil для ручной записи
}

// NewFlashSource создает источник "flash-эскиз"
func NewFlashSource(flashID int64) BookingSource {
	return BookingSource{Kind: SourceFlash, RefID: &flashID}
}

// NewProjectSource создает источник "кастомный проект"
func NewProjectSource(projectID int64) BookingSource {
	return BookingSource{Kind: SourceProject, RefID: &projectID}
}

// NewManualSource создает источник "ручная запись мастера"
func NewManualSource() BookingSource {
	return BookingSource{Kind: SourceManual}
}

// NewBookingSource собирает источник из сырых значений с валидацией
func NewBookingSource(kind string, refID *int64) (BookingSource, error) {
	switch SourceKind(kind) {
	case SourceFlash:
		if refID == nil {
			return BookingSource{}, fmt.Errorf("flash source requires a flash id")
		}
		return NewFlashSource(*refID), nil
	case SourceProject:
		if refID == nil {
			return BookingSource{}, fmt.Errorf("project source requires a project id")
		}
		return NewProjectSource(*refID), nil
	case SourceManual:
		if refID != nil {
			return BookingSource{}, fmt.Errorf("manual source must not carry a reference id")
		}
		return NewManualSource(), nil
	default:
		return BookingSource{}, fmt.Errorf("unknown booking source kind: %q", kind)
	}
}

// IsManual возвращает true для ручной записи мастера
func (s BookingSource) IsManual() bool {
	return s.Kind == SourceManual
}
