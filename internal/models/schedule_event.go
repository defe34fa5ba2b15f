package models

import "time"

// ScheduleEvent - событие календаря. В расчете зарплаты участвуют только события типа work.
type ScheduleEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Type      string    `gorm:"type:varchar(20);not null;index" json:"type"`
	Title     string    `gorm:"type:varchar(200)" json:"title"`
	StartDate string    `gorm:"type:varchar(10);index" json:"start_date"`
	EndDate   string    `gorm:"type:varchar(10)" json:"end_date"`
	StartTime string    `gorm:"type:varchar(8)" json:"start_time"` // HH:MM, локальное время
	EndTime   string    `gorm:"type:varchar(8)" json:"end_time"`   // меньше StartTime - смена через полночь
	Notes     string    `json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleEvent) TableName() string {
	return "schedule_events"
}

// Типы событий
const (
	EventTypeWork        = "work"        // Рабочая смена
	EventTypePTO         = "pto"         // Оплачиваемый отпуск
	EventTypeUnavailable = "unavailable" // Недоступна
	EventTypeSpecial     = "special"     // Особое событие
)

// EventTypes возвращает все допустимые типы событий
func EventTypes() []string {
	return []string{EventTypeWork, EventTypePTO, EventTypeUnavailable, EventTypeSpecial}
}

// IsWork проверяет, учитывается ли событие в расчете часов
func (e *ScheduleEvent) IsWork() bool {
	return e.Type == EventTypeWork
}
