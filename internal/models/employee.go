package models

import "time"

// Employee - строка сотрудника в SQLite-книге отпусков
type Employee struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	NormalizedName string    `gorm:"uniqueIndex;not null" json:"-"`
	Shift          string    `gorm:"type:varchar(10);not null" json:"shift"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// LeaveDay - непустая ячейка книги: статус сотрудника на дату
type LeaveDay struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_leave_day_employee_date" json:"employee_id"`
	Date       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_leave_day_employee_date;index" json:"date"` // 2006-01-02
	Status     string    `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (LeaveDay) TableName() string {
	return "leave_days"
}
