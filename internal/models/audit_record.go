package models

import "time"

// AuditRecord - запись журнала решений, только добавление
type AuditRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID string    `gorm:"type:varchar(36);index" json:"request_id"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	Employee  string    `gorm:"not null;index" json:"employee"`
	Action    string    `gorm:"type:varchar(20);not null" json:"action"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Outcome   string    `gorm:"type:varchar(20);not null" json:"outcome"`
	Remarks   string    `json:"remarks"`
}

func (AuditRecord) TableName() string {
	return "audit_records"
}

const (
	ActionBook   = "book"
	ActionCancel = "cancel"
)

// AuditTimestampLayout - формат времени в строке журнала
const AuditTimestampLayout = "2006-01-02 15:04:05"

// AuditHeader - заголовок листа журнала
var AuditHeader = []string{"Timestamp", "Employee", "Action", "Start", "End", "Outcome", "Remarks", "Request ID"}

// Fields возвращает запись как строку таблицы
func (r AuditRecord) Fields() []string {
	return []string{
		r.Timestamp.Format(AuditTimestampLayout),
		r.Employee,
		r.Action,
		r.StartDate.Format(DateLayout),
		r.EndDate.Format(DateLayout),
		r.Outcome,
		r.Remarks,
		r.RequestID,
	}
}

// AuditRecordFromFields собирает запись из строки таблицы.
// Неразобранные даты остаются нулевыми.
func AuditRecordFromFields(fields []string) AuditRecord {
	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	record := AuditRecord{
		Employee:  get(1),
		Action:    get(2),
		Outcome:   get(5),
		Remarks:   get(6),
		RequestID: get(7),
	}
	record.Timestamp, _ = time.Parse(AuditTimestampLayout, get(0))
	record.StartDate, _ = time.Parse(DateLayout, get(3))
	record.EndDate, _ = time.Parse(DateLayout, get(4))
	return record
}
