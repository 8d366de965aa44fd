package entity

import "time"

// Schedule is the single daily reminder time registered for a recipient.
type Schedule struct {
	RecipientID RecipientID `gorm:"column:recipient_id;primaryKey;type:varchar(128)"`
	TimeOfDay   TimeOfDay   `gorm:"column:time_of_day;type:varchar(5);not null;index"`
	CreatedAt   time.Time   `gorm:"column:created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at"`
}

// TableName specifies the table name for the Schedule entity.
func (Schedule) TableName() string {
	return "schedulers"
}
