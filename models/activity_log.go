package models

import "time"

// Activity kinds recorded by the service.
const (
	ActivityTableClaim   = "table_claim"
	ActivityTableRelease = "table_release"
	ActivityPayment      = "payment"
)

type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"type:varchar(30);not null;index" json:"kind"`
	Actor     string    `gorm:"type:varchar(100);not null" json:"actor"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
