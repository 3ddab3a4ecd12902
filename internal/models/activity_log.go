// internal/models/activity_log.go
package models

import "time"

// ActivityLog feeds the dashboard's recent-activity panel. Rows are written
// by the audit middleware for every mutating request.
type ActivityLog struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      *uint          `json:"user_id" gorm:"index"`
	ActionType  ActivityAction `json:"action_type" gorm:"type:varchar(20);not null"`
	Description string         `json:"description" gorm:"size:500"`
	IPAddress   string         `json:"ip_address" gorm:"size:45"`
	CreatedAt   time.Time      `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
