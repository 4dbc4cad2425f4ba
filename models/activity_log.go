package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog represents an admin action log entry
type ActivityLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID      uuid.UUID      `json:"admin_id" gorm:"type:uuid;not null;index:idx_activity_admin_date,sort:desc"`
	AdminEmail   string         `json:"admin_email" gorm:"not null"`
	Action       string         `json:"action" gorm:"not null;index"`                                             // created_product, imported_feed, ...
	ResourceType string         `json:"resource_type" gorm:"not null;index:idx_activity_resource_date,sort:desc"` // product, category, filter, feed
	ResourceID   string         `json:"resource_id" gorm:"index"`
	Changes      datatypes.JSON `json:"changes" gorm:"type:jsonb"` // request body of the mutation
	Status       string         `json:"status" gorm:"not null"`
	StatusCode   int            `json:"status_code"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index:idx_activity_admin_date,sort:desc;index:idx_activity_resource_date,sort:desc"`
}

// BeforeCreate hook - auto-generate UUID v7
func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.Must(uuid.NewV7())
	}
	if al.Status == "" {
		al.Status = StatusSuccess
	}
	return nil
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ChangesMap decodes the stored changes payload
func (al *ActivityLog) ChangesMap() map[string]interface{} {
	changes := make(map[string]interface{})
	if al.Changes != nil {
		_ = json.Unmarshal(al.Changes, &changes)
	}
	return changes
}

// ════════════════════════════════════════════════════════════
// Action Constants
// ════════════════════════════════════════════════════════════

const (
	ResourceTypeProduct  = "product"
	ResourceTypeCategory = "category"
	ResourceTypeFilter   = "filter"
	ResourceTypeFeed     = "feed"
	ResourceTypeClient   = "client"
	ResourceTypeCatalog  = "catalog"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)
