package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

// ActivityLogService stores the audit trail of admin mutations
type ActivityLogService struct {
	db *gorm.DB
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{db: db}
}

// LogActivityRequest contains the parameters for logging an activity
type LogActivityRequest struct {
	AdminID      uuid.UUID
	AdminEmail   string
	Action       string // created_product, updated_filter, ...
	ResourceType string
	ResourceID   string
	Body         []byte // request payload, stored as changes when it is JSON
	StatusCode   int
	IPAddress    string
	UserAgent    string
}

// LogActivity writes one entry. Failures are logged and never fail the request.
func (s *ActivityLogService) LogActivity(ctx context.Context, req LogActivityRequest) {
	if req.AdminID == uuid.Nil {
		utils.Log.Warnf("[activity-log] AdminID is nil for action %s", req.Action)
		return
	}

	status := models.StatusSuccess
	if req.StatusCode >= 400 {
		status = models.StatusFailed
	}

	entry := models.ActivityLog{
		AdminID:      req.AdminID,
		AdminEmail:   req.AdminEmail,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Status:       status,
		StatusCode:   req.StatusCode,
		IPAddress:    req.IPAddress,
		UserAgent:    req.UserAgent,
	}
	if len(req.Body) > 0 && json.Valid(req.Body) {
		entry.Changes = req.Body
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		utils.Log.Errorf("[activity-log] failed to create activity log: %v", err)
		return
	}
	utils.Log.Infof("[activity-log] %s: %s/%s by %s (%d)", req.Action, req.ResourceType, req.ResourceID, req.AdminEmail, req.StatusCode)
}

// List returns the newest entries first, optionally for one resource type
func (s *ActivityLogService) List(ctx context.Context, page, limit int, resourceType string) ([]models.ActivityLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&models.ActivityLog{})
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}
	var logs []models.ActivityLog
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	return logs, total, nil
}
