package model

// AuditLog is append-only; the application never updates or deletes rows.
type AuditLog struct {
	DTO
	UserId    *uint  `gorm:"index" json:"userId"`
	Action    string `gorm:"size:50;not null;index" json:"action"`
	IPAddress string `gorm:"size:45" json:"ipAddress"`
	UserAgent string `gorm:"size:255" json:"userAgent"`
	Success   bool   `json:"success"`
	Details   string `gorm:"type:text" json:"details"` // JSON-encoded event payload
}

type FilterAuditInput struct {
	Pagination
	UserId *uint  `query:"userId"`
	Action string `query:"action"`
}
