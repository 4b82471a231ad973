package dbschema

import (
	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(UploadInterface{})
}

type UploadInterface struct {
	BaseModel
	URL         string `gorm:"size:1024;not null;index:idx_upload_interface_key,priority:1"`
	Name        string `gorm:"size:255;not null;index:idx_upload_interface_key,priority:2"`
	Method      string `gorm:"size:16;not null"`
	Description string `gorm:"type:text;not null;default:''"`
	IsActive    bool   `gorm:"not null"`
}

func (UploadInterface) TableName() string {
	return "upload_interface"
}

func (u *UploadInterface) EtoD() *coverage.UploadInterface {
	return &coverage.UploadInterface{
		ID:          u.ID,
		URL:         u.URL,
		Name:        u.Name,
		Method:      u.Method,
		Description: u.Description,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func UploadInterfaceDtoE(u *coverage.UploadInterface) *UploadInterface {
	return &UploadInterface{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		URL:         u.URL,
		Name:        u.Name,
		Method:      u.Method,
		Description: u.Description,
		IsActive:    u.IsActive,
	}
}
