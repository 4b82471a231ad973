package dbschema

import (
	"github.com/xdd7520/QualityStar/internal/domain/ignore"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(IgnoreInterface{})
}

type IgnoreInterface struct {
	BaseModel
	URI         string `gorm:"size:1024;not null"`
	Description string `gorm:"type:text;not null;default:''"`
}

func (IgnoreInterface) TableName() string {
	return "ignore_interface"
}

func (i *IgnoreInterface) EtoD() *ignore.IgnoreInterface {
	return &ignore.IgnoreInterface{
		ID:          i.ID,
		URI:         i.URI,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func IgnoreInterfaceDtoE(i *ignore.IgnoreInterface) *IgnoreInterface {
	return &IgnoreInterface{
		BaseModel: BaseModel{
			ID:        i.ID,
			CreatedAt: i.CreatedAt,
			UpdatedAt: i.UpdatedAt,
		},
		URI:         i.URI,
		Description: i.Description,
	}
}
