package dbschema

import (
	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(ProjectNameMapping{})
}

type ProjectNameMapping struct {
	BaseModel
	UploadName  string `gorm:"size:255;not null;default:'';index"`
	EurekaName  string `gorm:"size:255;not null;index"`
	Name        string `gorm:"size:255;not null;default:''"`
	Description string `gorm:"type:text;not null;default:''"`
}

func (ProjectNameMapping) TableName() string {
	return "project_name_mapping"
}

// EtoD converts database schema to domain mapping (Entity to Domain)
func (p *ProjectNameMapping) EtoD() *projectmapping.ProjectMapping {
	return &projectmapping.ProjectMapping{
		ID:          p.ID,
		UploadName:  p.UploadName,
		EurekaName:  p.EurekaName,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProjectNameMappingDtoE converts domain mapping to database schema (Domain to Entity)
func ProjectNameMappingDtoE(p *projectmapping.ProjectMapping) *ProjectNameMapping {
	return &ProjectNameMapping{
		BaseModel: BaseModel{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		UploadName:  p.UploadName,
		EurekaName:  p.EurekaName,
		Name:        p.Name,
		Description: p.Description,
	}
}
