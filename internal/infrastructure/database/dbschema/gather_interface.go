package dbschema

import (
	"gorm.io/datatypes"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(GatherInterface{})
}

type GatherInterface struct {
	BaseModel
	URL                  string            `gorm:"size:1024;not null;index:idx_gather_interface_key,priority:2"`
	ProjectNameMappingID uint              `gorm:"not null;index:idx_gather_interface_key,priority:1"`
	Method               string            `gorm:"size:16;not null;index:idx_gather_interface_key,priority:3"`
	Description          string            `gorm:"type:text;not null;default:''"`
	IsActive             bool              `gorm:"not null"`
	Labels               datatypes.JSONMap `gorm:"type:json"`
}

func (GatherInterface) TableName() string {
	return "gather_interface"
}

func (g *GatherInterface) EtoD() *coverage.GatherInterface {
	var labels map[string]string
	if len(g.Labels) > 0 {
		labels = make(map[string]string, len(g.Labels))
		for k, v := range g.Labels {
			if s, ok := v.(string); ok {
				labels[k] = s
			}
		}
	}
	return &coverage.GatherInterface{
		ID:               g.ID,
		URL:              g.URL,
		ProjectMappingID: g.ProjectNameMappingID,
		Method:           g.Method,
		Description:      g.Description,
		IsActive:         g.IsActive,
		Labels:           labels,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

func GatherInterfaceDtoE(g *coverage.GatherInterface) *GatherInterface {
	var labels datatypes.JSONMap
	if len(g.Labels) > 0 {
		labels = make(datatypes.JSONMap, len(g.Labels))
		for k, v := range g.Labels {
			labels[k] = v
		}
	}
	return &GatherInterface{
		BaseModel: BaseModel{
			ID:        g.ID,
			CreatedAt: g.CreatedAt,
			UpdatedAt: g.UpdatedAt,
		},
		URL:                  g.URL,
		ProjectNameMappingID: g.ProjectMappingID,
		Method:               g.Method,
		Description:          g.Description,
		IsActive:             g.IsActive,
		Labels:               labels,
	}
}
