package domain

import (
	"github.com/google/wire"

	"github.com/xdd7520/QualityStar/internal/config"
	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/domain/ignore"
	"github.com/xdd7520/QualityStar/internal/domain/item"
	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/domain/role"
	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
	"github.com/xdd7520/QualityStar/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Project mappings
	projectmapping.NewProjectMappingService,
	wire.Bind(new(coverage.MappingResolver), new(*projectmapping.ProjectMappingService)),

	// Ignore rules
	ignore.NewIgnoreService,
	wire.Bind(new(coverage.IgnoreListLoader), new(*ignore.IgnoreService)),

	// Audit log
	transactionlog.NewTransactionLogService,

	// Coverage
	ProvideCollectorSettings,
	ProvideReportSettings,
	coverage.NewCollectorService,
	coverage.NewReconcilerService,
	coverage.NewReportService,
	coverage.NewCoverageService,

	// Accounts
	role.NewRoleService,
	wire.Bind(new(user.RoleLookup), new(*role.RoleService)),
	item.NewItemService,
	wire.Bind(new(user.OwnedItemsRemover), new(item.ItemRepository)),
	user.NewUserService,
)

func ProvideCollectorSettings(cfg *config.Config) coverage.CollectorSettings {
	return coverage.CollectorSettings{
		Query:     cfg.PrometheusQuery,
		URIPrefix: cfg.PrometheusURIPrefix,
	}
}

func ProvideReportSettings(cfg *config.Config) coverage.ReportSettings {
	return coverage.ReportSettings{
		DedupScope: coverage.DedupScope(cfg.ReportDedupScope),
	}
}
