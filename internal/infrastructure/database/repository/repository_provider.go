package repository

import (
	"github.com/google/wire"

	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/coveragerepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/ignorerepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/itemrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/projectmappingrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/rolerepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/transactionlogrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	projectmappingrepo.NewProjectMappingGormRepository,
	coveragerepo.NewGatherInterfaceGormRepository,
	coveragerepo.NewUploadInterfaceGormRepository,
	ignorerepo.NewIgnoreGormRepository,
	transactionlogrepo.NewTransactionLogGormRepository,
	userrepo.NewUserGormRepository,
	rolerepo.NewRoleGormRepository,
	itemrepo.NewItemGormRepository,
)
