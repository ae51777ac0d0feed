package router

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/igorsily/users-api/config"
	userapp "github.com/igorsily/users-api/internal/application"
	pginfra "github.com/igorsily/users-api/internal/infrastructure/postgres"
	handlers "github.com/igorsily/users-api/internal/interface/http"
	"github.com/igorsily/users-api/internal/router/modules"
	"github.com/igorsily/users-api/pkg/helpers"
)

// Deps carries the process-wide collaborators constructed in main. Modules
// receive them by injection; there is no package-global state.
type Deps struct {
	Cfg       *config.Config
	Logger    *logrus.Logger
	Pool      *pgxpool.Pool
	Publisher *helpers.RabbitPublisher
	ES        *elasticsearch.Client
	JWT       *helpers.JWTManager
}

// InitModules wires repositories, services and handlers and registers every
// feature module with the router registry. Called once during startup.
func InitModules(r *Registry, d Deps) {
	repo := pginfra.NewUserRepository(d.Pool)
	service := userapp.NewService(repo, d.Logger, d.Publisher, d.ES, d.Cfg.ESUsersIndex)
	handler := handlers.NewUserHandler(service)

	r.Add(modules.NewUserModule(handler, d.JWT))
}
