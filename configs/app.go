package configs

type App struct {
	Environment string `env:"ENVIRONMENT,notEmpty"`
}

func (c App) IsDevEnvironment() bool {
	return c.Environment == "dev"
}

type Logger struct {
	AppName string `env:"APP_NAME" envDefault:"collector_dao"`
	URL     string `env:"LOKI_URL"`
}

type DB struct {
	URL           string `env:"DATABASE_URL"`
	MigrationsDir string `env:"DATABASE_MIGRATIONS_DIR" envDefault:"migrations"`
}
