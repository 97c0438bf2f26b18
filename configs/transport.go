package configs

import "time"

type API struct {
	Addr            string        `env:"API_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"API_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Relayer struct {
	FlushInterval time.Duration `env:"RELAYER_FLUSH_INTERVAL" envDefault:"30s"`
	BatchSize     int           `env:"RELAYER_BATCH_SIZE" envDefault:"100"`
	KeyPrefix     string        `env:"RELAYER_KEY_PREFIX" envDefault:"relayer:ballots:"`
}

type StateService struct {
	Schedule string `env:"STATE_SERVICE_SCHEDULE" envDefault:"*/5 * * * *"`
}
