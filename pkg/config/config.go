package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Auth struct {
	// JwtSecret protects the HTTP API when set. Empty leaves the API unauthenticated.
	JwtSecret string `envconfig:"JWT_SECRET"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"atm:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

const (
	RateBackendMemory = "memory"
	RateBackendRedis  = "redis"
)

type RateCache struct {
	Backend         string        `envconfig:"BACKEND" default:"memory"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"1h"`
}

// Bank holds the monetary rules of the institution running the ATMs.
type Bank struct {
	ReferenceCurrency string          `envconfig:"REFERENCE_CURRENCY" default:"ZAR"`
	OverdraftLimit    decimal.Decimal `envconfig:"OVERDRAFT_LIMIT" default:"10000.000"`
	// LowCashThreshold raises a warning once an ATM holds less cash than this.
	LowCashThreshold decimal.Decimal `envconfig:"LOW_CASH_THRESHOLD" default:"1000.00"`
}

type Report struct {
	Dir string `envconfig:"DIR" default:"reports"`
}

const (
	EventBusMemory = "memory"
	EventBusKafka  = "kafka"
	EventBusNone   = "none"
)

type EventBus struct {
	Driver       string        `envconfig:"DRIVER" default:"memory"`
	Brokers      []string      `envconfig:"BROKERS" default:"localhost:9092"`
	Topic        string        `envconfig:"TOPIC" default:"atm.withdrawals"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"5s"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[atm]"`
}

type Server struct {
	Scheme   string `envconfig:"SCHEME" default:"http"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     int    `envconfig:"PORT" default:"8080"`
	BasePath string `envconfig:"BASE_PATH" default:"/discovery-atm"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateCache *RateCache `envconfig:"RATE_CACHE"`
	Bank      *Bank      `envconfig:"BANK"`
	Report    *Report    `envconfig:"REPORT"`
	EventBus  *EventBus  `envconfig:"EVENT_BUS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
