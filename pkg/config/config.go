package config

import (
	"time"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Crop delete policies.
const (
	CropDeleteOrphan  = "orphan"
	CropDeleteCascade = "cascade"
)

// OTP providers.
const (
	OTPProviderTwoFactor = "2factor"
	OTPProviderMock      = "mock"
)

type DB struct {
	Driver  string `envconfig:"DRIVER" default:"postgres"`
	Url     string `envconfig:"URL"`
	Migrate bool   `envconfig:"MIGRATE" default:"true"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"168h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

//revive:disable
type OTP struct {
	Provider    string        `envconfig:"PROVIDER" default:"2factor"`
	ApiKey      string        `envconfig:"API_KEY"`
	BaseURL     string        `envconfig:"BASE_URL" default:"https://2factor.in/API/V1"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	MockCode    string        `envconfig:"MOCK_CODE" default:"123456"`
}

//revive:enable

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[farmledger]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env              string     `envconfig:"APP_ENV" default:"development"`
	Server           *Server    `envconfig:"SERVER"`
	Log              *Log       `envconfig:"LOG"`
	DB               *DB        `envconfig:"DATABASE"`
	Auth             *Auth      `envconfig:"AUTH"`
	OTP              *OTP       `envconfig:"OTP"`
	RateLimit        *RateLimit `envconfig:"RATE_LIMIT"`
	CropDeletePolicy string     `envconfig:"CROP_DELETE_POLICY" default:"orphan"`
}
