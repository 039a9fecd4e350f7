package config

import "time"

type Config struct {
	Web       Web
	DB        DB
	Session   Session
	Cors      Cors
	Rate      Rate
	Dashboard Dashboard
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost:5432"`
	Name       string `conf:"default:anihan"`
	DisableTLS bool   `conf:"default:true"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

type Cors struct {
	Origin string `conf:"default:*"`
}

type Rate struct {
	Burst    int     `conf:"default:20"`
	ExpiryM  int     `conf:"default:10"`
	LimitRPS float64 `conf:"default:10"`
}

type Dashboard struct {
	CacheTTL time.Duration `conf:"default:1m"`
}
