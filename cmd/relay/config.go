package main

import "time"

type Config struct {
	StoreEndpoint string        `env:"STORE_ENDPOINT,required=true"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT,default=10s"`
	TokenSecret   string        `env:"TOKEN_SECRET,required=true"`
	LogLevel      string        `env:"LOG_LEVEL,required=true"`
	Host          string        `env:"HOST,default=localhost"`
	Port          int           `env:"PORT,default=8080"`
}
