package api

import (
	"time"
)

type Configuration struct {
	Env                 string
	AppName             string
	AppVersion          string
	Port                string
	AllowedOrigins      []string
	RequestLoggingLevel string
	DefaultTimeout      time.Duration
}
