package server

import "time"

type Config struct {
	Addr            string        `split_words:"true" default:"0.0.0.0:8000"`
	PublicURL       string        `envconfig:"PUBLIC_URL" default:"http://localhost:8000/"`
	Name            string        `split_words:"true" default:"Plan Assistant"`
	Version         string        `split_words:"true" default:"1.0.0"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
	ReleaseMode     bool          `split_words:"true" default:"true"`
}
