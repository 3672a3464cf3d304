package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	Stripe Stripe `envPrefix:"STRIPE_"`
	USPS   USPS   `envPrefix:"USPS_"`
	Mail   Mail   `envPrefix:"MAIL_"`
}

type Stripe struct {
	SecretKey string `env:"SECRET_KEY"`
}

type USPS struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://apis.usps.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	Enabled      bool   `env:"ENABLED" envDefault:"false"`
}

type Mail struct {
	FromAddress  string `env:"FROM_ADDRESS" envDefault:"orders@petalandstem.example"`
	AWSRegion    string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKey string `env:"AWS_ACCESS_KEY"`
	AWSSecretKey string `env:"AWS_SECRET_KEY"`
	QueueSize    int    `env:"QUEUE_SIZE" envDefault:"64"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
