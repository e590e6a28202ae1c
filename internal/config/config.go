package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB_HOST           string
	DB_PORT           string
	DB_USER           string
	DB_PASSWORD       string
	DB_NAME           string
	ES_URL            string
	ES_USER           string
	ES_PASSWORD       string
	KAFKA_ADDRESS     string
	STRIPE_SECRET_KEY string
	STRIPE_API_URL    string
	CURRENCY          string
	SESSION_SECRET    string
	HTTP_ADDR         string
	LOG_LEVEL         string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:           os.Getenv("DB_HOST"),
		DB_PORT:           os.Getenv("DB_PORT"),
		DB_USER:           os.Getenv("DB_USER"),
		DB_PASSWORD:       os.Getenv("DB_PASSWORD"),
		DB_NAME:           os.Getenv("DB_NAME"),
		ES_URL:            os.Getenv("ES_URL"),
		ES_USER:           os.Getenv("ES_USER"),
		ES_PASSWORD:       os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS:     os.Getenv("KAFKA_ADDRESS"),
		STRIPE_SECRET_KEY: os.Getenv("STRIPE_SECRET_KEY"),
		STRIPE_API_URL:    os.Getenv("STRIPE_API_URL"),
		CURRENCY:          os.Getenv("CURRENCY"),
		SESSION_SECRET:    os.Getenv("SESSION_SECRET"),
		HTTP_ADDR:         os.Getenv("HTTP_ADDR"),
		LOG_LEVEL:         os.Getenv("LOG_LEVEL"),
	}

	if config.CURRENCY == "" {
		config.CURRENCY = "usd"
	}
	if config.HTTP_ADDR == "" {
		config.HTTP_ADDR = ":8080"
	}
	if config.STRIPE_SECRET_KEY == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if config.SESSION_SECRET == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return config, nil
}

func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}
