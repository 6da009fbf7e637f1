package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	AWS             AWSConfig            `mapstructure:"aws"`
}

type ServiceConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	// SecureCookies marks the session cookie Secure; keep it off for plain
	// HTTP development setups.
	SecureCookies bool `mapstructure:"secureCookies"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	MaxConns         int32  `mapstructure:"max_conns"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
}

type CoinGeckoConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
	// SecretID, when set, overrides JWTSecret with the value stored in
	// AWS Secrets Manager.
	SecretID        string `mapstructure:"secretId"`
	TokenTTLMinutes int    `mapstructure:"tokenTtlMinutes"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// LoadConfig reads appsettings[.ENV].yaml from path. A .env file, if present,
// is loaded first so referenced environment variables are available.
func LoadConfig(path, env string) (*Config, error) {
	var cfg Config

	_ = godotenv.Load()

	viper.AddConfigPath(path)
	if env != "" {
		viper.SetConfigName(fmt.Sprintf("appsettings.%s", env))
	} else {
		viper.SetConfigName("appsettings")
	}
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.TokenTTLMinutes == 0 {
		cfg.Auth.TokenTTLMinutes = 60
	}
	return &cfg, nil
}
