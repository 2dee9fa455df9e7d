package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	SessionRedis SessionRedisConfig `mapstructure:"sessionredis"`
	BotChat      BotChatConfig      `mapstructure:"botchat"`
	Game         GameConfig         `mapstructure:"game"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Host        string `mapstructure:"host"`
	Description string `mapstructure:"description"`
}

type SessionRedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type BotChatConfig struct {
	URL               string `mapstructure:"url"`
	APIKey            string `mapstructure:"apikey"`
	Model             string `mapstructure:"model"`
	RequestsPerMinute int    `mapstructure:"requestsperminute"`
}

type GameConfig struct {
	Language string `mapstructure:"language"`
}

func Read() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/")

	// Defaults
	viper.SetDefault("app.name", "werewolf-service")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.host", "0.0.0.0")

	viper.SetDefault("sessionredis.host", "localhost")
	viper.SetDefault("sessionredis.port", "6379")
	viper.SetDefault("sessionredis.password", "")
	viper.SetDefault("sessionredis.db", 0)

	viper.SetDefault("botchat.url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("botchat.model", "gemini-2.5-flash")
	viper.SetDefault("botchat.requestsperminute", 30)

	viper.SetDefault("game.language", "en")

	// ENV overrides with prefix WEREWOLF_ and dot-to-underscore replacement
	viper.SetEnvPrefix("WEREWOLF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zap.L().Warn("Failed to read configuration file", zap.Error(err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		zap.L().Error("Configuration could not be parsed", zap.Error(err))
	}

	return config
}
