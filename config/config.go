package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Station Station `mapstructure:"station"`
	Units   Units   `mapstructure:"units"`
	MQTT    MQTT    `mapstructure:"mqtt"`
	API     API     `mapstructure:"api"`
}

type Station struct {
	Name  string `mapstructure:"name"`
	Topic string `mapstructure:"topic"`
}

type Units struct {
	Metric bool `mapstructure:"metric"`
}

type MQTT struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

type API struct {
	Port    int  `mapstructure:"port"`
	Enabled bool `mapstructure:"enabled"`
}

func Load(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/weatherflow-bridge")
	}

	// Set defaults
	viper.SetDefault("station.name", "WeatherFlow")
	viper.SetDefault("station.topic", "weatherflow")
	viper.SetDefault("units.metric", true)
	viper.SetDefault("mqtt.enabled", true)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.topic_prefix", "weatherflow-bridge")
	viper.SetDefault("mqtt.client_id", "weatherflow-bridge")
	viper.SetDefault("api.port", 8046)
	viper.SetDefault("api.enabled", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
