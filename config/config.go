package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "VIDTUBE"

var configPaths = []string{
	"../../config",
	"./config",
	"../config",
	".",
}

// Init reads config.yml from the usual search paths. Every key can be overridden by an
// environment variable, e.g. VIDTUBE_MYSQL_ADDR or VIDTUBE_JWT_SECRET.
func Init() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetConfigName("config.yml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	wd, _ := os.Getwd()
	logrus.Debugf("Current working directory: %s", wd)
	for _, path := range configPaths {
		v.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config error: %w", err)
		}
		logrus.Warnf("config file not found, running on defaults and environment: %v", err)
	} else {
		logrus.Infof("Successfully read config file: %s", v.ConfigFileUsed())
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}
	if cfg.Jwt.Secret == "" {
		return nil, fmt.Errorf("jwt.secret must be set")
	}

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		cfg.Mysql.Username, "***", cfg.Mysql.Addr, cfg.Mysql.Database)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// every key needs a default, otherwise AutomaticEnv overrides are invisible to Unmarshal
	v.SetDefault("server.addr", "0.0.0.0:8888")
	v.SetDefault("server.pprof_addr", "")
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.worker_id", 1)
	v.SetDefault("server.datacenter_id", 1)

	v.SetDefault("mysql.addr", "127.0.0.1:3306")
	v.SetDefault("mysql.database", "vidtube")
	v.SetDefault("mysql.username", "")
	v.SetDefault("mysql.password", "")
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.max_open_conns", 100)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.conn_max_lifetime", time.Hour)
	v.SetDefault("mysql.auto_migrate", true)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rabbitmq.enabled", false)
	v.SetDefault("rabbitmq.addr", "127.0.0.1:5672")
	v.SetDefault("rabbitmq.username", "guest")
	v.SetDefault("rabbitmq.password", "guest")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.timeout", 30*24*time.Hour)
	v.SetDefault("jwt.realm", "vidtube")

	v.SetDefault("jaeger.enabled", false)
	v.SetDefault("jaeger.agent_addr", "127.0.0.1:6831")
	v.SetDefault("jaeger.sample_rate", 1.0)

	v.SetDefault("sentinel.qps", 0)

	v.SetDefault("log.level", "info")
}

// MysqlDSN builds the go-sql-driver DSN for the configured database.
func (c *Config) MysqlDSN() string {
	return strings.Join([]string{c.Mysql.Username, ":", c.Mysql.Password, "@tcp(", c.Mysql.Addr, ")/",
		c.Mysql.Database, "?charset=", c.Mysql.Charset, "&parseTime=True&loc=Local"}, "")
}

// RabbitMqURL builds the amqp URL from the rabbitmq section.
func (c *Config) RabbitMqURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s/", c.RabbitMq.Username, c.RabbitMq.Password, c.RabbitMq.Addr)
}
