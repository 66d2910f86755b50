package config

import "time"

type Config struct {
	Server   server   `yaml:"server" mapstructure:"server"`
	Mysql    mysql    `yaml:"mysql" mapstructure:"mysql"`
	Redis    redis    `yaml:"redis" mapstructure:"redis"`
	RabbitMq rabbitmq `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jwt      jwt      `yaml:"jwt" mapstructure:"jwt"`
	Jaeger   jaeger   `yaml:"jaeger" mapstructure:"jaeger"`
	Sentinel sentinel `yaml:"sentinel" mapstructure:"sentinel"`
	Log      log      `yaml:"log" mapstructure:"log"`
}

type server struct {
	Addr         string   `yaml:"addr" mapstructure:"addr"`
	PprofAddr    string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	WorkerID     int64    `yaml:"worker_id" mapstructure:"worker_id"`
	DatacenterID int64    `yaml:"datacenter_id" mapstructure:"datacenter_id"`
}

type mysql struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	Database        string        `yaml:"database" mapstructure:"database"`
	Username        string        `yaml:"username" mapstructure:"username"`
	Password        string        `yaml:"password" mapstructure:"password"`
	Charset         string        `yaml:"charset" mapstructure:"charset"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

type redis struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
}

type jwt struct {
	Secret  string        `yaml:"secret" mapstructure:"secret"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Realm   string        `yaml:"realm" mapstructure:"realm"`
}

type jaeger struct {
	AgentAddr  string  `yaml:"agent_addr" mapstructure:"agent_addr"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
}

type sentinel struct {
	QPS float64 `yaml:"qps" mapstructure:"qps"`
}

type log struct {
	Level string `yaml:"level" mapstructure:"level"`
}
