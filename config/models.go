package config

import "time"

type AuthConfig struct {
	Secret        string `mapstructure:"secret" validate:"required"`
	ExpiryMin     int    `mapstructure:"expiry_min" validate:"gt=0"`
	AdminUsername string `mapstructure:"admin_username" validate:"required"`
	AdminPassword string `mapstructure:"admin_password" validate:"required"`
}

type SchedulerConfig struct {
	Interval    time.Duration `mapstructure:"interval" validate:"gt=0"`
	Concurrency int           `mapstructure:"concurrency" validate:"gt=0"`
}

type CheckerConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type DBConfig struct {
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
}

type Config struct {
	Port        int              `mapstructure:"port"`
	Env         string           `mapstructure:"env"`
	ServiceName string           `mapstructure:"service_name"`
	DB          *DBConfig        `mapstructure:"db" validate:"required"`
	Auth        *AuthConfig      `mapstructure:"auth" validate:"required"`
	Scheduler   *SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Checker     *CheckerConfig   `mapstructure:"checker" validate:"required"`
}
