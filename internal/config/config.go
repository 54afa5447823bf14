package config

import (
	"github.com/dilukangelosl/Nft-launchpad/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 地址空间配置
type ChainConfig struct {
	ChainId        int64    `mapstructure:"chain_id"`        // 链ID，参与工厂身份派生
	FactoryAddress string   `mapstructure:"factory_address"` // 工厂地址，留空则按链ID派生
	Deployers      []string `mapstructure:"deployers"`       // 启动时授予部署权限的地址
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"`  // 状态同步间隔（秒）
	PoolSize int `mapstructure:"pool_size"` // 记录分发协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/launchpad")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "launchpad")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.chain_id", 1)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("task.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
