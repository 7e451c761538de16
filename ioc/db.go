package ioc

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func InitDB() *gorm.DB {
	type Config struct {
		DB string `mapstructure:"db"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("data", &cfg); err != nil {
		panic(err)
	}
	if cfg.DB == "" {
		cfg.DB = "watchlist-agent.db"
	}
	// sqlite creates the file but not its directory.
	if err := os.MkdirAll(filepath.Dir(cfg.DB), 0o755); err != nil {
		panic(err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DB), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	return db
}
