package ioc

import (
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

type MailerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// InitMailer builds the SMTP dialer. Implicit TLS is used on port 465, the
// Gmail app-password setup.
func InitMailer() (*gomail.Dialer, MailerConfig) {
	var cfg MailerConfig
	if err := viper.UnmarshalKey("smtp", &cfg); err != nil {
		panic(err)
	}
	// UnmarshalKey does not see env overrides, Get does.
	if pw := viper.GetString("smtp.password"); pw != "" {
		cfg.Password = pw
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Port == 465
	return dialer, cfg
}
