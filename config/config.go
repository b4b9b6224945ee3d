package config

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
}

// DBConfig selects which storage backend the storefront runs on.
// Type is "postgres" for the relational adapter or "bolt" for the
// embedded document adapter.
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
	// BoltFile is the document store path when Type is "bolt".
	// Empty means <workdir>/data/storefront.db.
	BoltFile string `yaml:"bolt_file" json:"bolt_file"`
}

type RedisConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
	Passwd  string `yaml:"passwd" json:"passwd"`
	DB      int    `yaml:"db" json:"db"`
	// TTLSeconds bounds how long the catalog cache may serve stale reads.
	TTLSeconds int `yaml:"ttl_seconds" json:"ttl_seconds"`
}

type SmtpConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	From     string `yaml:"from" json:"from"`
	NotifyTo string `yaml:"notify_to" json:"notify_to"`
}

// CheckoutConfig carries the outward-facing WhatsApp checkout settings.
type CheckoutConfig struct {
	BusinessPhone string `yaml:"business_phone" json:"business_phone"`
	StoreName     string `yaml:"store_name" json:"store_name"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DBConfig       `yaml:"database" json:"database"`
	Redis    RedisConfig    `yaml:"redis" json:"redis"`
	Smtp     SmtpConfig     `yaml:"smtp" json:"smtp"`
	Checkout CheckoutConfig `yaml:"checkout" json:"checkout"`
	Logger   LogConfig      `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(path.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(path.Join(c.System.Workdir, "data"), 0755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "storefront",
		Location: "Africa/Kampala",
		Workdir:  "/var/storefront",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		JwtSecret: "9b6de5cc-0731-1203-xxtx-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "storefront",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Redis: RedisConfig{
		Enabled:    false,
		Addr:       "127.0.0.1:6379",
		TTLSeconds: 60,
	},
	Checkout: CheckoutConfig{
		BusinessPhone: "+256789230136",
		StoreName:     "Vital Electronics",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/storefront/storefront.log",
	},
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig reads the YAML configuration file and applies STOREFRONT_*
// environment overrides on top.
func LoadConfig(cfile string) *AppConfig {
	// Parse config file
	cfg := new(AppConfig)
	if cfile != "" && fileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
	} else {
		cfg = DefaultAppConfig
	}

	setEnvValue("STOREFRONT_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("STOREFRONT_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("STOREFRONT_WEB_HOST", &cfg.Web.Host)
	setEnvValue("STOREFRONT_WEB_SECRET", &cfg.Web.JwtSecret)
	setEnvIntValue("STOREFRONT_WEB_PORT", &cfg.Web.Port)

	setEnvValue("STOREFRONT_DB_TYPE", &cfg.Database.Type)
	setEnvValue("STOREFRONT_DB_HOST", &cfg.Database.Host)
	setEnvValue("STOREFRONT_DB_NAME", &cfg.Database.Name)
	setEnvValue("STOREFRONT_DB_USER", &cfg.Database.User)
	setEnvValue("STOREFRONT_DB_PWD", &cfg.Database.Passwd)
	setEnvIntValue("STOREFRONT_DB_PORT", &cfg.Database.Port)
	setEnvValue("STOREFRONT_DB_BOLT_FILE", &cfg.Database.BoltFile)

	setEnvBoolValue("STOREFRONT_REDIS_ENABLED", &cfg.Redis.Enabled)
	setEnvValue("STOREFRONT_REDIS_ADDR", &cfg.Redis.Addr)
	setEnvValue("STOREFRONT_REDIS_PWD", &cfg.Redis.Passwd)

	setEnvValue("STOREFRONT_CHECKOUT_PHONE", &cfg.Checkout.BusinessPhone)
	setEnvValue("STOREFRONT_CHECKOUT_STORE_NAME", &cfg.Checkout.StoreName)

	setEnvValue("STOREFRONT_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("STOREFRONT_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("STOREFRONT_SMTP_USER", &cfg.Smtp.Username)
	setEnvValue("STOREFRONT_SMTP_PWD", &cfg.Smtp.Passwd)

	return cfg
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DSN builds a postgres connection string from the database section.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.Host, c.Port, c.User, c.Passwd, c.Name)
}
