package config

import (
	"os"
	"path"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig Database configuration
type DBConfig struct {
	Type     string `yaml:"type"` // postgres or sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	SSLMode  string `yaml:"sslmode"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig System configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	NodeID   int64  `yaml:"node_id"` // snowflake node number
	Debug    bool   `yaml:"debug"`
}

// WebConfig Web API configuration
type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"` // HS256 key for bearer tokens
}

// LogConfig Logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system"`
	Web      WebConfig `yaml:"web"`
	Database DBConfig  `yaml:"database"`
	Logger   LogConfig `yaml:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// InitDirs creates the working directories
func (c *AppConfig) InitDirs() error {
	for _, d := range []string{c.GetLogDir(), c.GetDataDir()} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "VendorHub",
		Location: "Asia/Kolkata",
		Workdir:  "/var/vendorhub",
		NodeID:   1,
		Debug:    false,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-vendorhub-0f1e-change-me",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "vendorhub",
		User:     "postgres",
		Passwd:   "myroot",
		SSLMode:  "disable",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/vendorhub/logs/vendorhub.log",
	},
}

// LoadConfig reads the YAML file at cfile (if any) on top of the defaults,
// then applies VENDORHUB_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(&cfg)
	return &cfg, nil
}

func setEnvValue(name string, val *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = v
	}
}

func setEnvInt(name string, val *int) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if p, err := cast.ToIntE(v); err == nil {
			*val = p
		}
	}
}

func setEnvInt64(name string, val *int64) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if p, err := cast.ToInt64E(v); err == nil {
			*val = p
		}
	}
}

func setEnvBool(name string, val *bool) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if p, err := cast.ToBoolE(v); err == nil {
			*val = p
		}
	}
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("VENDORHUB_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("VENDORHUB_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvInt64("VENDORHUB_SYSTEM_NODE_ID", &cfg.System.NodeID)
	setEnvBool("VENDORHUB_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("VENDORHUB_WEB_HOST", &cfg.Web.Host)
	setEnvInt("VENDORHUB_WEB_PORT", &cfg.Web.Port)
	setEnvValue("VENDORHUB_WEB_SECRET", &cfg.Web.Secret)

	setEnvValue("VENDORHUB_DB_TYPE", &cfg.Database.Type)
	setEnvValue("VENDORHUB_DB_HOST", &cfg.Database.Host)
	setEnvInt("VENDORHUB_DB_PORT", &cfg.Database.Port)
	setEnvValue("VENDORHUB_DB_NAME", &cfg.Database.Name)
	setEnvValue("VENDORHUB_DB_USER", &cfg.Database.User)
	setEnvValue("VENDORHUB_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("VENDORHUB_DB_SSLMODE", &cfg.Database.SSLMode)
	setEnvBool("VENDORHUB_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("VENDORHUB_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBool("VENDORHUB_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("VENDORHUB_LOGGER_FILENAME", &cfg.Logger.Filename)
}
