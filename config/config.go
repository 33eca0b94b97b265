package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SysConfig holds process-level settings.
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig holds the HTTP listener settings.
type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system"`
	Web      WebConfig `yaml:"web"`
	Database DBConfig  `yaml:"database"`
	Logger   LogConfig `yaml:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "restopos",
		Location: "Asia/Jakarta",
		Workdir:  "/var/restopos",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-restopos-b843369e0f22",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "restopos",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/restopos/restopos.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
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

// LoadConfig reads the YAML configuration file and applies environment
// variable overrides. A missing file falls back to DefaultAppConfig.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err = yaml.Unmarshal(data, cfg); err != nil {
				zap.S().Errorf("parse config %s error: %s", cfile, err)
			}
		}
	}

	setEnvValue("RESTOPOS_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("RESTOPOS_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("RESTOPOS_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("RESTOPOS_WEB_HOST", &cfg.Web.Host)
	setEnvValue("RESTOPOS_WEB_SECRET", &cfg.Web.Secret)
	setEnvIntValue("RESTOPOS_WEB_PORT", &cfg.Web.Port)

	setEnvValue("RESTOPOS_DB_TYPE", &cfg.Database.Type)
	setEnvValue("RESTOPOS_DB_HOST", &cfg.Database.Host)
	setEnvValue("RESTOPOS_DB_NAME", &cfg.Database.Name)
	setEnvValue("RESTOPOS_DB_USER", &cfg.Database.User)
	setEnvValue("RESTOPOS_DB_PWD", &cfg.Database.Passwd)
	setEnvIntValue("RESTOPOS_DB_PORT", &cfg.Database.Port)
	setEnvBoolValue("RESTOPOS_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("RESTOPOS_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvValue("RESTOPOS_LOGGER_FILENAME", &cfg.Logger.Filename)
	setEnvBoolValue("RESTOPOS_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	return cfg
}
