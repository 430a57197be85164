package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Database Database `koanf:"db"`
	Auth     Auth     `koanf:"auth"`
	Calendar Calendar `koanf:"calendar"`
	Metrics  Metrics  `koanf:"metrics"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Database struct {
	Host  string `koanf:"host"`
	Port  int    `koanf:"port"`
	User  string `koanf:"user"`
	Pass  string `koanf:"pass"`
	Name  string `koanf:"name"`
	Table string `koanf:"table"`
}

// Auth is the single credential pair guarding the calendar feed.
// An empty Username or Password never matches any request.
type Auth struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Realm    string `koanf:"realm"`
}

type Calendar struct {
	ProductId string `koanf:"productid"`
	// Timezone is an IANA zone name the stored wall clock is interpreted in.
	// Empty means UTC.
	Timezone   string `koanf:"timezone"`
	FailSoft   bool   `koanf:"failsoft"`
	OrderByDue bool   `koanf:"orderbydue"`
}

type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

// legacyEnv maps the environment names used by existing deployments to config keys.
var legacyEnv = map[string]string{
	"DB_NAME":        "db.name",
	"DB_USER":        "db.user",
	"DB_PASSWORD":    "db.pass",
	"DB_HOST":        "db.host",
	"DB_PORT":        "db.port",
	"FLASK_USERNAME": "auth.username",
	"FLASK_PASSWORD": "auth.password",
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr: ":5000",
		},
		Database: Database{
			Host:  "localhost",
			Port:  5432,
			Table: "card",
		},
		Auth: Auth{
			Realm: "cardcal",
		},
		Calendar: Calendar{
			ProductId: "-//cardcal//cardcal//EN",
			FailSoft:  true,
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			key, ok := legacyEnv[k]
			if !ok || v == "" {
				return "", nil
			}
			return key, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from legacy envs: %v", err)
		return Application{}, err
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CARDCAL_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CARDCAL_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
