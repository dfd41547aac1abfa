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
	Listen       string       `koanf:"listen"`
	Frontend     Frontend     `koanf:"frontend"`
	Database     Database     `koanf:"db"`
	Orchestrator Orchestrator `koanf:"orchestrator"`
	Schedule     Schedule     `koanf:"schedule"`
	Google       Google       `koanf:"google"`
}

type Frontend struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Orchestrator struct {
	URL string `koanf:"url"`
}

type Schedule struct {
	// Slots is the ordered list of time labels shown for every day of the grid.
	Slots []string `koanf:"slots"`
	// LoadConcurrency limits parallel per-member calendar reads.
	LoadConcurrency int `koanf:"loadconcurrency"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
	TokenFile    string `koanf:"tokenfile"`
}

var DefaultSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "01:00 PM", "01:30 PM", "02:00 PM", "02:30 PM", "03:00 PM",
	"03:30 PM", "04:00 PM", "04:30 PM", "05:00 PM",
}

func defaults() Application {
	return Application{
		Listen: ":8181",
		Frontend: Frontend{
			Enabled: true,
			Dir:     "frontend",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "pmdash",
			Pass:   "",
			Name:   "pmdash",
			Schema: "pmdash",
		},
		Orchestrator: Orchestrator{
			URL: "http://127.0.0.1:8000/orchestrate",
		},
		Schedule: Schedule{
			Slots:           DefaultSlots,
			LoadConcurrency: 4,
		},
		Google: Google{
			TokenFile: "token-google.json",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
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
		Prefix: "PMDASH_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PMDASH_")), "_", ".")
			// comma separated lists, e.g. PMDASH_SCHEDULE_SLOTS="09:00 AM,10:00 AM"
			if strings.Contains(v, ",") {
				return k, strings.Split(v, ",")
			}
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
	if len(app.Schedule.Slots) == 0 {
		app.Schedule.Slots = DefaultSlots
	}
	if app.Schedule.LoadConcurrency <= 0 {
		app.Schedule.LoadConcurrency = 1
	}

	return app, nil
}
