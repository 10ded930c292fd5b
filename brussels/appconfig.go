package main

import (
	ms "github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/wiless/emf"
)

// ReadAppConfig loads the sweep parameters from <basedir>/emf.(json|yaml|toml),
// falling back to the Brussels reference defaults for anything unset.
func ReadAppConfig() emf.SimConfig {
	cfg := emf.DefaultSimConfig()

	viper.AddConfigPath(basedir)
	viper.SetConfigName("emf")

	{
		viper.SetDefault("NIterations", cfg.NIterations)
		viper.SetDefault("NBaseStations", cfg.NBaseStations)
		viper.SetDefault("Seed", cfg.Seed)
		viper.SetDefault("Threads", cfg.Threads)
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Infof("ReadAppConfig : no config file (%v), using Brussels defaults", err)
		return cfg
	}

	if err := ms.Decode(viper.AllSettings(), &cfg); err != nil {
		log.Fatalf("ReadAppConfig : %v", err)
	}
	return cfg
}
