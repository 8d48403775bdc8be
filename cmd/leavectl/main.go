package main

import (
	"os"

	"shift-leave-bot/internal/config"

	"github.com/sirupsen/logrus"
)

func main() {
	root := newRootCmd(func() (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg.ApplyLogLevel()
		return cfg, nil
	})

	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
