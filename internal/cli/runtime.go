package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simurg/simurg-desktop/internal/api"
	"github.com/simurg/simurg-desktop/internal/catalog"
	"github.com/simurg/simurg-desktop/internal/config"
	"github.com/simurg/simurg-desktop/internal/logging"
)

// runtime is what every command needs once flags are parsed
type runtime struct {
	env     config.Env
	logger  *logrus.Logger
	version string
}

// loader builds a config loader with the global flags applied on top
func (f *globalFlags) loader() *config.Loader {
	loader := config.NewLoader(f.configFile)
	if f.apiURL != "" {
		loader.Set(config.KeyAPIURL, f.apiURL)
	}
	if f.logLevel != "" {
		loader.Set(config.KeyLogLevel, f.logLevel)
	}
	return loader
}

// setup reads the configuration and builds the logger. With needAPI the API
// URL must be valid and the config file is watched for log level changes.
func setup(cmd *cobra.Command, loader *config.Loader, needAPI bool, version string) (*runtime, error) {
	env, err := loader.Read()
	if err != nil {
		return nil, err
	}
	if needAPI {
		if err := env.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(env.LogLevel, env.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	rt := &runtime{env: env, logger: logger, version: version}
	if needAPI {
		loader.Watch(rt.reload, func(err error) {
			logger.WithError(err).Warn("Ignoring invalid configuration reload")
		})
	}
	return rt, nil
}

// reload applies the parts of a changed config file that can change at runtime
func (rt *runtime) reload(env config.Env) {
	if err := logging.SetLevel(rt.logger, env.LogLevel); err != nil {
		rt.logger.WithError(err).Warn("Ignoring log level change")
		return
	}
	rt.logger.WithField("level", rt.logger.GetLevel().String()).Info("Configuration reloaded")
}

func (rt *runtime) client() (*api.Client, error) {
	client, err := api.NewClient(rt.env.APIURL, rt.version,
		api.WithTimeout(rt.env.RequestTimeout),
		api.WithLogger(rt.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return client, nil
}

func (rt *runtime) catalog() (*catalog.Catalog, error) {
	return catalog.LoadFile(rt.env.CombosFile)
}
