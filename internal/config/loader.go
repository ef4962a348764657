package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. VECM_MODEL_COINT_RANK
const EnvPrefix = "VECM"

// Load reads configPath, or vecmcompare.yaml from the default locations when empty, on top of the
// defaults. Environment variables override both.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("vecmcompare")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config, %w", err)
		}
	}
	return parseConfig(v)
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("data.seed", d.Data.Seed)
	v.SetDefault("data.rows", d.Data.Rows)
	v.SetDefault("data.start", d.Data.Start)
	v.SetDefault("data.freq", d.Data.Freq)
	v.SetDefault("data.columns", d.Data.Columns)
	v.SetDefault("data.low", d.Data.Low)
	v.SetDefault("data.high", d.Data.High)

	v.SetDefault("model.diff_lags", d.Model.DiffLags)
	v.SetDefault("model.coint_rank", d.Model.CointRank)
	v.SetDefault("model.deterministic", d.Model.Deterministic)

	v.SetDefault("compare.horizon", d.Compare.Horizon)
	v.SetDefault("compare.test_size", d.Compare.TestSize)
	v.SetDefault("compare.rtol", d.Compare.RTol)
	v.SetDefault("compare.atol", d.Compare.ATol)

	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("report.plot", d.Report.Plot)
	v.SetDefault("report.model_out", d.Report.ModelOut)
	v.SetDefault("report.cpu_profile", d.Report.CPUProfile)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config, %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config, %w", err)
	}
	return &cfg, nil
}
