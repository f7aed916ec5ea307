package claude

import (
	"github.com/Epiphytic/rosetta-aisp-llm/provider"
)

func init() {
	provider.Register("claude", func(cfg provider.Config) (provider.Provider, error) {
		var opts []Option
		if cfg.BinPath != "" {
			opts = append(opts, WithPath(cfg.BinPath))
		}
		if cfg.Model != "" {
			opts = append(opts, WithModel(cfg.Model))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if dir := cfg.GetStringOption("workdir", ""); dir != "" {
			opts = append(opts, WithWorkdir(dir))
		}
		if cfg.GetBoolOption("disable_schema", false) {
			opts = append(opts, WithoutSchema())
		}
		return New(opts...), nil
	})
}
