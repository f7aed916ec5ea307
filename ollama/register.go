package ollama

import (
	"net/http"

	"github.com/Epiphytic/rosetta-aisp-llm/provider"
)

func init() {
	provider.Register("ollama", func(cfg provider.Config) (provider.Provider, error) {
		var opts []Option
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		if cfg.Model != "" {
			opts = append(opts, WithModel(cfg.Model))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		return New(opts...), nil
	})
}
