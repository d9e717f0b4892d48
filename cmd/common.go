/*
Copyright © 2026 ZJJ Tools

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/zjjtools/mededu/internal/config"
	"github.com/zjjtools/mededu/internal/llm"
)

// buildClient constructs the completion client selected by the configuration.
func buildClient(cfg config.Config) (llm.Client, error) {
	switch cfg.Provider {
	case config.ProviderGitHubModels:
		return llm.NewChatClient(cfg.Endpoint, cfg.Token, cfg.Model), nil
	case config.ProviderOpenAI:
		baseURL := cfg.Endpoint
		if baseURL == config.DefaultEndpoint {
			// Endpoint was not overridden; let the SDK use its platform default.
			baseURL = ""
		}
		return llm.NewOpenAIClient(cfg.Token, baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
