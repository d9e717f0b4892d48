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
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "mededu",
	Short: "Pediatric medication-education self-refine service",
	Long: `A service that writes medication-education sheets for parents of
pediatric patients using an LLM completion endpoint, then improves each sheet
through an LLM self-critique cycle (draft -> critique -> rewrite).

Use "mededu serve" to run the HTTP API, or "mededu draft" for one-shot
generation from a patient file.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
