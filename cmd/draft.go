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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zjjtools/mededu/internal/config"
	"github.com/zjjtools/mededu/internal/patient"
	"github.com/zjjtools/mededu/internal/pipeline"
)

var (
	patientFile   string
	draftOutput   string
	refinedOutput string
	runRefine     bool
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate an education sheet for one patient",
	Long: `Generate a medication-education sheet from a patient JSON file:

  {"name": "...", "age": "...", "sex": "...",
   "diagnosis": "...", "medication": "...", "dosage": "..."}

With --refine the draft is additionally run through the self-critique cycle
and the rewritten sheet is stored next to the draft (or at --refined-output).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(patientFile)
		if err != nil {
			return fmt.Errorf("failed to read patient file: %w", err)
		}

		var rec patient.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to parse patient file: %w", err)
		}
		if err := rec.Validate(); err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client, err := buildClient(cfg)
		if err != nil {
			return err
		}
		pipe := pipeline.New(client)

		reqID := uuid.New().String()
		ctx := context.Background()

		fmt.Fprintf(os.Stderr, "[%s] generating draft for %s...\n", reqID, rec.Name)
		v1, err := pipe.ProduceDraft(ctx, rec)
		if err != nil {
			return err
		}
		if err := writeTextFile(draftOutput, v1); err != nil {
			return err
		}
		fmt.Printf("Draft written to %s\n", draftOutput)

		if !runRefine {
			return nil
		}

		fmt.Fprintf(os.Stderr, "[%s] running self-critique cycle...\n", reqID)
		res, err := pipe.Refine(ctx, rec, v1)
		if err != nil {
			return err
		}

		out := refinedOutput
		if out == "" {
			ext := filepath.Ext(draftOutput)
			out = draftOutput[:len(draftOutput)-len(ext)] + ".refined" + ext
		}
		if err := writeTextFile(out, res.Refined); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "[%s] critique: %s\n", reqID, res.Feedback)
		fmt.Printf("Refined sheet written to %s\n", out)
		return nil
	},
}

func writeTextFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftCmd.Flags().StringVarP(&patientFile, "input", "i", "", "Patient JSON file (required)")
	draftCmd.Flags().StringVarP(&draftOutput, "output", "o", "", "Output file for the draft (required)")
	draftCmd.Flags().BoolVar(&runRefine, "refine", false, "Run the self-critique cycle after drafting")
	draftCmd.Flags().StringVar(&refinedOutput, "refined-output", "", "Output file for the refined sheet")

	draftCmd.MarkFlagRequired("input")
	draftCmd.MarkFlagRequired("output")
}
