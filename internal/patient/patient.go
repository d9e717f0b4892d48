// Package patient defines the inbound patient record and its serialization
// for prompt templates.
package patient

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record carries the six fields every medication-education request must
// supply. It is built once per request and never stored.
type Record struct {
	Name       string `json:"name"`
	Age        string `json:"age"`
	Sex        string `json:"sex"`
	Diagnosis  string `json:"diagnosis"`
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
}

// Validate reports the first required field that is missing or blank.
func (r Record) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"age", r.Age},
		{"sex", r.Sex},
		{"diagnosis", r.Diagnosis},
		{"medication", r.Medication},
		{"dosage", r.Dosage},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("patient field %q is required", f.name)
		}
	}
	return nil
}

// promptRecord mirrors Record with the Chinese clinical labels the prompt
// templates were written against.
type promptRecord struct {
	Name       string `json:"姓名"`
	Age        string `json:"年龄"`
	Sex        string `json:"性别"`
	Diagnosis  string `json:"诊断"`
	Medication string `json:"药品"`
	Dosage     string `json:"用量"`
}

func (r Record) toPromptRecord() promptRecord {
	return promptRecord{
		Name:       cleanField(r.Name),
		Age:        cleanField(r.Age),
		Sex:        cleanField(r.Sex),
		Diagnosis:  cleanField(r.Diagnosis),
		Medication: cleanField(r.Medication),
		Dosage:     cleanField(r.Dosage),
	}
}

// cleanField trims surrounding whitespace and applies NFC normalization so
// visually identical input always renders identically inside a prompt.
func cleanField(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// PromptJSON renders the record as a single-line JSON object with Chinese
// keys, the form the draft template embeds.
func (r Record) PromptJSON() string {
	b, _ := json.Marshal(r.toPromptRecord())
	return string(b)
}

// PromptJSONIndent renders the same object indented, used by the critique and
// rewrite templates.
func (r Record) PromptJSONIndent() string {
	b, _ := json.MarshalIndent(r.toPromptRecord(), "", "  ")
	return string(b)
}
