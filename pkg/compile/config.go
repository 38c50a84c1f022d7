// File: pkg/compile/config.go
package compile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMaxFileSizeKB is the size limit applied when a project does not
// configure one. Larger files serialize as a skipped placeholder.
const DefaultMaxFileSizeKB = 1024

// Project is the declarative configuration for one compilation run.
// Configs are JSON by default; files ending in .yaml or .yml are parsed
// as YAML with the same field names.
type Project struct {
	Title          string   `json:"title" yaml:"title"`
	AbsolutePath   string   `json:"absolute_path" yaml:"absolute_path"`
	StartPrompt    string   `json:"start_prompt" yaml:"start_prompt"`
	StartText      string   `json:"start_text" yaml:"start_text"`
	StopText       string   `json:"stop_text" yaml:"stop_text"`
	Files          []string `json:"files" yaml:"files"`
	UseGitignore   *bool    `json:"use_gitignore" yaml:"use_gitignore"`
	IgnorePatterns []string `json:"ignore_patterns" yaml:"ignore_patterns"`
	Output         string   `json:"output" yaml:"output"`
	MaxFileSizeKB  int      `json:"max_file_size_kb" yaml:"max_file_size_kb"`
	MaxWorkers     int      `json:"max_workers" yaml:"max_workers"`
}

// LoadProject reads and parses a project config file. Missing fields get
// their defaults; the output path defaults to "<config base name>.txt".
func LoadProject(path string) (*Project, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config %s: %w", path, err)
	}

	var p Project
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &p); err != nil {
			return nil, fmt.Errorf("failed to parse project config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(content, &p); err != nil {
			return nil, fmt.Errorf("failed to parse project config %s: %w", path, err)
		}
	}

	p.Title = strings.TrimSpace(p.Title)
	p.AbsolutePath = strings.TrimSpace(p.AbsolutePath)
	p.StartPrompt = strings.TrimSpace(p.StartPrompt)
	p.StartText = strings.TrimSpace(p.StartText)
	p.StopText = strings.TrimSpace(p.StopText)

	if p.Output == "" {
		base := filepath.Base(path)
		p.Output = strings.TrimSuffix(base, filepath.Ext(base)) + ".txt"
	}
	if p.MaxFileSizeKB <= 0 {
		p.MaxFileSizeKB = DefaultMaxFileSizeKB
	}
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = runtime.NumCPU()
	}

	return &p, nil
}

// Validate checks the fields the run cannot proceed without. These are
// the only fatal conditions; everything downstream degrades gracefully.
func (p *Project) Validate() error {
	if p.AbsolutePath == "" {
		return fmt.Errorf("the 'absolute_path' field must not be empty")
	}
	info, err := os.Stat(p.AbsolutePath)
	if err != nil {
		return fmt.Errorf("absolute path does not exist: %s", p.AbsolutePath)
	}
	if !info.IsDir() {
		return fmt.Errorf("absolute path is not a directory: %s", p.AbsolutePath)
	}
	if len(p.Files) == 0 {
		return fmt.Errorf("the 'files' list must contain at least one entry")
	}
	return nil
}

// GitignoreEnabled reports whether the root's .gitignore should be
// consulted. Unset means enabled.
func (p *Project) GitignoreEnabled() bool {
	return p.UseGitignore == nil || *p.UseGitignore
}
