package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"waver/internal/cli"
)

// featureState holds scenario state for CLI feature tests. Every scenario
// runs inside its own temporary workspace directory.
type featureState struct {
	workDir     string
	previousWD  string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int
	initialized bool
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a workspace with a valid run configuration$`, state.aWorkspaceWithValidConfig)
	ctx.Step(`^a workspace with an invalid run configuration$`, state.aWorkspaceWithInvalidConfig)
	ctx.Step(`^a question dataset with (\d+) questions$`, state.aQuestionDataset)
	ctx.Step(`^a question dataset whose correct letter is out of range$`, state.aDatasetWithBadCorrectLetter)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the error message mentions "([^"]+)"$`, state.theErrorMessageMentions)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
}

// reset clears buffers and state before each scenario.
func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.workDir = ""
	s.previousWD = ""
	s.initialized = false
}

// cleanup restores the working directory and removes temporary files.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}

func (s *featureState) enterWorkspace() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "waver-feature-*")
	if err != nil {
		return fmt.Errorf("create temp workspace: %w", err)
	}
	s.workDir = dir
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

func (s *featureState) aWorkspaceWithValidConfig() error {
	if err := s.enterWorkspace(); err != nil {
		return err
	}
	return s.writeFile("waver.yml", validConfigYAML())
}

func (s *featureState) aWorkspaceWithInvalidConfig() error {
	if err := s.enterWorkspace(); err != nil {
		return err
	}
	return s.writeFile("waver.yml", invalidConfigYAML())
}

func (s *featureState) aQuestionDataset(count string) error {
	n, err := strconv.Atoi(count)
	if err != nil {
		return fmt.Errorf("parse question count: %w", err)
	}
	var builder strings.Builder
	builder.WriteString(`{"version": 1, "questions": [`)
	for i := 0; i < n; i++ {
		if i > 0 {
			builder.WriteString(",")
		}
		fmt.Fprintf(&builder, `{"id": "q%d", "question": "Question %d?", "choices": ["yes", "no"], "correct": "A"}`, i+1, i+1)
	}
	builder.WriteString(`]}`)
	return s.writeFile("questions.json", builder.String())
}

func (s *featureState) aDatasetWithBadCorrectLetter() error {
	return s.writeFile("questions.json", `{
  "version": 1,
  "questions": [
    {"id": "q1", "question": "Broken?", "choices": ["yes", "no"], "correct": "D"}
  ]
}`)
}

func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "waver" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d (stderr: %s)", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputContains(fragment string) error {
	if !strings.Contains(s.stdout.String(), fragment) {
		return fmt.Errorf("expected output to contain %q, got %q", fragment, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorMessageMentions(fragment string) error {
	if !strings.Contains(s.stderr.String(), fragment) {
		return fmt.Errorf("expected stderr to mention %q, got %q", fragment, s.stderr.String())
	}
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) writeFile(name, body string) error {
	path := filepath.Join(s.workDir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func validConfigYAML() string {
	return `version: 1
models:
  - test-model
prompt_style: direct
invariance:
  enabled: true
  shuffle_count: 1
  seed: 7
`
}

func invalidConfigYAML() string {
	return `version: 1
models: []
`
}
