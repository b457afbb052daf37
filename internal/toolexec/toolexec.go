package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Runner executes an external static-analysis tool against a target file
// and returns its raw combined output.
type Runner interface {
	Invoke(ctx context.Context, tool string, args []string, target string) (string, error)
}

// Exec runs tools as local subprocesses.
type Exec struct{}

// Invoke runs tool with args followed by the target path, capturing stdout
// and stderr together. Linters conventionally exit non-zero when they find
// issues, so a non-zero exit with output is treated as a successful review;
// it is only an error when the tool produced nothing or could not start.
func (Exec) Invoke(ctx context.Context, tool string, args []string, target string) (string, error) {
	if tool == "" {
		return "", errors.New("no tool configured")
	}
	if _, err := exec.LookPath(tool); err != nil {
		return "", fmt.Errorf("tool %s not found: %w", tool, err)
	}

	cmdArgs := append(append([]string{}, args...), target)
	cmd := exec.CommandContext(ctx, tool, cmdArgs...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if ctx.Err() != nil {
		return "", fmt.Errorf("tool %s: %w", tool, ctx.Err())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && out.Len() > 0 {
			return out.String(), nil
		}
		return "", fmt.Errorf("running %s: %w", tool, err)
	}
	if out.Len() == 0 {
		return fmt.Sprintf("%s reported no issues.", tool), nil
	}
	return out.String(), nil
}
