package classifier

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/model"
)

// execClient runs an external command once per image. The image path and the
// architecture are appended to the configured arguments and the label is read
// from stdout.
type execClient struct {
	cliPath string
	args    []string
	timeout time.Duration
}

func newExecClient(cfg Config) (Client, error) {
	if len(cfg.Command) == 0 || cfg.Command[0] == "" {
		return nil, fmt.Errorf("%w: classifier.command is required for the exec backend", common.ErrMissingConfig)
	}

	cliPath, err := exec.LookPath(cfg.Command[0])
	if err != nil {
		return nil, fmt.Errorf("%w: classifier command not found at %s: %w", common.ErrInvalidConfig, cfg.Command[0], err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &execClient{
		cliPath: cliPath,
		args:    append([]string(nil), cfg.Command[1:]...),
		timeout: timeout,
	}, nil
}

// Classify runs the command for a single image.
func (c *execClient) Classify(ctx context.Context, imagePath string, arch model.Arch) (string, error) {
	cmdCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(c.args)+2)
	args = append(args, c.args...)
	args = append(args, imagePath, arch.String())

	cmd := exec.CommandContext(cmdCtx, c.cliPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("classifier command failed: %s: %w", strings.TrimSpace(stderr.String()), err)
		}
		return "", fmt.Errorf("failed to execute classifier: %w", err)
	}

	return stdout.String(), nil
}
