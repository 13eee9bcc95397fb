package opusmt

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"videodub/internal/translate"
)

// DefaultCommand is the helper binary resolved from PATH.
const DefaultCommand = "opus-mt"

// Client launches the opus-mt helper.
type Client struct {
	command string
	runner  func(ctx context.Context, stdin string, args ...string) (string, error)
}

// New creates a client for the given helper command. An empty command uses
// DefaultCommand.
func New(command string) *Client {
	command = strings.TrimSpace(command)
	if command == "" {
		command = DefaultCommand
	}
	return &Client{command: command}
}

// WithRunner sets a custom process runner (for testing).
func (c *Client) WithRunner(runner func(ctx context.Context, stdin string, args ...string) (string, error)) {
	c.runner = runner
}

// Loader adapts the client to the translation chain's capability loader: it
// verifies the model can be served before handing back a Translator bound to
// that model.
func (c *Client) Loader() translate.Loader {
	return func(ctx context.Context, modelID string) (translate.Translator, error) {
		if strings.TrimSpace(modelID) == "" {
			return nil, fmt.Errorf("opus-mt: empty model identifier")
		}
		if _, err := c.run(ctx, "", "--model", modelID, "--check"); err != nil {
			return nil, fmt.Errorf("opus-mt load %s: %w", modelID, err)
		}
		return &modelTranslator{client: c, model: modelID}, nil
	}
}

func (c *Client) run(ctx context.Context, stdin string, args ...string) (string, error) {
	if c.runner != nil {
		return c.runner(ctx, stdin, args...)
	}
	cmd := exec.CommandContext(ctx, c.command, args...) //nolint:gosec
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		if detail != "" {
			return "", fmt.Errorf("%s: %w: %s", c.command, err, detail)
		}
		return "", fmt.Errorf("%s: %w", c.command, err)
	}
	return string(output), nil
}

// modelTranslator is a loaded capability bound to one model identifier.
type modelTranslator struct {
	client *Client
	model  string
}

func (t *modelTranslator) Translate(ctx context.Context, text string) (string, error) {
	output, err := t.client.run(ctx, text, "--model", t.model, "--translate")
	if err != nil {
		return "", err
	}
	translated := strings.TrimSpace(output)
	if translated == "" {
		return "", fmt.Errorf("opus-mt: empty translation from %s", t.model)
	}
	return translated, nil
}
