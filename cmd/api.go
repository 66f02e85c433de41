package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/shared"
)

func (r *Runner) apiPath(cmd *cli.Command) (string, error) {
	path := cmd.StringArg("path")
	if path == "" {
		return "", fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	return path, nil
}

// writeResponse prints a raw API response, failing on non-2xx statuses.
func (r *Runner) writeResponse(resp *services.APIResponse, pretty bool) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, pretty)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

// APIGet makes a direct GET request
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path, err := r.apiPath(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp, !cmd.Bool("json"))
}

// APIPost makes a direct POST request
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path, err := r.apiPath(cmd)
	if err != nil {
		return err
	}
	data := cmd.String("data")

	var probe any
	if err := json.Unmarshal([]byte(data), &probe); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Info("POST request", "path", path)

	resp, err := r.api.Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp, true)
}

// APIDelete makes a direct DELETE request
func (r *Runner) APIDelete(ctx context.Context, cmd *cli.Command) error {
	path, err := r.apiPath(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("DELETE request", "path", path)

	resp, err := r.api.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if len(resp.Body) == 0 && resp.StatusCode < 300 {
		return r.writePlain("✓ %d\n", resp.StatusCode)
	}
	return r.writeResponse(resp, true)
}
