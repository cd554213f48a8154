// Package cli implements the scamlog operator commands. Every command goes
// through the bot façade as actor "cli", so it is logged like a bot command.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/stardevs/community-backend/internal/botapi"
	"github.com/stardevs/community-backend/internal/bootstrap"
	"gopkg.in/yaml.v3"
)

const actor = "cli"

// Opener builds the runtime a command runs against.
type Opener func() (*bootstrap.Runtime, error)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func RootCmd(open Opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scamlog",
		Short:         "Inspect and moderate the Star Devs scam log",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("output", "o", string(outputTable), "output format: table, json or yaml")

	rootCmd.AddCommand(listCmd(open))
	rootCmd.AddCommand(getCmd(open))
	rootCmd.AddCommand(setStatusCmd(open))
	rootCmd.AddCommand(removeCmd(open))
	rootCmd.AddCommand(statsCmd(open))
	rootCmd.AddCommand(setMemberCountCmd(open))
	return rootCmd
}

// dispatch opens the runtime, runs req and closes the runtime again.
func dispatch(open Opener, req botapi.Request) (any, error) {
	rt, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open scam log store: %w", err)
	}
	env := rt.Facade.Dispatch(actor, req)
	closeErr := rt.Close()
	if !env.Success {
		return nil, errors.New(env.Error)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close scam log store: %w", closeErr)
	}
	return env.Data, nil
}

func formatFlag(cmd *cobra.Command) (outputFormat, error) {
	raw, _ := cmd.Flags().GetString("output")
	switch f := outputFormat(raw); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format: %s\nValid formats: table, json, yaml", raw)
}

// render writes v as JSON or YAML, or calls table for the table format.
func render(cmd *cobra.Command, v any, table func(io.Writer) error) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch format {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return table(out)
	}
}
