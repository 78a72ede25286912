package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// containerCmd groups the container commands
var containerCmd = &cobra.Command{
	Use:   "container",
	Short: "Manage storage containers",
}

var containerCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a container (no error if it already exists)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		container, err := svc.CreateContainer(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to create container: %w", err)
		}
		logg.Info("Container ready", zap.String("container", container.Name))
		fmt.Fprintln(cmd.OutOrStdout(), container.Name)
		return nil
	},
}

var containerDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a container and every blob in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		if err := svc.DeleteContainer(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete container: %w", err)
		}
		logg.Info("Container deleted", zap.String("container", args[0]))
		return nil
	},
}

func init() {
	containerCmd.AddCommand(containerCreateCmd, containerDeleteCmd)
	RootCmd.AddCommand(containerCmd)
}
