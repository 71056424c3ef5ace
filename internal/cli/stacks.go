package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rosindex/internal/app"
)

func newStackOfCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack-of NAME",
		Short: "Print the stack containing a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			stack, err := service.StackOf(cmd.Context(), app.StackOfRequest{
				Name:     args[0],
				RosPaths: rosPaths(cmd),
			})
			if err != nil {
				return err
			}
			if stack == "" {
				fmt.Println("(no stack)")
				return nil
			}
			fmt.Println(stack)
			return nil
		},
	}
	return cmd
}

func newPackagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages STACK",
		Short: "Print the packages contained in a stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			packages, err := service.StackPackages(cmd.Context(), app.StackPackagesRequest{
				Stack:    args[0],
				RosPaths: rosPaths(cmd),
			})
			if err != nil {
				return err
			}
			printLines(packages)
			return nil
		},
	}
	return cmd
}

func newStackVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack-version STACK",
		Short: "Print the declared version of a stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			version, err := service.StackVersion(cmd.Context(), app.StackVersionRequest{
				Stack:    args[0],
				RosPaths: rosPaths(cmd),
			})
			if err != nil {
				return err
			}
			if version == "" {
				fmt.Println("(unversioned)")
				return nil
			}
			fmt.Println(version)
			return nil
		},
	}
	return cmd
}

func newExpandCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand NAME...",
		Short: "Expand package and stack names into a package list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			result, err := service.Expand(cmd.Context(), app.ExpandRequest{
				Names:    args,
				RosPaths: rosPaths(cmd),
			})
			if err != nil {
				return err
			}
			printLines(result.Packages)
			for _, name := range result.Unresolved {
				fmt.Printf("not found: %s\n", name)
			}
			return nil
		},
	}
	return cmd
}
