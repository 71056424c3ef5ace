package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rosindex/internal/app"
	"rosindex/internal/types"
)

func newListCommand() *cobra.Command {
	var stacks bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all indexed packages or stacks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			names, err := service.List(cmd.Context(), app.ListRequest{
				RosPaths: rosPaths(cmd),
				Kind:     kindFlag(stacks),
			})
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stacks, "stacks", false, "List stacks instead of packages")
	return cmd
}

func newFindCommand() *cobra.Command {
	var stacks bool
	cmd := &cobra.Command{
		Use:   "find NAME",
		Short: "Print the directory of a package or stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			path, err := service.Find(cmd.Context(), app.FindRequest{
				Name:     args[0],
				RosPaths: rosPaths(cmd),
				Kind:     kindFlag(stacks),
			})
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&stacks, "stacks", false, "Look up a stack instead of a package")
	return cmd
}

func kindFlag(stacks bool) types.ManifestKind {
	if stacks {
		return types.KindStack
	}
	return types.KindPackage
}
