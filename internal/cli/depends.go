package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rosindex/internal/app"
	"rosindex/internal/types"
)

func newDependsCommand() *cobra.Command {
	var direct bool
	cmd := &cobra.Command{
		Use:   "depends NAME",
		Short: "Print the dependencies of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			deps, err := service.Depends(cmd.Context(), app.DependsRequest{
				Name:     args[0],
				RosPaths: rosPaths(cmd),
				Implicit: !direct,
			})
			if err != nil {
				// A partial closure is still worth printing; the
				// missing names go to the log and the exit code says
				// the rest.
				var notFound *types.NotFoundError
				if !errors.As(err, &notFound) {
					return err
				}
				log.Warn().Strs("unavailable", notFound.Unavailable).Msg("dependency closure incomplete")
				printLines(deps)
				return err
			}
			printLines(deps)
			return nil
		},
	}
	cmd.Flags().BoolVar(&direct, "direct", false, "Only direct dependencies")
	return cmd
}

func newDependsOnCommand() *cobra.Command {
	var direct bool
	cmd := &cobra.Command{
		Use:   "depends-on NAME",
		Short: "Print the packages that depend on a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			deps, err := service.Depends(cmd.Context(), app.DependsRequest{
				Name:     args[0],
				RosPaths: rosPaths(cmd),
				Implicit: !direct,
				Reverse:  true,
			})
			if err != nil {
				return err
			}
			printLines(deps)
			return nil
		},
	}
	cmd.Flags().BoolVar(&direct, "direct", false, "Only direct reverse dependencies")
	return cmd
}

func newRosdepsCommand() *cobra.Command {
	var direct bool
	cmd := &cobra.Command{
		Use:   "rosdeps NAME",
		Short: "Print the system dependencies of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			deps, err := service.Rosdeps(cmd.Context(), app.RosdepsRequest{
				Name:     args[0],
				RosPaths: rosPaths(cmd),
				Implicit: !direct,
			})
			if err != nil {
				return err
			}
			printLines(deps)
			return nil
		},
	}
	cmd.Flags().BoolVar(&direct, "direct", false, "Only the package's own rosdeps")
	return cmd
}

func printLines(lines []string) {
	for _, line := range lines {
		fmt.Println(line)
	}
}
