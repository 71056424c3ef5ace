package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosindex/internal/app"
	"rosindex/internal/shared"
)

type licensesOptions struct {
	Direct         bool
	GroupByPackage bool
	System         bool
	Write          bool
	Output         string
}

func newLicensesCommand() *cobra.Command {
	opts := licensesOptions{}
	cmd := &cobra.Command{
		Use:   "licenses NAME",
		Short: "Aggregate licenses across a package's dependency closure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLicenses(cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Direct, "direct", false, "Only direct dependencies")
	cmd.Flags().BoolVar(&opts.GroupByPackage, "by-package", false, "Group as package -> licenses instead of license -> packages")
	cmd.Flags().BoolVar(&opts.System, "system", false, "Include system packages from the rosdep closure")
	cmd.Flags().BoolVar(&opts.Write, "write", false, "Write a yaml report file")
	cmd.Flags().StringVar(&opts.Output, "output", "out", "Report output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runLicenses(cmd *cobra.Command, name string, opts licensesOptions) error {
	service := newAppService()
	result, err := service.Licenses(cmd.Context(), app.LicensesRequest{
		Name:           name,
		RosPaths:       rosPaths(cmd),
		Implicit:       !opts.Direct,
		GroupByLicense: !opts.GroupByPackage,
		IncludeSystem:  opts.System,
		WriteReport:    opts.Write,
	})
	if err != nil {
		return err
	}
	for _, key := range shared.SortedKeys(result.Groups) {
		fmt.Printf("%s: %s\n", key, strings.Join(result.Groups[key], ", "))
	}
	if result.ReportPath != "" {
		fmt.Printf("report written to %s\n", result.ReportPath)
	}
	return nil
}
