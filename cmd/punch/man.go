package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/punch/pkg/config"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

var manCmd = &cobra.Command{
	Use:    "man",
	Short:  "Generate man pages",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(c *cobra.Command, _ []string) error {
		manPage, err := mcobra.NewManPage(1, rootCmd)
		if err != nil {
			return err
		}

		manPage = manPage.
			WithSection("Environment", environSection()).
			WithSection("Files", "The configuration is read from $PUNCH_DATA_PATH/config.yaml, "+
				"or from $PUNCH_CONFIG_LOCATION when set. It is written with defaults on first run.").
			WithSection("Copyright", "(C) 2024 Charmbracelet, Inc.\n"+
				"Released under MIT license.")
		fmt.Fprintln(c.OutOrStdout(), manPage.Build(roff.NewDocument()))
		return nil
	},
}

// environSection lists every PUNCH_* variable with its default value.
func environSection() string {
	var b strings.Builder
	b.WriteString("Every setting can be overridden with an environment variable:\n")
	for _, kv := range config.DefaultConfig().Environ() {
		b.WriteString("\n" + kv)
	}
	b.WriteString("\nPUNCH_DEBUG=false\nPUNCH_VERBOSE=false")
	return b.String()
}
