package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/aliGhadyani/loupe/internal/config"
	"github.com/aliGhadyani/loupe/internal/language"
	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List recognized languages and their reviewers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig, nil)
		if err != nil {
			return err
		}

		tags := language.Known()
		sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

		for _, tag := range tags {
			reviewer := "generative (" + cfg.Provider + "/" + cfg.Model + ")"
			if cfg.Mode == "static" {
				if tool, _, ok := cfg.ToolFor(string(tag)); ok {
					reviewer = "static (" + tool + ")"
				} else {
					reviewer = "fallback"
				}
			}
			fmt.Fprintf(os.Stdout, "%-12s %s\n", tag, reviewer)
		}
		fmt.Fprintf(os.Stdout, "%-12s fallback\n", language.TagText)
		return nil
	},
}
