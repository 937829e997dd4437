package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urbit-pilled/gritql/internal/lang"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the registered target languages",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range lang.All() {
			if aliases := l.Aliases(); len(aliases) > 0 {
				fmt.Printf("%s (aliases: %s)\n", l.Name(), strings.Join(aliases, ", "))
			} else {
				fmt.Println(l.Name())
			}
		}
	},
}
