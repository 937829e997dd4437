package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/urbit-pilled/gritql/internal/compiler"
	"github.com/urbit-pilled/gritql/internal/lang"
	"github.com/urbit-pilled/gritql/internal/rule"
)

var (
	explainLanguage string
	explainRHS      bool
)

var explainCmd = &cobra.Command{
	Use:   "explain [pattern]",
	Short: "Compile a single pattern expression and dump its compiled form",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		l, err := lang.Resolve(explainLanguage)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}

		node, err := rule.ParseSnippet(args[0])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}

		ctx := compiler.NewContext(l)
		compiled, err := compiler.CompileCodeSnippet(node, ctx, explainRHS)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(compiled)
		for _, v := range ctx.Variables() {
			fmt.Printf("%s -> %d at %v\n", v.Name, v.Index, ctx.Occurrences(v.Name))
		}
	},
}

func init() {
	explainCmd.Flags().StringVarP(&explainLanguage, "language", "l", "go", "target language of the pattern")
	explainCmd.Flags().BoolVar(&explainRHS, "rhs", false, "compile as the rewrite side of a rule")
}
