package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/urbit-pilled/gritql/internal/compiler"
	"github.com/urbit-pilled/gritql/internal/report"
	"github.com/urbit-pilled/gritql/internal/rule"
)

var watchMode bool

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile YAML rule files and report the resulting patterns",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		if watchMode {
			runWatch(args)
			return
		}
		if failed := compileFiles(args); failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	compileCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "recompile rule files on change")
}

// compileFiles compiles every rule in every file and returns the number of
// rules that failed.
func compileFiles(paths []string) int {
	var bar *progressbar.ProgressBar
	if len(paths) > 1 {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("compiling rule files"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	failed := 0
	for _, path := range paths {
		failed += compileFile(path)
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Println()
	}
	return failed
}

func compileFile(path string) int {
	rules, err := rule.Load(path)
	if err != nil {
		logger.Error("Error loading rule file", zap.String("path", path), zap.Error(err))
		return 1
	}

	failed := 0
	for _, r := range rules {
		compiled, err := compiler.CompileRule(r)
		if err != nil {
			fmt.Print(report.FormatError(r.Name, err))
			failed++
			continue
		}
		fmt.Print(report.FormatRule(compiled))
	}
	return failed
}

// runWatch compiles the given rule files once, then recompiles a file
// whenever it is written.
func runWatch(paths []string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Fatal("Failed to create watcher", zap.Error(err))
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			logger.Fatal("Error adding file to watcher", zap.String("path", path), zap.Error(err))
		}
	}

	compileFiles(paths)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write && isRuleFile(event.Name) {
				// wait for a while after file change to consider multiple changes as one
				time.Sleep(100 * time.Millisecond)
				logger.Info("Recompiling", zap.String("path", event.Name))
				compileFile(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}

var ruleFileExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

func isRuleFile(path string) bool {
	return ruleFileExtensions[filepath.Ext(path)]
}
