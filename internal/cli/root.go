package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/sievetools/diffsieve/internal/config"
	"github.com/sievetools/diffsieve/internal/filter"
	"github.com/sievetools/diffsieve/internal/gitroot"
	"github.com/sievetools/diffsieve/internal/ignore"
	"github.com/sievetools/diffsieve/internal/relay"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// Exit codes are the externally observable contract.
const (
	ExitSuccess = 0
	ExitConfig  = 1
	ExitIO      = 2
	ExitNoRepo  = 3
)

var (
	flagDownstream string
	flagVcs        bool
	flagNoVcs      bool
	flagVcsPattern string
)

var rootCmd = &cobra.Command{
	Use:   "diffsieve",
	Short: "Filter gitignored files out of a git diff stream",
	Long: "Diffsieve reads a unified git diff on stdin and re-emits only the entries\n" +
		"for files not excluded by .gitignore rules or VCS metadata patterns,\n" +
		"optionally piping the result through a downstream filter such as a\n" +
		"syntax highlighter. It is designed to sit inside a git pager pipeline.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitIO
			return
		}
		exitCode = run(os.Stdin, os.Stdout, os.Stderr, wd, overrides())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagDownstream, "downstream", "d", "", "Pipe filtered output to downstream command")
	rootCmd.Flags().BoolVar(&flagVcs, "vcs", false, "Enable VCS ignore filtering (overrides git config)")
	rootCmd.Flags().BoolVar(&flagNoVcs, "no-vcs", false, "Disable VCS ignore filtering (overrides git config)")
	rootCmd.Flags().StringVar(&flagVcsPattern, "vcs-pattern", "", "Comma-separated VCS patterns (e.g. '.git/,.svn/')")
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitConfig
	}
	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print diffsieve version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "diffsieve version %s\n", version)
	},
}

func overrides() config.CliOverrides {
	return config.CliOverrides{
		Downstream:  flagDownstream,
		Vcs:         flagVcs,
		NoVcs:       flagNoVcs,
		VcsPatterns: flagVcsPattern,
	}
}

// run executes the whole pipeline and returns the process exit code.
// Root and configuration are resolved before any byte is written, so
// a misconfigured run never emits a partially filtered stream.
func run(in io.Reader, out, errOut io.Writer, startDir string, ov config.CliOverrides) int {
	root, err := gitroot.Resolve(startDir)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return ExitNoRepo
	}

	cfg, err := config.Resolve(ov, config.NewGitReader(root.ConfigDir()))
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return ExitConfig
	}

	f := filter.New(ignore.NewMatcher(root.WorkTree), cfg.Vcs)

	if cfg.Downstream != "" {
		return runWithDownstream(f, in, out, errOut, cfg.Downstream)
	}

	bw := bufio.NewWriter(out)
	if err := f.Run(in, bw); err != nil {
		return ioResult(err, errOut)
	}
	if err := bw.Flush(); err != nil {
		return ioResult(err, errOut)
	}
	return ExitSuccess
}

func runWithDownstream(f *filter.Filter, in io.Reader, out, errOut io.Writer, command string) int {
	rl, err := relay.Start(command, out)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return ExitConfig
	}

	runErr := f.Run(in, rl)
	code, closeErr := rl.Close()

	if runErr != nil {
		return ioResult(runErr, errOut)
	}
	if closeErr != nil {
		fmt.Fprintf(errOut, "Error: %v\n", closeErr)
		return ExitIO
	}
	// A downstream process's own failure becomes our exit status.
	return code
}

// ioResult maps a pipeline error to an exit code. A broken pipe on
// the output side means the consumer (typically a pager) quit early,
// which is a normal shutdown, not a failure.
func ioResult(err error, errOut io.Writer) int {
	if errors.Is(err, syscall.EPIPE) {
		return ExitSuccess
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	return ExitIO
}
