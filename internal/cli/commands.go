// Package cli builds the rigup command tree. The root command runs the
// bootstrap; the subcommands are there to inspect and prepare for one.
package cli

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeldee/rigup/internal/version"
	"github.com/joeldee/rigup/pkg/cobrax/topics"
	"github.com/joeldee/rigup/pkg/config"
	"github.com/joeldee/rigup/pkg/logging"
	"github.com/joeldee/rigup/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		dryRun     bool
		force      bool
		configFile string
		format     string
	)

	rootCmd := &cobra.Command{
		Use:     "rigup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(cmd, runOptions{
				ConfigFile: configFile,
				Format:     format,
				DryRun:     dryRun,
				Force:      force,
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, MsgFlagForce)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", MsgFlagFormat)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Add all commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help from the embedded topic files. The binary
	// runs on machines with nothing else installed, so the docs ship inside.
	topicOpts := topics.Options{
		Extensions: []string{".md", ".txt"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.InitializeWithOptions(rootCmd, topicFiles, topicOpts); err != nil {
		// Command help still works without the topics
		log.Debug().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig builds the effective configuration and the path set derived
// from it. An empty configFile means the default location.
func loadConfig(configFile string) (*config.Config, paths.Paths, error) {
	if configFile == "" {
		boot, err := paths.New("", "")
		if err != nil {
			return nil, nil, fmt.Errorf(MsgErrInitPaths, err)
		}
		configFile = boot.ConfigFilePath()
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	p, err := paths.New(cfg.Repo.WorkDir, cfg.Credentials.VaultPassFile)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	return cfg, p, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf(MsgVersionFormat, version.Version)
			fmt.Printf(MsgCommitFormat, version.Commit)
			fmt.Printf(MsgBuiltFormat, version.Date)
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Root().PersistentFlags().GetString("config")

			cfg, _, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			rendered, err := config.RenderEffective(cfg)
			if err != nil {
				return fmt.Errorf(MsgErrRenderConfig, err)
			}

			fmt.Print(rendered)
			return nil
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			content := config.GenerateConfigContent()

			if !write {
				fmt.Print(content)
				return nil
			}

			p, err := paths.New("", "")
			if err != nil {
				return fmt.Errorf(MsgErrInitPaths, err)
			}

			target := p.ConfigFilePath()
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s already exists, edit it or remove it first", target)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}

			fmt.Printf(MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)

	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: MsgTopicsShort,
		Long:  MsgTopicsLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
