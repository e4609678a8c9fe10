package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/noptexit/create-project-action/internal/action"
	"github.com/noptexit/create-project-action/pkg/actions"
	"github.com/noptexit/create-project-action/pkg/board"
	"github.com/noptexit/create-project-action/pkg/tools"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// These variables are set by the build process using ldflags.
var version = "version"
var commit = "commit"
var date = "date"

var (
	rootCmd = &cobra.Command{
		Use:     "create-project",
		Short:   "Create a GitHub project board with columns",
		Long:    `Create a project board for a repository and add its columns. Configuration is read from flags, the INPUT_ variables set by the Actions runner, and the default GITHUB_ variables.`,
		Version: fmt.Sprintf("Version: %s\nCommit: %s\nBuild Date: %s", version, commit, date),
		// failures are reported as workflow commands
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := actions.LoadInputs(viper.GetViper())
			if err != nil {
				actions.NewCommands(cmd.OutOrStdout()).Error(err.Error())
				return action.ErrFailed
			}

			return action.Run(cmd.Context(), action.Config{
				Version:    version,
				Inputs:     in,
				Stdout:     cmd.OutOrStdout(),
				OutputPath: os.Getenv("GITHUB_OUTPUT"),
			})
		},
	}

	stdioCmd = &cobra.Command{
		Use:   "stdio",
		Short: "Start stdio server",
		Long:  `Start an MCP server that communicates via standard input/output streams using JSON-RPC messages.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token := strings.TrimSpace(viper.GetString(actions.InputToken))
			if token == "" {
				return actions.ErrMissingToken
			}

			var enabledToolsets []string
			if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
				return fmt.Errorf("failed to unmarshal toolsets: %w", err)
			}

			return runStdioServer(cmd.Context(), stdioServerConfig{
				Token:           token,
				ServerURL:       viper.GetString(actions.InputServerURL),
				API:             viper.GetString(actions.InputAPI),
				ColumnField:     viper.GetString(actions.InputColumnField),
				EnabledToolsets: enabledToolsets,
				ReadOnly:        viper.GetBool("read-only"),
				LogFilePath:     viper.GetString("log-file"),
				LogLevel:        viper.GetString(actions.InputLogLevel),
			})
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(wordSepNormalizeFunc)
	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.String(actions.InputName, "", "Name of the project")
	flags.String(actions.InputDescription, "", "Description of the project")
	flags.Bool(actions.InputPrivate, false, "Keep the project private")
	flags.String(actions.InputColumns, "", "Column names separated by line breaks or commas")
	flags.String(actions.InputToken, "", "Token used to call the GitHub API (defaults to GITHUB_TOKEN)")
	flags.String(actions.InputRepository, "", "Repository as owner/repo (defaults to GITHUB_REPOSITORY)")
	flags.String(actions.InputAPI, actions.DefaultAPI, "Projects API to use: projects-v2 or classic")
	flags.String(actions.InputColumnField, actions.DefaultColumnField, "Name of the single select field holding the columns (projects-v2)")
	flags.String(actions.InputOnColumnError, actions.DefaultOnColumnError, "What to do when a column cannot be created: fail or continue")
	flags.String(actions.InputServerURL, "", "GitHub server URL (defaults to GITHUB_SERVER_URL)")
	flags.String(actions.InputLogLevel, actions.DefaultLogLevel, "Log level: debug, info, warn or error")

	flags.VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	stdioCmd.Flags().StringSlice("toolsets", tools.DefaultToolsets, "An optional comma separated list of groups of tools to allow, defaults to enabling all")
	stdioCmd.Flags().Bool("read-only", false, "Restrict the server to read-only operations")
	stdioCmd.Flags().String("log-file", "", "Path to log file")
	_ = viper.BindPFlag("toolsets", stdioCmd.Flags().Lookup("toolsets"))
	_ = viper.BindPFlag("read-only", stdioCmd.Flags().Lookup("read-only"))
	_ = viper.BindPFlag("log-file", stdioCmd.Flags().Lookup("log-file"))

	rootCmd.AddCommand(stdioCmd)
}

func initConfig() {
	if err := actions.BindEnv(viper.GetViper()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to bind environment: %v\n", err)
	}
}

func main() {
	// local runs may keep their variables in .env
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, action.ErrFailed) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

type stdioServerConfig struct {
	Token           string
	ServerURL       string
	API             string
	ColumnField     string
	EnabledToolsets []string
	ReadOnly        bool
	LogFilePath     string
	LogLevel        string
}

func runStdioServer(ctx context.Context, cfg stdioServerConfig) error {
	level, err := action.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	var slogHandler slog.Handler
	var logOutput io.Writer
	if cfg.LogFilePath != "" {
		file, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer file.Close()
		logOutput = file
	} else {
		logOutput = os.Stderr
	}
	slogHandler = slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level})
	logger := slog.New(slogHandler)
	logger.Info("starting server", "version", version, "toolsets", cfg.EnabledToolsets, "read-only", cfg.ReadOnly)

	clients, err := action.NewClients(cfg.ServerURL, cfg.Token, version, nil)
	if err != nil {
		return err
	}
	getService := func(_ context.Context, api string) (board.Service, error) {
		if api == "" {
			api = cfg.API
		}
		return action.NewService(api, cfg.ColumnField, clients, logger)
	}

	mcpServer, err := tools.NewServer(version, tools.DefaultToolsetGroup(cfg.ReadOnly, getService, logger), cfg.EnabledToolsets)
	if err != nil {
		return err
	}

	stdioServer := server.NewStdioServer(mcpServer)
	stdioServer.SetErrorLogger(log.New(logOutput, "stdioserver", 0))

	errC := make(chan error, 1)
	go func() {
		errC <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	_, _ = fmt.Fprintf(os.Stderr, "create-project MCP server running on stdio\n")

	select {
	case <-ctx.Done():
		logger.Info("shutting down server", "signal", "context done")
	case err := <-errC:
		if err != nil {
			logger.Error("error running server", "error", err)
			return fmt.Errorf("error running server: %w", err)
		}
	}
	return nil
}

func wordSepNormalizeFunc(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	from := []string{"_"}
	to := "-"
	for _, sep := range from {
		name = strings.ReplaceAll(name, sep, to)
	}

	return pflag.NormalizedName(name)
}
