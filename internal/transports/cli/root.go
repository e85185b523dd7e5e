package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"telegrambridge/internal/app"
	"telegrambridge/internal/config"
	"telegrambridge/internal/core"
	"telegrambridge/pkg/logger"
)

const msgNoCommand = "Command not specified."

type options struct {
	configPath string
	envFile    string
}

// New создает корневую CLI-команду: telegram <command> [token].
func New(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "telegram <command> [token]",
		Short: "Мост stdin/stdout к Telegram Bot API",
		Long: "Выполняет одну команду Bot API. Аргументы команды читаются из stdin как JSON-объект,\n" +
			"результат пишется в stdout, ошибка пишется в stderr как {\"error\": \"...\"}.\n\n" +
			"Команды: " + fmt.Sprint(core.CommandNames()),
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	root.Flags().StringVar(&opts.configPath, "config", "", "путь к YAML-конфигу (по умолчанию $"+config.EnvPath+")")
	root.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv-файл с переменными окружения")
	return root
}

// Execute выполняет один вызов и возвращает код завершения процесса.
func Execute(ctx context.Context, argv []string, in io.Reader, out, errOut io.Writer, version string) int {
	root := New(version)
	root.SetArgs(argv)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.ExecuteContext(ctx); err != nil {
		_ = writeJSON(errOut, map[string]string{"error": err.Error()})
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	if len(args) == 0 {
		return core.RequestError(msgNoCommand)
	}
	command := args[0]

	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	w, closeLog, err := logger.Output(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = closeLog() }()
	lg := logger.New(w, cfg.Log.Level)

	token := os.Getenv(cfg.Telegram.TokenEnv)
	if len(args) > 1 {
		token = args[1]
	}

	a, err := app.NewApp(cmd.Context(), cfg, lg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	res, err := a.Run(cmd.Context(), command, token, readArgs(cmd.InOrStdin()))
	if err != nil {
		lg.Debug("command failed", "command", command, "err", err)
		return err
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

// readArgs читает stdin целиком; ошибка чтения равносильна пустому вводу.
func readArgs(in io.Reader) core.Args {
	if in == nil {
		return core.Args{}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return core.Args{}
	}
	return core.ParseArgs(data)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
