package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/minepkg/lunarpkg/internals/globals"
	"github.com/minepkg/lunarpkg/internals/loginrelay"
	"github.com/minepkg/lunarpkg/internals/utils"
	"github.com/spf13/cobra"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Hands login URLs to a running Lunar Client",
	Long: `Lunar Client asks the launcher for login URLs over a local connection.
"relay serve" answers those requests with the URLs you queue.`,
}

func init() {
	serve := &relayServeRunner{}
	serveCmd := commands.New(&cobra.Command{
		Use:   "serve [url...]",
		Short: "Starts the login relay",
		Long: `Starts the login relay and queues the given URLs.
More URLs can be queued by writing them to stdin, one per line.`,
		Example: `  lunarpkg relay serve "https://login.live.com/oauth20_authorize.srf?..."`,
	}, serve)
	serveCmd.Flags().StringVar(&serve.addr, "addr", loginrelay.DefaultAddr, "Address to listen on")
	serveCmd.Flags().BoolVar(&serve.stdin, "stdin", true, "Read more URLs from stdin")

	open := &relayOpenRunner{}
	openCmd := commands.New(&cobra.Command{
		Use:   "open-window",
		Short: "Asks a running relay for the next login URL (like Lunar Client does)",
		Args:  cobra.NoArgs,
	}, open)
	openCmd.Flags().StringVar(&open.addr, "addr", loginrelay.DefaultAddr, "Address of the relay")
	openCmd.Flags().BoolVar(&open.browser, "open", false, "Open the URL in the browser")

	relayCmd.AddCommand(serveCmd.Command, openCmd.Command)
	rootCmd.AddCommand(relayCmd)
}

type relayServeRunner struct {
	addr  string
	stdin bool
}

func (r *relayServeRunner) RunE(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	queue := loginrelay.NewAuthQueue()
	for _, url := range args {
		queue.Enqueue(url)
	}

	if r.stdin {
		go func() {
			if err := queue.EnqueueLines(os.Stdin); err != nil {
				log.Printf("[WARN] could not read URLs from stdin: %s", err)
			}
		}()
	}

	server := loginrelay.NewServer(queue)
	server.Addr = r.addr

	logger := globals.Logger
	logger.Headline("Login relay listening on " + r.addr)
	logger.Indent(2).Log(fmt.Sprintf("%d URLs queued, ctrl-c to stop", queue.Len()))
	if r.stdin && utils.IsInteractive() {
		logger.Indent(2).Info("Paste more login URLs here, one per line")
	}
	if err := server.ListenAndServe(ctx); err != nil {
		return &commands.CliError{
			Text: "could not start the login relay",
			Help: err.Error(),
			Suggestions: []string{
				"Make sure the official launcher is not running",
				"Use another address with --addr",
			},
			Err: err,
		}
	}
	if left := queue.Len(); left != 0 {
		logger.Warn(fmt.Sprintf("Stopped. %d URLs were not picked up", left))
	} else {
		logger.Success("Stopped")
	}
	return nil
}

type relayOpenRunner struct {
	addr    string
	browser bool
}

func (r *relayOpenRunner) RunE(cmd *cobra.Command, args []string) error {
	res, err := loginrelay.NewClient(r.addr).OpenWindow(context.Background())
	if err != nil {
		return err
	}

	if res.Status != loginrelay.StatusMatched {
		globals.Logger.Log(res.Status + " no login URL queued")
		return nil
	}

	globals.Logger.Success(res.Status + " " + res.URL)
	if r.browser {
		utils.OpenBrowser(res.URL)
	}
	return nil
}
