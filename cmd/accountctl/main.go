// accountctl is a terminal rendition of the worker account page: it shows the
// accrued activity count, the derived credits and payment due, and drives the
// payment request → approval → reset workflow against the payout server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ashaconnect/payout-system/internal/client/account"
	"github.com/ashaconnect/payout-system/internal/infrastructure/config"
	"github.com/ashaconnect/payout-system/pkg/logger"
)

type terminalNotifier struct{}

func (terminalNotifier) Notify(message string) {
	fmt.Println(message)
}

func main() {
	var (
		action   = flag.String("action", "status", "one of: login, status, request, reset, watch")
		email    = flag.String("email", "", "email for -action login")
		password = flag.String("password", "", "password for -action login")
		count    = flag.Int("count", -1, "override the cached activity count before acting")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	store, err := openStore()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open account store")
	}

	client := account.NewClient(cfg.Client.ServerURL, cfg.Client.Timeout, log)
	ctrl := account.NewController(store, client, terminalNotifier{}, log)

	ctx := context.Background()

	if *action == "login" {
		if *email == "" || *password == "" {
			log.Fatal().Msg("-action login requires -email and -password")
		}
		_, username, err := client.Login(ctx, *email, *password)
		if err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
		if err := store.Set("username", username); err != nil {
			log.Fatal().Err(err).Msg("failed to store username")
		}
		fmt.Printf("Logged in as %s\n", username)
		return
	}

	state := ctrl.Load()
	if state.Username == "" {
		log.Fatal().Msg("not logged in, run -action login first")
	}

	if *count >= 0 {
		if err := store.Set("count_"+state.Username, fmt.Sprintf("%d", *count)); err != nil {
			log.Fatal().Err(err).Msg("failed to store count")
		}
		state = ctrl.Load()
	}

	if err := ctrl.Sync(ctx); err != nil {
		log.Warn().Err(err).Msg("could not reach the server, showing cached state")
	}

	switch *action {
	case "status":
		printState(ctrl.Snapshot())
	case "request":
		if err := ctrl.SubmitRequest(ctx); err != nil {
			log.Fatal().Err(err).Msg("payment request failed")
		}
	case "reset":
		if err := ctrl.Reset(ctx); err != nil {
			log.Fatal().Err(err).Msg("payment reset failed")
		}
	case "watch":
		fmt.Println("Watching payment status, Ctrl-C to stop.")
		ctrl.Run(ctx, cfg.Client.PollInterval)
	default:
		log.Fatal().Str("action", *action).Msg("unknown action")
	}
}

func printState(state account.State) {
	fmt.Printf("Account: %s\n", state.Username)
	fmt.Printf("  Patients attended: %d\n", state.Count)
	fmt.Printf("  Credits earned:    %d\n", state.Credits)
	fmt.Printf("  Payment due:       %d\n", state.Payment)
	fmt.Printf("  Request status:    %s\n", state.Status)
	if state.CanReset() {
		fmt.Println("Payment approved - run -action reset to clear it.")
	}
}

func openStore() (*account.FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return account.OpenFileStore(filepath.Join(home, ".asha-account.json"))
}
