// Package command maps chat commands to replies.
package command

import (
	"context"
	"fmt"
	"strings"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/app/report"
	"masonry_tracker/internal/pkg/metrics"
)

const (
	CommandHelp  = "help"
	CommandStats = "stats"

	helpHeader   = "These commands are supported:"
	errorPrefix  = "an error has occurred: "
	unknownLabel = "unknown"
)

// Command is a chat command with its help line.
type Command struct {
	Name        string
	Description string
}

// Commands lists the supported commands in help order.
var Commands = []Command{
	{Name: CommandHelp, Description: "display this text."},
	{Name: CommandStats, Description: "view your stats."},
}

// Dispatcher turns command text into reply text. It never returns an error: failures
// become the reply.
type Dispatcher struct {
	stats   port.StatsService
	wallets port.WalletProvider
	logger  port.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(stats port.StatsService, wallets port.WalletProvider, logger port.Logger) *Dispatcher {
	return &Dispatcher{stats: stats, wallets: wallets, logger: logger}
}

// Handle answers one command. Unknown commands get the help text.
func (d *Dispatcher) Handle(ctx context.Context, text string) string {
	name := Parse(text)
	switch name {
	case CommandHelp:
		metrics.CommandsTotal.WithLabelValues(CommandHelp, metrics.Result(nil)).Inc()
		return HelpText()
	case CommandStats:
		reply, err := d.handleStats(ctx)
		metrics.CommandsTotal.WithLabelValues(CommandStats, metrics.Result(err)).Inc()
		if err != nil {
			d.logger.Error("Stats command failed", "error", err)
			return errorPrefix + err.Error()
		}
		return reply
	default:
		metrics.CommandsTotal.WithLabelValues(unknownLabel, metrics.Result(nil)).Inc()
		d.logger.Debug("Unknown command, replying with help", "text", text)
		return HelpText()
	}
}

func (d *Dispatcher) handleStats(ctx context.Context) (string, error) {
	wallet, err := d.wallets.GetWallet()
	if err != nil {
		return "", fmt.Errorf("failed to load wallet: %w", err)
	}
	stats, err := d.stats.MasonryStats(ctx, wallet)
	if err != nil {
		return "", err
	}
	return report.FormatMasonryStats(stats), nil
}

// Parse extracts the lowercase command name from "/stats@bot extra" style text.
func Parse(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	name := strings.TrimPrefix(fields[0], "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name)
}

// HelpText lists every command with its description.
func HelpText() string {
	var b strings.Builder
	b.WriteString(helpHeader)
	for _, c := range Commands {
		b.WriteString("\n/" + c.Name + " - " + c.Description)
	}
	return b.String()
}
