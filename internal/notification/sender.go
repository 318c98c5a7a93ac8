package notification

import (
	"context"
	"os/exec"
	"time"

	"github.com/CodexForgeBR/gemini-note/internal/logging"
)

// DefaultCommand is the openclaw executable looked up on PATH.
const DefaultCommand = "openclaw"

// DefaultTimeout bounds a single send.
const DefaultTimeout = 10 * time.Second

// Sender delivers messages through the openclaw CLI.
type Sender struct {
	Webhook string
	Channel string
	ChatID  string
	// Command overrides DefaultCommand.
	Command string
	// Timeout overrides DefaultTimeout.
	Timeout time.Duration
}

// Enabled reports whether a chat is configured.
func (s *Sender) Enabled() bool {
	return s != nil && s.ChatID != ""
}

// Send delivers message and waits at most Timeout for openclaw to finish.
// Failures are logged at debug level and never returned; a notification
// must not change the outcome of a run. No-op when ChatID is empty.
func (s *Sender) Send(ctx context.Context, message string) {
	if !s.Enabled() {
		return
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	command := s.Command
	if command == "" {
		command = DefaultCommand
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, "message", "send",
		"--webhook", s.Webhook,
		"--channel", s.Channel,
		"--chat-id", s.ChatID,
		"--message", message,
	)
	if err := cmd.Run(); err != nil {
		logging.Debug("notification not delivered: " + err.Error())
	}
}
