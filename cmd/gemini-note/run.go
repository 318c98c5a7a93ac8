package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/gemini-note/internal/ai"
	"github.com/CodexForgeBR/gemini-note/internal/banner"
	"github.com/CodexForgeBR/gemini-note/internal/config"
	"github.com/CodexForgeBR/gemini-note/internal/exitcode"
	"github.com/CodexForgeBR/gemini-note/internal/logging"
	"github.com/CodexForgeBR/gemini-note/internal/model"
	"github.com/CodexForgeBR/gemini-note/internal/notification"
	"github.com/CodexForgeBR/gemini-note/internal/schedule"
	sighandler "github.com/CodexForgeBR/gemini-note/internal/signal"
	"github.com/CodexForgeBR/gemini-note/internal/vault"
)

// scheduler delays runs started with --at.
var scheduler = &schedule.Waiter{}

// runGenerate sends the input file to Gemini and writes the answer as a
// note. It returns the process exit code.
func runGenerate(cmd *cobra.Command, flagCfg *config.Config, executor *ai.Executor) int {
	cfg, overrides, err := loadConfig(cmd, flagCfg)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	if cfg.Preset != "" {
		presets, err := config.LoadPresets(cfg.PresetsFile)
		if err != nil {
			logging.Error(err.Error())
			return exitcode.Error
		}
		p, err := config.FindPreset(presets, cfg.Preset)
		if err != nil {
			logging.Error(fmt.Sprintf("%v (presets file: %s)", err, cfg.PresetsFile))
			return exitcode.Error
		}
		config.ApplyPreset(cfg, p, overrides)
		cfg.Preset = p.Name
	}

	cfg.Model = model.OrDefault(strings.TrimSpace(cfg.Model))
	if err := model.Validate(cfg.Model, "model"); err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}
	if !model.IsKnown(cfg.Model) {
		logging.Warn(fmt.Sprintf("Model %q is not in the suggested list; sending it anyway", cfg.Model))
	}
	if strings.TrimSpace(cfg.Prompt) == "" {
		logging.Warn("Prompt is empty; Gemini receives only the attachment")
	}
	if cfg.APIKey == "" {
		logging.Error("API key not set (GEMINI_API_KEY, .env or --api-key)")
		return exitcode.Error
	}

	ctx, watcher := sighandler.Watch(context.Background(), func(s os.Signal) {
		logging.Warn("Received " + s.String() + ", aborting...")
	})
	defer watcher.Stop()

	attachment, err := vault.ReadAttachment(ctx, cfg.InputFile, cfg.MIMEType)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	banner.PrintStartupBanner(banner.Run{
		Preset:      cfg.Preset,
		Model:       cfg.Model,
		Input:       attachment.Name,
		MIMEType:    attachment.MIMEType,
		Size:        attachment.Size,
		Output:      cfg.Folder,
		IntervalSec: cfg.RetryIntervalSec,
		MaxWaitSec:  cfg.MaxRetryWaitSec,
	})

	sender := &notification.Sender{
		Webhook: cfg.NotifyWebhook,
		Channel: cfg.NotifyChannel,
		ChatID:  cfg.NotifyChatID,
	}
	details := notification.Details{Input: attachment.Name, Model: cfg.Model}
	notify := func(event string, code int) {
		details.ExitCode = code
		sender.Send(ctx, notification.FormatEvent(event, details))
	}

	if cfg.StartAt != "" {
		target, err := schedule.Parse(cfg.StartAt, time.Now())
		if err != nil {
			logging.Error(err.Error())
			return exitcode.Error
		}
		if err := scheduler.WaitUntil(ctx, target); err != nil {
			banner.PrintInterruptedBanner(0)
			notify(notification.EventInterrupted, exitcode.Interrupted)
			return exitcode.Interrupted
		}
	}

	logging.Notice("Generating...")
	start := time.Now()

	outcome, err := generate(ctx, executor, cfg, attachment)
	if err != nil {
		var reqErr *ai.RequestError
		if errors.As(err, &reqErr) {
			details.Attempts = reqErr.Attempts
		}
		if watcher.Interrupted() || errors.Is(err, context.Canceled) {
			banner.PrintInterruptedBanner(details.Attempts)
			notify(notification.EventInterrupted, exitcode.Interrupted)
			return exitcode.Interrupted
		}

		logging.Error("Error: " + err.Error())
		exhausted := reqErr != nil && reqErr.Exhausted
		reason := err.Error()
		if reqErr != nil && reqErr.Err != nil {
			reason = reqErr.Err.Error()
		}
		banner.PrintFailureBanner(details.Attempts, exhausted, reason)
		if exhausted {
			notify(notification.EventExhausted, exitcode.RequestFailed)
		} else {
			notify(notification.EventFailed, exitcode.RequestFailed)
		}
		return exitcode.RequestFailed
	}
	details.Attempts = outcome.Attempts

	if !outcome.HasText || outcome.Text == "" {
		logging.Notice("No text returned from Gemini; no note created.")
		banner.PrintNoTextBanner(outcome.Attempts)
		notify(notification.EventNoText, exitcode.NoText)
		return exitcode.NoText
	}

	store := vault.NewStore(cfg.OutputDir)
	notePath, err := store.CreateNote(context.WithoutCancel(ctx), cfg.Folder, attachment.Title, outcome.Text)
	if err != nil {
		logging.Error("Error: " + err.Error())
		return exitcode.Error
	}

	logging.Notice("Note created: " + notePath)
	banner.PrintNoteBanner(notePath, outcome.Attempts, time.Since(start).Seconds())
	details.Note = notePath
	notify(notification.EventNoteCreated, exitcode.Success)
	return exitcode.Success
}

func generate(ctx context.Context, executor *ai.Executor, cfg *config.Config, a *vault.Attachment) (*ai.Outcome, error) {
	req, err := ai.NewGenerationRequest(cfg.APIKey, cfg.Model, cfg.Prompt, a.MIMEType, a.Data)
	if err != nil {
		return nil, &ai.RequestError{Err: err}
	}
	policy, err := ai.NewRetryPolicy(cfg.RetryIntervalSec, cfg.MaxRetryWaitSec)
	if err != nil {
		return nil, &ai.RequestError{Err: err}
	}
	return executor.Execute(ctx, req, policy)
}
