// Package cli provides help text and usage formatting for the gemini-note CLI.
package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `gemini-note - Send an attachment and a prompt to Gemini, save the answer as a note

USAGE
  gemini-note [flags] <file>
  gemini-note models
  gemini-note presets

COMMANDS
  models                                 List the suggested Gemini models
  presets                                List presets from the presets file

FLAGS
  Input:
    -f, --file <path>                    Attachment to send (or pass it as the argument)
    --mime-type <type>                   Attachment MIME type (default: from extension, else application/pdf)

  Preset, Model & Prompt:
    -p, --preset <name>                  Preset name from the presets file
    -m, --model <model>                  Gemini model (default: gemini-2.5-flash)
    --prompt <text>                      Prompt sent with the attachment
    --api-key <key>                      Gemini API key (prefer GEMINI_API_KEY or .env)

  Output:
    -o, --output-dir <path>              Vault root the note is written below (default: .)
    --folder <path>                      Folder inside the vault (overrides the preset's outputPath)

  Retry Policy:
    --retry-interval <seconds>           Seconds between retries while Gemini is unavailable (default: 5)
    --max-retry-wait <seconds>           Maximum total seconds spent waiting between retries (default: 60)

  Scheduling:
    --at <time>                          Send the request at this time (HH:MM, YYYY-MM-DD HH:MM, YYYY-MM-DD, +90m)

  Configuration:
    --config <path>                      Path to additional config file
    --env-file <path>                    Path to .env file (default: .env)
    --presets-file <path>                Path to presets YAML file (default: .gemini-note/presets.yaml)
    -v, --verbose                        Show debug output

  Notifications:
    --notify-webhook <url>               OpenClaw webhook URL (default: http://127.0.0.1:18789/webhook)
    --notify-channel <channel>           Notification channel (default: telegram)
    --notify-chat-id <id>                Recipient chat ID (required to enable notifications)

  Help & Version:
    -h, --help                           Show this help text
    --version                            Show version, commit, build date

EXIT CODES
  0   Success              Note created
  1   Error                Invalid arguments, file not found, misconfiguration
  2   RequestFailed        Gemini request failed or stayed unavailable past --max-retry-wait
  3   NoText               Gemini returned no text; no note created
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Summarize a paper with the default model
  gemini-note --prompt "Summarize this paper." paper.pdf

  # Run a preset, writing into its output folder below the vault
  gemini-note -p Translate -o ~/Vault paper.pdf

  # Keep retrying an overloaded model for up to five minutes
  gemini-note -p Translate --retry-interval 10 --max-retry-wait 300 paper.pdf

  # Wait until off-peak hours before sending
  gemini-note -p Translate --at 02:00 paper.pdf

For more information, see: https://github.com/CodexForgeBR/gemini-note
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
