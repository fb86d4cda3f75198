package cmd

const DESCRIPTION = `
nudge turns plain language into reminders and email. Reminders are
handed to the operating system scheduler (systemd, at, launchd or
Task Scheduler) so they fire even when nudge is not running. Emails
are drafted by a language model and sent over SMTP.
`

const (
	RemindDescription = `The remind command parses a reminder from plain text and
registers a one-shot notification with the OS scheduler.
Recognized forms are "remind me to <task> in <n> minutes|hours|days",
"schedule|set <task> for <date>" and any text containing an
ISO timestamp. When a language model is configured it is
asked about text the built-in parser does not understand.

Example:
        nudge remind me to drink water in 10 minutes
        nudge remind set dentist for Dec 1, 2025 09:30
        nudge remind --task "stand up" --in-minutes 30
        nudge remind --task "pay rent" --at 2025-12-01T09:00:00Z

`
	CancelDescription = `The cancel command removes the OS registration and files
of a reminder using the id printed by "nudge remind".

Example:
        nudge remind cancel 1764579600000-1a2b3c4d

`
	EmailDescription = `The email command asks the language model for a subject
and body about a topic, then sends the result over SMTP.
Use --dry-run to print the draft instead of sending it.

Example:
        nudge email --to bob@example.com --topic "lunch on friday" --tone casual

`
	DraftDescription = `The draft command prints a generated email without sending it.

Example:
        nudge draft --to bob@example.com --topic "quarterly report"

`
	SendDescription = `The send command sends an email with the given subject and
body over SMTP. Plain text bodies are converted to HTML.

Example:
        nudge send --to bob@example.com --subject Hi --body "See you at noon."

`
	WatchDescription = `The watch command keeps reminders in this process instead of
the OS scheduler and shows a notification when each is due.
It exits once every one-shot reminder has fired, or on
interrupt. With --repeat the arguments are the task and the
cron expression decides when it fires.

Example:
        nudge watch "remind me to stretch in 20 minutes" "remind me to eat in 1 hour"
        nudge watch --repeat "*/30 9-17 * * 1-5" drink water

`
	ServeDescription = `The serve command exposes reminders and email over HTTP.

Example:
        nudge serve --addr 127.0.0.1:8080

`
	SetSecretDescription = `The set-secret command stores the SMTP password or the
language model API key in the OS keyring. Without a value
it is read from standard input.

Example:
        nudge config set-secret openai sk-...
        echo "hunter2" | nudge config set-secret smtp

`
)
