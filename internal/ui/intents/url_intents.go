package intents

// CommandSource records where an executed command came from.
type CommandSource string

const (
	SourceURL     CommandSource = "URL"
	SourceEditor  CommandSource = "EDITOR"
	SourceHistory CommandSource = "HISTORY"
)

// AppStart is sent once when the UI starts. URL is the address the
// application was opened with, if any.
type AppStart struct {
	URL string
}

func (AppStart) isIntent() {}

// URLArgumentsChange is sent whenever a new deep link arrives.
type URLArgumentsChange struct {
	URL string
}

func (URLArgumentsChange) isIntent() {}

// ExecuteCommand queues a command (console command or Cypher) for execution.
type ExecuteCommand struct {
	Command string
	Source  CommandSource
}

func (ExecuteCommand) isIntent() {}

// SetContent replaces the editor content.
type SetContent struct {
	Message string
}

func (SetContent) isIntent() {}

// UnsupportedURLCommand reports a deep link whose cmd is not recognised.
type UnsupportedURLCommand struct {
	Command string
}

func (UnsupportedURLCommand) isIntent() {}
