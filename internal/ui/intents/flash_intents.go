package intents

type CommandHistoryToggle struct{}

func (CommandHistoryToggle) isIntent() {}

type CommandHistoryNavigate struct{ Delta int }

func (CommandHistoryNavigate) isIntent() {}

type CommandHistoryClose struct{}

func (CommandHistoryClose) isIntent() {}

type CommandHistoryDeleteSelected struct{}

func (CommandHistoryDeleteSelected) isIntent() {}

type CommandHistoryApply struct{}

func (CommandHistoryApply) isIntent() {}

type AddMessage struct {
	Text   string
	Err    error
	Sticky bool
}

func (AddMessage) isIntent() {}

type DismissOldest struct{}

func (DismissOldest) isIntent() {}

type ClearMessages struct{}

func (ClearMessages) isIntent() {}
