package intents

type Quit struct{}

func (Quit) isIntent() {}

// HelpToggle opens the key binding overview, or closes it when open.
type HelpToggle struct{}

func (HelpToggle) isIntent() {}

// HelpClose leaves search mode first, then closes the overview.
type HelpClose struct{}

func (HelpClose) isIntent() {}
