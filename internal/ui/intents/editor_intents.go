package intents

type EditorExecute struct{}

func (EditorExecute) isIntent() {}

type EditorClear struct{}

func (EditorClear) isIntent() {}

// EditorHistoryNavigate walks through previously executed editor content.
// Negative deltas go back in time.
type EditorHistoryNavigate struct {
	Delta int
}

func (EditorHistoryNavigate) isIntent() {}

type CompletionCycle struct {
	Reverse bool
}

func (CompletionCycle) isIntent() {}

type CompletionMove struct {
	Delta int
}

func (CompletionMove) isIntent() {}

type CompletionApply struct{}

func (CompletionApply) isIntent() {}

type Cancel struct{}

func (Cancel) isIntent() {}
