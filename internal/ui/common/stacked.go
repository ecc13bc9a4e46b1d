package common

// StackedModel is the contract for models presented as an overlay above the
// editor. It includes the action owner so scope resolution can dispatch
// keys to it first.
type StackedModel interface {
	Model
	StackedActionOwner() string
}
