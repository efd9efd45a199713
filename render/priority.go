package render

// LayerPriority determines composition order. Lower values are drawn first
type LayerPriority int

const (
	PriorityBackground LayerPriority = iota
	PriorityPlayer
	PriorityEntities
	PriorityHUD
)
