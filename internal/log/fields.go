package log

// Standard component names, attached to every record through WithComponent.
const (
	ComponentApp    = "app"
	ComponentWorker = "worker"
)
