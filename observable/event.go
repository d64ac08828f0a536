package observable

// PropertyEvent is delivered to subscribers of the changing and changed channels.
type PropertyEvent struct {
	// Sender is the owner passed to Init.
	Sender any
	// Name is the property being announced.
	Name string
}

// IsFor reports whether the event concerns the property name. An event with no name
// concerns every property.
func (e PropertyEvent) IsFor(name string) bool {
	return e.Name == "" || e.Name == name
}

// Handler receives property events.
type Handler func(PropertyEvent)

// ChangingHook is implemented by owners that want to observe their own changing
// notifications. It is called after the subscribers for each announced name.
type ChangingHook interface {
	PropertyChanging(name string)
}

// ChangedHook is implemented by owners that want to observe their own changed
// notifications. It is called after the subscribers for each announced name.
type ChangedHook interface {
	PropertyChanged(name string)
}
