package peer

import "sync"

// EventHandler is invoked when its registered event fires. msg is nil
// for "connect" and "disconnect"; err is nil except for "error".
type EventHandler func(c *Connection, msg interface{}, err error)

// dispatcher holds one listener list per event name and invokes them
// synchronously, in registration order, on the goroutine that decoded
// the frame -- so listener execution for one connection always
// matches on-wire arrival order.
type dispatcher struct {
	mu        sync.Mutex
	listeners map[string][]EventHandler
}

func newDispatcher() *dispatcher {
	return &dispatcher{listeners: make(map[string][]EventHandler)}
}

func (d *dispatcher) on(event string, fn EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[event] = append(d.listeners[event], fn)
}

func (d *dispatcher) emit(event string, c *Connection, arg interface{}) {
	d.mu.Lock()
	handlers := append([]EventHandler(nil), d.listeners[event]...)
	d.mu.Unlock()

	var err error
	if e, ok := arg.(error); ok {
		err = e
		arg = nil
	}
	for _, h := range handlers {
		h(c, arg, err)
	}
}
