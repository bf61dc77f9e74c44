package peer

import "testing"

func TestDispatcherInvokesInRegistrationOrder(t *testing.T) {
	d := newDispatcher()
	var order []int

	d.on("ping", func(c *Connection, msg interface{}, err error) { order = append(order, 1) })
	d.on("ping", func(c *Connection, msg interface{}, err error) { order = append(order, 2) })
	d.on("ping", func(c *Connection, msg interface{}, err error) { order = append(order, 3) })

	d.emit("ping", nil, nil)

	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestDispatcherOnlyInvokesRegisteredEvent(t *testing.T) {
	d := newDispatcher()
	fired := false
	d.on("connect", func(c *Connection, msg interface{}, err error) { fired = true })

	d.emit("disconnect", nil, nil)
	if fired {
		t.Fatal("listener for a different event fired")
	}

	d.emit("connect", nil, nil)
	if !fired {
		t.Fatal("listener did not fire for its own event")
	}
}

func TestDispatcherPassesErrorSeparatelyFromMessage(t *testing.T) {
	d := newDispatcher()
	testErr := errTest("boom")

	var gotErr error
	var gotMsg interface{}
	d.on("error", func(c *Connection, msg interface{}, err error) {
		gotErr = err
		gotMsg = msg
	})

	d.emit("error", nil, testErr)

	if gotErr != testErr {
		t.Errorf("gotErr = %v, want %v", gotErr, testErr)
	}
	if gotMsg != nil {
		t.Errorf("gotMsg = %v, want nil", gotMsg)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
