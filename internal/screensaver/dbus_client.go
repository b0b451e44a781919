package screensaver

import (
	"github.com/godbus/dbus/v5"
)

// DBusClient defines the interface for D-Bus operations.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/genricoloni/mpdisplay/internal/screensaver DBusClient
type DBusClient interface {
	// Close closes the D-Bus connection
	Close() error

	// Call invokes a method on a D-Bus object
	// dest: The bus name (e.g., "org.freedesktop.ScreenSaver")
	// path: The object path (e.g., "/org/freedesktop/ScreenSaver")
	// method: The fully qualified method (e.g., "org.freedesktop.ScreenSaver.Inhibit")
	Call(dest, path, method string, args ...interface{}) *dbus.Call
}

// StdDBusClient is the real implementation using godbus
type StdDBusClient struct {
	conn *dbus.Conn
}

// NewStdDBusClient creates a real D-Bus client connected to the session bus
func NewStdDBusClient() (*StdDBusClient, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return &StdDBusClient{conn: conn}, nil
}

// Close closes the D-Bus connection
func (c *StdDBusClient) Close() error {
	return c.conn.Close()
}

// Call invokes a method on a D-Bus object
func (c *StdDBusClient) Call(dest, path, method string, args ...interface{}) *dbus.Call {
	return c.conn.Object(dest, dbus.ObjectPath(path)).Call(method, 0, args...)
}
