package screensaver

import (
	"context"
	"fmt"
	"testing"

	"github.com/genricoloni/mpdisplay/internal/config"
	"github.com/genricoloni/mpdisplay/internal/screensaver/mocks"
	"github.com/godbus/dbus/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestInhibitor(client DBusClient, connectErr error) *Inhibitor {
	cfg := config.Default()
	inh := NewInhibitor(zap.NewNop(), cfg)
	inh.connect = func() (DBusClient, error) {
		if connectErr != nil {
			return nil, connectErr
		}
		return client, nil
	}
	return inh
}

// TestInhibitor_Lifecycle covers inhibit, a repeated inhibit and release
func TestInhibitor_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDBusClient(ctrl)

	gomock.InOrder(
		client.EXPECT().
			Call(busName, objectPath, "org.freedesktop.ScreenSaver.Inhibit", appName, reason).
			Return(&dbus.Call{Body: []interface{}{uint32(77)}}),
		client.EXPECT().
			Call(busName, objectPath, "org.freedesktop.ScreenSaver.UnInhibit", uint32(77)).
			Return(&dbus.Call{}),
		client.EXPECT().Close().Return(nil),
	)

	inh := newTestInhibitor(client, nil)
	ctx := context.Background()

	if err := inh.Inhibit(ctx); err != nil {
		t.Fatalf("Inhibit failed: %v", err)
	}
	// second call is a no-op
	if err := inh.Inhibit(ctx); err != nil {
		t.Fatalf("repeated Inhibit failed: %v", err)
	}
	if inh.cookie != 77 {
		t.Errorf("expected cookie 77, got %d", inh.cookie)
	}
	if err := inh.Release(ctx); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if inh.active {
		t.Error("inhibitor should be inactive after release")
	}
}

func TestInhibitor_Errors(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(*mocks.MockDBusClient)
		connectErr error
	}{
		{
			name:       "No Session Bus",
			setupMock:  func(*mocks.MockDBusClient) {},
			connectErr: fmt.Errorf("no DBUS_SESSION_BUS_ADDRESS"),
		},
		{
			name: "Service Missing",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().Call(busName, objectPath, gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&dbus.Call{Err: fmt.Errorf("org.freedesktop.DBus.Error.ServiceUnknown")})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(client)

			inh := newTestInhibitor(client, tt.connectErr)
			if err := inh.Inhibit(context.Background()); err == nil {
				t.Error("expected Inhibit to fail")
			}
			if inh.active {
				t.Error("failed inhibit must not be active")
			}
		})
	}
}

func TestInhibitor_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Display.InhibitScreensaver = false
	inh := NewInhibitor(zap.NewNop(), cfg)
	inh.connect = func() (DBusClient, error) {
		t.Fatal("disabled inhibitor must not touch the bus")
		return nil, nil
	}

	if err := inh.Inhibit(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := inh.Release(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
