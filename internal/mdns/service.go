// Package mdns advertises the colorhash server on the local network through
// the system Avahi daemon.
package mdns

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/holoplot/go-avahi"

	"github.com/listenupapp/colorhash/internal/domain"
)

const (
	// ServiceType is the DNS-SD service type for colorhash servers.
	ServiceType = "_colorhash._tcp"

	// APIVersion is the HTTP API version advertised in TXT records.
	APIVersion = "v1"

	serviceDomain = "local"
)

// ErrInvalidPort is returned for ports outside 1..65535.
var ErrInvalidPort = errors.New("invalid port")

// Service manages the Avahi entry group for the server.
// Advertisement failures are reported to the caller, who is expected to log
// them and carry on (no system bus in containers is common).
type Service struct {
	logger *slog.Logger
	bus    func() (*dbus.Conn, error)

	mu     sync.Mutex
	server *avahi.Server
	group  *avahi.EntryGroup
}

// NewService creates a new mDNS service.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
		bus:    dbus.SystemBus,
	}
}

// TXTRecords returns the DNS-SD TXT entries describing instance.
func TXTRecords(instance *domain.Instance) [][]byte {
	return [][]byte{
		[]byte("id=" + instance.ID),
		[]byte("name=" + instance.Name),
		[]byte("version=" + instance.Version),
		[]byte("api=" + APIVersion),
	}
}

// Start publishes the service. Calling it again replaces the previous entry.
func (s *Service) Start(instance *domain.Instance, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	conn, err := s.bus()
	if err != nil {
		return fmt.Errorf("connect to system bus: %w", err)
	}

	server, err := avahi.ServerNew(conn)
	if err != nil {
		return fmt.Errorf("connect to avahi: %w", err)
	}

	group, err := server.EntryGroupNew()
	if err != nil {
		server.Close()
		return fmt.Errorf("create entry group: %w", err)
	}

	host, err := server.GetHostNameFqdn()
	if err != nil {
		server.EntryGroupFree(group)
		server.Close()
		return fmt.Errorf("get host name: %w", err)
	}

	name := instance.Name
	if name == "" {
		if name, err = os.Hostname(); err != nil {
			name = "colorhash"
		}
	}

	err = group.AddService(
		avahi.InterfaceUnspec,
		avahi.ProtoUnspec,
		0,
		name,
		ServiceType,
		serviceDomain,
		host,
		uint16(port), //#nosec G115 -- range checked above
		TXTRecords(instance),
	)
	if err == nil {
		err = group.Commit()
	}
	if err != nil {
		server.EntryGroupFree(group)
		server.Close()
		return fmt.Errorf("publish %s: %w", ServiceType, err)
	}

	s.server = server
	s.group = group

	s.logger.Info("mDNS advertisement started",
		"service", ServiceType,
		"port", port,
		"name", name,
		"id", instance.ID,
	)
	return nil
}

// Stop withdraws the advertisement. Safe to call multiple times or if not started.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopLocked() {
		s.logger.Info("mDNS advertisement stopped")
	}
}

func (s *Service) stopLocked() bool {
	if s.server == nil {
		return false
	}
	s.server.EntryGroupFree(s.group)
	s.server.Close()
	s.server = nil
	s.group = nil
	return true
}
