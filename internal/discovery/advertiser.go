// Package discovery advertises the broadcast on the local network over
// DNS-SD so listeners can find it without typing an IP.
package discovery

import (
	"fmt"
	"net"
	"sync"

	"github.com/grandcat/zeroconf"
	"github.com/rs/zerolog/log"
)

const (
	ServiceType = "_aircast._tcp"
	serviceDom  = "local."
)

// MDNSServer is the interface for an active mDNS registration.
// It exists so tests can inject a fake.
type MDNSServer interface {
	Shutdown()
}

// RegisterFunc creates an mDNS registration.
type RegisterFunc func(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (MDNSServer, error)

func zeroconfRegister(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (MDNSServer, error) {
	return zeroconf.Register(instance, service, domain, port, txt, ifaces)
}

// Advertiser publishes the _aircast._tcp service while the server runs.
type Advertiser struct {
	register RegisterFunc

	mu     sync.Mutex
	server MDNSServer
}

func NewAdvertiser() *Advertiser {
	return &Advertiser{register: zeroconfRegister}
}

// NewAdvertiserWithRegister is the test seam.
func NewAdvertiserWithRegister(register RegisterFunc) *Advertiser {
	return &Advertiser{register: register}
}

// Start registers the service. Calling Start twice without Shutdown is an
// error.
func (a *Advertiser) Start(instance string, port int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		return fmt.Errorf("discovery: already advertising")
	}
	srv, err := a.register(instance, ServiceType, serviceDom, port, []string{"path=/listen"}, nil)
	if err != nil {
		return fmt.Errorf("discovery: register %s: %w", ServiceType, err)
	}
	a.server = srv
	log.Info().Str("module", "discovery").Str("instance", instance).Int("port", port).Msg("mdns advertising")
	return nil
}

// Shutdown withdraws the registration. Safe to call when never started.
func (a *Advertiser) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
		log.Info().Str("module", "discovery").Msg("mdns stopped")
	}
}
