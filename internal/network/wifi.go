// Package network joins the configured Wi-Fi network for the length of a fetch.
package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os/exec"
	"strings"
	"time"
)

// ErrNoAddress is returned by an address lookup while the interface has no IPv4 address.
var ErrNoAddress = errors.New("no ipv4 address")

// CommandRunner runs an external command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// WiFi associates with an access point through NetworkManager.
type WiFi struct {
	ssid     string
	password string
	iface    string

	run      CommandRunner
	addr     func(iface string) (string, error)
	interval time.Duration
}

// NewWiFi returns a WiFi for ssid on iface. With an empty ssid the host's
// existing connection is used and only the address is awaited.
func NewWiFi(ssid, password, iface string) *WiFi {
	return &WiFi{
		ssid:     ssid,
		password: password,
		iface:    iface,
		run:      execRunner,
		addr:     interfaceIPv4,
		interval: time.Second,
	}
}

func (w *WiFi) SSID() string {
	return w.ssid
}

// Connect joins the network and blocks until the interface has an IPv4
// address, polling once per interval until ctx is done.
func (w *WiFi) Connect(ctx context.Context) (string, error) {
	if w.ssid != "" {
		args := []string{"device", "wifi", "connect", w.ssid}
		if w.password != "" {
			args = append(args, "password", w.password)
		}
		if w.iface != "" {
			args = append(args, "ifname", w.iface)
		}

		slog.Info("connecting to wifi", "ssid", w.ssid, "interface", w.iface)
		if out, err := w.run(ctx, "nmcli", args...); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("nmcli connect %s: %w: %s", w.ssid, err, strings.TrimSpace(string(out)))
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		ip, err := w.addr(w.iface)
		if err == nil {
			slog.Info("connected", "ip", ip)
			return ip, nil
		}
		if !errors.Is(err, ErrNoAddress) {
			return "", err
		}

		slog.Debug("waiting for connection", "interface", w.iface)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// Disconnect drops the association made by Connect.
func (w *WiFi) Disconnect(ctx context.Context) error {
	if w.ssid == "" || w.iface == "" {
		return nil
	}

	slog.Info("disconnecting from network", "interface", w.iface)
	if out, err := w.run(ctx, "nmcli", "device", "disconnect", w.iface); err != nil {
		return fmt.Errorf("nmcli disconnect %s: %w: %s", w.iface, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// interfaceIPv4 returns the first IPv4 address of iface, or of any
// non-loopback interface when iface is empty.
func interfaceIPv4(iface string) (string, error) {
	var ifaces []net.Interface
	if iface != "" {
		ifi, err := net.InterfaceByName(iface)
		if err != nil {
			return "", fmt.Errorf("interface %s: %w", iface, err)
		}
		ifaces = []net.Interface{*ifi}
	} else {
		all, err := net.Interfaces()
		if err != nil {
			return "", fmt.Errorf("list interfaces: %w", err)
		}
		ifaces = all
	}

	for _, ifi := range ifaces {
		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := ifi.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return ip4.String(), nil
			}
		}
	}
	return "", ErrNoAddress
}
