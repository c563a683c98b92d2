package bridge

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type browsed for blasters
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// DefaultScanTimeout bounds a discovery run
	DefaultScanTimeout = 5 * time.Second
)

// Candidate is an HTTP service found on the local network that may be an
// IR blaster.
type Candidate struct {
	Instance  string            `json:"instance"`
	Hostname  string            `json:"hostname"`
	IP        string            `json:"ip"`
	Port      int               `json:"port"`
	Kind      string            `json:"kind"`
	Suggested string            `json:"suggested_url"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Discover browses mDNS for HTTP services until timeout elapses or ctx is
// cancelled.
func Discover(ctx context.Context, timeout time.Duration) ([]Candidate, error) {
	if timeout <= 0 {
		timeout = DefaultScanTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu    sync.Mutex
		found = make([]Candidate, 0)
	)
	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for entry := range entries {
			if c, ok := candidateFromEntry(entry); ok {
				mu.Lock()
				found = append(found, c)
				mu.Unlock()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	out := make([]Candidate, len(found))
	copy(out, found)
	return out, nil
}

func candidateFromEntry(entry *zeroconf.ServiceEntry) (Candidate, bool) {
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return Candidate{}, false
	}

	port := entry.Port
	if port == 0 {
		port = 80
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		k, v, _ := strings.Cut(txt, "=")
		metadata[k] = v
	}

	c := Candidate{
		Instance: entry.Instance,
		Hostname: entry.HostName,
		IP:       ip,
		Port:     port,
		Metadata: metadata,
	}
	c.Kind, c.Suggested = suggest(c)
	return c, true
}

// suggest picks a preset for the candidate based on its advertised names.
func suggest(c Candidate) (kind, template string) {
	host := net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
	name := strings.ToLower(c.Instance + " " + c.Hostname)

	id := "generic"
	switch {
	case strings.Contains(name, "tasmota"):
		id = "tasmota"
	case strings.Contains(name, "home assistant") || strings.Contains(name, "homeassistant"):
		id = "ha"
	}

	p, _ := FindPreset(id)
	return id, replaceHost(p.URL, host)
}

// replaceHost swaps the authority of a preset template for host.
func replaceHost(template, host string) string {
	scheme, rest, ok := strings.Cut(template, "://")
	if !ok {
		return template
	}
	_, path, _ := strings.Cut(rest, "/")
	return scheme + "://" + host + "/" + path
}
