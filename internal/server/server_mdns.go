package server

import (
	"net"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/mdns"
	"go.uber.org/zap"

	"github.com/bamreyes/Project-Green/internal/version"
)

const mdnsService = "_green._tcp"

// startMDNSAdvertiser announces the web UI on the local network and returns
// the function that withdraws it.
func startMDNSAdvertiser(serverAddr, instance string, logger *zap.Logger) func() {
	port := listenPortFromAddr(serverAddr)
	portNum, err := strconv.Atoi(port)
	if err != nil {
		logger.Warn("mdns advertise skipped", zap.String("addr", serverAddr))
		return func() {}
	}

	instance = strings.TrimSpace(instance)
	if instance == "" {
		host, _ := os.Hostname()
		instance = "green"
		if h := strings.TrimSpace(host); h != "" {
			instance = "green-" + h
		}
	}

	meta := []string{
		"name=green",
		"api_version=1",
		"version=" + version.Current(),
		"path=/solver",
	}
	service, err := mdns.NewMDNSService(instance, mdnsService, "", "", portNum, discoverAdvertiseIPs(), meta)
	if err != nil {
		logger.Error("mdns advertise service setup failed", zap.Error(err))
		return func() {}
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		logger.Error("mdns advertise start failed", zap.Error(err))
		return func() {}
	}
	logger.Info("mdns advertising enabled", zap.String("service", mdnsService), zap.String("instance", instance), zap.Int("port", portNum))

	return func() {
		server.Shutdown()
	}
}

func discoverAdvertiseIPs() []net.IP {
	ifAddrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	return filterAdvertiseIPs(ifAddrs)
}

// filterAdvertiseIPs keeps routable unicast addresses, IPv4 first.
func filterAdvertiseIPs(addrs []net.Addr) []net.IP {
	seen := map[string]struct{}{}
	var out []net.IP
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet == nil || ipNet.IP == nil {
			continue
		}
		ip := ipNet.IP
		if ip.IsLoopback() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			continue
		}
		normalized := ip.To16()
		if normalized == nil {
			continue
		}
		key := normalized.String()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	sort.Slice(out, func(i, j int) bool {
		ai := out[i].To4() != nil
		aj := out[j].To4() != nil
		if ai != aj {
			return ai
		}
		return out[i].String() < out[j].String()
	})
	return out
}

func listenPortFromAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "8080"
	}
	if strings.HasPrefix(addr, ":") {
		return strings.TrimPrefix(addr, ":")
	}
	if !strings.Contains(addr, ":") {
		return addr
	}
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return p
}
