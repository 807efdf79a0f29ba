package http

import (
	"fmt"
	"net"
)

type AddressInfo struct {
	Interface string `json:"interface"`
	Address   string `json:"address"`
	URL       string `json:"url"`
}

type NetworkInfo struct {
	Addresses []AddressInfo `json:"addresses"`
	LocalURL  string        `json:"localUrl"`
}

// networkInfo enumerates the non-loopback IPv4 addresses listeners can
// reach the server on. The pack has no library for NIC enumeration;
// net.Interfaces is the canonical way.
func networkInfo(port int) NetworkInfo {
	info := NetworkInfo{
		Addresses: []AddressInfo{},
		LocalURL:  fmt.Sprintf("http://localhost:%d", port),
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return info
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipNet.IP.To4()
			if ip4 == nil || ip4.IsLoopback() {
				continue
			}
			info.Addresses = append(info.Addresses, AddressInfo{
				Interface: iface.Name,
				Address:   ip4.String(),
				URL:       fmt.Sprintf("http://%s:%d", ip4, port),
			})
		}
	}
	return info
}
