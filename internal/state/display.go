package state

import "net"

// DetectDisplayIP discovers the address other machines on the network can
// reach this host on. Dialing UDP sends no packets; it only asks the kernel
// to pick the source address it would route from. Hosts with no usable route
// fall back to loopback.
func DetectDisplayIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "127.0.0.1"
}
