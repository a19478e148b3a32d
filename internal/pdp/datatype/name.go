// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package datatype

import (
	"net"
	"net/netip"
	"strings"
)

// RFC822Name is an email-address-shaped name whose local part is
// case-sensitive and whose domain part is case-insensitive, per
// XACML 3.0 §B.7.
type RFC822Name struct {
	Local  string
	Domain string
}

type rfc822NameType struct{}

func (rfc822NameType) ID() ID { return RFC822Name }

func (rfc822NameType) Parse(lexical string) (any, error) {
	at := strings.LastIndex(lexical, "@")
	if at < 0 {
		return nil, &SyntaxError{Datatype: RFC822Name, Lexical: lexical, Reason: "missing '@'"}
	}
	return RFC822Name{Local: lexical[:at], Domain: lexical[at+1:]}, nil
}

func (rfc822NameType) Serialize(value any) (string, error) {
	n, ok := value.(RFC822Name)
	if !ok {
		return "", &SyntaxError{Datatype: RFC822Name, Reason: "value is not RFC822Name"}
	}
	return n.Local + "@" + n.Domain, nil
}

func (rfc822NameType) Equal(a, b any) bool {
	x, y := a.(RFC822Name), b.(RFC822Name)
	return x.Local == y.Local && strings.EqualFold(x.Domain, y.Domain)
}
func (rfc822NameType) Orderable() bool { return false }
func (rfc822NameType) Compare(_, _ any) (int, error) {
	return 0, &SyntaxError{Datatype: RFC822Name, Reason: "rfc822Name has no total order"}
}

// X500Name is kept as its raw distinguished-name string; equality for
// x500Name per XACML §B.8 is defined over the parsed RDN sequence
// ignoring insignificant whitespace, which we approximate by
// normalizing separators since this engine has no ASN.1/LDAP DN parser
// dependency available in the retrieval pack.
type X500Name string

type x500NameType struct{}

func (x500NameType) ID() ID { return X500Name }

func (x500NameType) Parse(lexical string) (any, error) {
	if strings.TrimSpace(lexical) == "" {
		return nil, &SyntaxError{Datatype: X500Name, Lexical: lexical, Reason: "empty x500Name"}
	}
	return X500Name(lexical), nil
}

func (x500NameType) Serialize(value any) (string, error) {
	n, ok := value.(X500Name)
	if !ok {
		return "", &SyntaxError{Datatype: X500Name, Reason: "value is not X500Name"}
	}
	return string(n), nil
}

func normalizeDN(s string) string {
	parts := strings.Split(string(s), ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}

func (x500NameType) Equal(a, b any) bool {
	return normalizeDN(string(a.(X500Name))) == normalizeDN(string(b.(X500Name)))
}
func (x500NameType) Orderable() bool { return false }
func (x500NameType) Compare(_, _ any) (int, error) {
	return 0, &SyntaxError{Datatype: X500Name, Reason: "x500Name has no total order"}
}

// IPAddress models XACML's ipAddress datatype: an address, an optional
// mask (CIDR prefix), and an optional port range.
type IPAddress struct {
	Prefix    netip.Prefix
	HasPort   bool
	PortStart int
	PortEnd   int
}

type ipAddressType struct{}

func (ipAddressType) ID() ID { return IPAddress }

func (ipAddressType) Parse(lexical string) (any, error) {
	rest := lexical
	var portPart string
	if idx := strings.LastIndex(rest, ":"); idx >= 0 && !strings.Contains(rest[idx:], "]") && strings.Count(rest, ":") == 1 {
		portPart = rest[idx+1:]
		rest = rest[:idx]
	}
	var prefix netip.Prefix
	if strings.Contains(rest, "/") {
		p, err := netip.ParsePrefix(rest)
		if err != nil {
			return nil, &SyntaxError{Datatype: IPAddress, Lexical: lexical, Reason: "invalid CIDR mask"}
		}
		prefix = p
	} else {
		addr, err := netip.ParseAddr(rest)
		if err != nil {
			return nil, &SyntaxError{Datatype: IPAddress, Lexical: lexical, Reason: "invalid IP address"}
		}
		prefix = netip.PrefixFrom(addr, addr.BitLen())
	}
	ip := IPAddress{Prefix: prefix}
	if portPart != "" {
		start, end, err := parsePortRange(portPart)
		if err != nil {
			return nil, &SyntaxError{Datatype: IPAddress, Lexical: lexical, Reason: "invalid port range"}
		}
		ip.HasPort = true
		ip.PortStart, ip.PortEnd = start, end
	}
	return ip, nil
}

func parsePortRange(s string) (int, int, error) {
	if strings.Contains(s, "-") {
		parts := strings.SplitN(s, "-", 2)
		start, err := net.LookupPort("tcp", parts[0])
		if err != nil {
			return 0, 0, err
		}
		end, err := net.LookupPort("tcp", parts[1])
		if err != nil {
			return 0, 0, err
		}
		return start, end, nil
	}
	p, err := net.LookupPort("tcp", s)
	return p, p, err
}

func (ipAddressType) Serialize(value any) (string, error) {
	ip, ok := value.(IPAddress)
	if !ok {
		return "", &SyntaxError{Datatype: IPAddress, Reason: "value is not IPAddress"}
	}
	s := ip.Prefix.Addr().String()
	if ip.Prefix.Bits() != ip.Prefix.Addr().BitLen() {
		s = ip.Prefix.String()
	}
	if ip.HasPort {
		if ip.PortStart == ip.PortEnd {
			s += ":" + itoa(ip.PortStart)
		} else {
			s += ":" + itoa(ip.PortStart) + "-" + itoa(ip.PortEnd)
		}
	}
	return s, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Equal implements identity, not containment: two ipAddress values are
// equal when their prefixes (address and mask) are equal and they carry
// the same port range. Subnet containment is not implemented; an address
// inside a masked range does not compare equal to that range.
func (ipAddressType) Equal(a, b any) bool {
	x, y := a.(IPAddress), b.(IPAddress)
	return x.Prefix == y.Prefix && x.HasPort == y.HasPort && x.PortStart == y.PortStart && x.PortEnd == y.PortEnd
}
func (ipAddressType) Orderable() bool { return false }
func (ipAddressType) Compare(_, _ any) (int, error) {
	return 0, &SyntaxError{Datatype: IPAddress, Reason: "ipAddress has no total order"}
}

// DNSName is a hostname with an optional port range, per XACML §B.10.
type DNSName struct {
	Host      string
	HasPort   bool
	PortStart int
	PortEnd   int
}

type dnsNameType struct{}

func (dnsNameType) ID() ID { return DNSName }

func (dnsNameType) Parse(lexical string) (any, error) {
	host := lexical
	var portPart string
	if idx := strings.LastIndex(lexical, ":"); idx >= 0 {
		host = lexical[:idx]
		portPart = lexical[idx+1:]
	}
	if host == "" {
		return nil, &SyntaxError{Datatype: DNSName, Lexical: lexical, Reason: "empty hostname"}
	}
	dn := DNSName{Host: strings.ToLower(host)}
	if portPart != "" {
		start, end, err := parsePortRange(portPart)
		if err != nil {
			return nil, &SyntaxError{Datatype: DNSName, Lexical: lexical, Reason: "invalid port range"}
		}
		dn.HasPort = true
		dn.PortStart, dn.PortEnd = start, end
	}
	return dn, nil
}

func (dnsNameType) Serialize(value any) (string, error) {
	dn, ok := value.(DNSName)
	if !ok {
		return "", &SyntaxError{Datatype: DNSName, Reason: "value is not DNSName"}
	}
	s := dn.Host
	if dn.HasPort {
		if dn.PortStart == dn.PortEnd {
			s += ":" + itoa(dn.PortStart)
		} else {
			s += ":" + itoa(dn.PortStart) + "-" + itoa(dn.PortEnd)
		}
	}
	return s, nil
}

func (dnsNameType) Equal(a, b any) bool {
	x, y := a.(DNSName), b.(DNSName)
	return x.Host == y.Host && x.HasPort == y.HasPort && x.PortStart == y.PortStart && x.PortEnd == y.PortEnd
}
func (dnsNameType) Orderable() bool { return false }
func (dnsNameType) Compare(_, _ any) (int, error) {
	return 0, &SyntaxError{Datatype: DNSName, Reason: "dnsName has no total order"}
}

func init() {
	register(rfc822NameType{})
	register(x500NameType{})
	register(ipAddressType{})
	register(dnsNameType{})
}
