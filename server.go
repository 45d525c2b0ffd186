package main

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
)

// passwordMark is shown in place of the password column for locked servers.
const passwordMark = "\U0001F512 "

var (
	errInvalidAddress = errors.New("invalid server address")

	// Quake style colour codes embedded in server and map names.
	colourCodeRx = regexp.MustCompile(`\^[1-8]`)

	privateNetworks = mustParseNetworks("10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16")
)

// rawServer is a single record as returned by IGameServersService/GetServerList.
type rawServer struct {
	Name       string `json:"name"`
	Addr       string `json:"addr"`
	GamePort   int    `json:"gameport"`
	Product    string `json:"product"`
	Map        string `json:"map"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"max_players"`
	GameType   string `json:"gametype"`
}

// ServerEntry is the normalized, renderable form of a directory record. Entries are
// keyed by Address, which joins the host from the listing with the separately
// reported game port, since the port a server is listed on can differ from the port
// clients connect to.
type ServerEntry struct {
	Game     string
	Name     string
	Password string
	Players  string
	Map      string
	Address  string
}

func mustParseNetworks(cidrs ...string) []*net.IPNet {
	networks := make([]*net.IPNet, len(cidrs))

	for index, cidr := range cidrs {
		_, network, errParse := net.ParseCIDR(cidr)
		if errParse != nil {
			panic(errParse)
		}

		networks[index] = network
	}

	return networks
}

// decolor removes embedded colour codes from a display string. The pattern is
// re-applied until the value stops changing so removing one code can never expose
// another, keeping the operation idempotent.
func decolor(value string) string {
	for {
		out := colourCodeRx.ReplaceAllString(value, "")
		if out == value {
			return out
		}

		value = out
	}
}

// privateNetwork returns true when ip falls inside one of the RFC 1918 ranges.
func privateNetwork(ip string) (bool, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false, errors.Join(errInvalidAddress, fmt.Errorf("failed to parse ip: %s", ip))
	}

	for _, network := range privateNetworks {
		if network.Contains(parsed) {
			return true, nil
		}
	}

	return false, nil
}

// excluded checks the name for any configured exclude keyword, case-insensitively.
// Exclusion is disabled entirely when the first configured keyword is empty.
func excluded(name string, keywords []string) bool {
	if len(keywords) == 0 || keywords[0] == "" {
		return false
	}

	lowerName := strings.ToLower(name)

	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}

		if strings.Contains(lowerName, keyword) {
			return true
		}
	}

	return false
}

// passworded reports whether the comma separated gametype tag list carries the
// password tag.
func passworded(gameType string) bool {
	for _, tag := range strings.Split(strings.ToLower(strings.TrimSpace(gameType)), ",") {
		if tag == "pw" {
			return true
		}
	}

	return false
}

// newServerEntry normalizes one raw record against the current settings. The second
// return value is false when the record was rejected by policy (exclude keyword or
// private network). A malformed listing address is returned as an error instead so
// the caller can log the drop, the record is skipped either way.
func newServerEntry(server rawServer, settings userSettings) (ServerEntry, bool, error) {
	name := strings.TrimSpace(decolor(server.Name))

	if excluded(name, settings.Exclude) {
		return ServerEntry{}, false, nil
	}

	host := strings.TrimSpace(strings.SplitN(strings.TrimSpace(server.Addr), ":", 2)[0])

	if !settings.PrivateNetworks {
		isPrivate, errPrivate := privateNetwork(host)
		if errPrivate != nil {
			return ServerEntry{}, false, errPrivate
		}

		if isPrivate {
			return ServerEntry{}, false, nil
		}
	}

	password := ""
	if passworded(server.GameType) {
		password = passwordMark
	}

	entry := ServerEntry{
		Game:     strings.TrimSpace(server.Product),
		Name:     name,
		Password: password,
		Players:  fmt.Sprintf("%d/%d", server.Players, server.MaxPlayers),
		Map:      strings.TrimSpace(decolor(server.Map)),
		Address:  fmt.Sprintf("%s:%d", host, server.GamePort),
	}

	return entry, true, nil
}
