package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecolor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text     string
		expected string
	}{
		{text: "", expected: ""},
		{text: "plain name", expected: "plain name"},
		{text: "Server^1One", expected: "ServerOne"},
		{text: "^2dm1", expected: "dm1"},
		{text: "^1^2^3^4^5^6^7^8", expected: ""},
		{text: "^^11", expected: ""},
		{text: "^9 keeps ^0 out of range", expected: "^9 keeps ^0 out of range"},
	}

	for _, testCase := range cases {
		require.Equal(t, testCase.expected, decolor(testCase.text), testCase.text)
		// Stripping an already stripped string must change nothing.
		require.Equal(t, decolor(testCase.text), decolor(decolor(testCase.text)), testCase.text)
	}
}

func TestPrivateNetwork(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ip      string
		private bool
	}{
		{ip: "10.0.0.1", private: true},
		{ip: "10.255.255.255", private: true},
		{ip: "172.16.0.1", private: true},
		{ip: "172.31.255.1", private: true},
		{ip: "172.15.0.1", private: false},
		{ip: "172.32.0.1", private: false},
		{ip: "192.168.1.5", private: true},
		{ip: "192.169.1.5", private: false},
		{ip: "8.8.8.8", private: false},
		{ip: "203.0.113.5", private: false},
	}

	for _, testCase := range cases {
		private, errPrivate := privateNetwork(testCase.ip)
		require.NoError(t, errPrivate, testCase.ip)
		require.Equal(t, testCase.private, private, testCase.ip)
	}

	_, errInvalid := privateNetwork("not-an-ip")
	require.ErrorIs(t, errInvalid, errInvalidAddress)
}

func TestExcluded(t *testing.T) {
	t.Parallel()

	require.True(t, excluded("Sydney Deathmatch", []string{"sydney", "denver"}))
	require.True(t, excluded("FFA | DENVER | 24/7", []string{"sydney", "denver"}))
	require.False(t, excluded("Frankfurt FFA", []string{"sydney", "denver"}))

	// An empty first keyword disables exclusion entirely.
	require.False(t, excluded("anything at all", []string{""}))
	require.False(t, excluded("anything at all", nil))
}

func TestPassworded(t *testing.T) {
	t.Parallel()

	require.True(t, passworded("pw,ctf"))
	require.True(t, passworded("CTF,PW"))
	require.False(t, passworded("ctf,ffa"))
	require.False(t, passworded("pwn,ctf"))
	require.False(t, passworded(""))
}

func TestNewServerEntry(t *testing.T) {
	t.Parallel()

	record := rawServer{
		Name:       "Server^1One",
		Addr:       "203.0.113.5:27015",
		GamePort:   27016,
		Product:    "game",
		Map:        "^2dm1",
		Players:    3,
		MaxPlayers: 16,
		GameType:   "pw,ctf",
	}

	entry, ok, errEntry := newServerEntry(record, userSettings{Exclude: []string{""}, PrivateNetworks: true})
	require.NoError(t, errEntry)
	require.True(t, ok)
	require.Equal(t, ServerEntry{
		Game:     "game",
		Name:     "ServerOne",
		Password: passwordMark,
		Players:  "3/16",
		Map:      "dm1",
		Address:  "203.0.113.5:27016",
	}, entry)
}

func TestNewServerEntryExcludeKeyword(t *testing.T) {
	t.Parallel()

	record := rawServer{Name: "Sydney ^3FFA", Addr: "203.0.113.5:27015", GamePort: 27016}

	_, ok, errEntry := newServerEntry(record, userSettings{Exclude: []string{"sydney"}, PrivateNetworks: true})
	require.NoError(t, errEntry)
	require.False(t, ok)
}

func TestNewServerEntryPrivateNetwork(t *testing.T) {
	t.Parallel()

	record := rawServer{
		Name:       "Server^1One",
		Addr:       "192.168.1.5:27015",
		GamePort:   27016,
		Product:    "game",
		Map:        "dm1",
		Players:    3,
		MaxPlayers: 16,
		GameType:   "pw,ctf",
	}

	_, ok, errEntry := newServerEntry(record, userSettings{Exclude: []string{""}})
	require.NoError(t, errEntry)
	require.False(t, ok)

	// Allowing private networks skips classification entirely.
	entry, ok, errEntry := newServerEntry(record, userSettings{Exclude: []string{""}, PrivateNetworks: true})
	require.NoError(t, errEntry)
	require.True(t, ok)
	require.Equal(t, "192.168.1.5:27016", entry.Address)
}

func TestNewServerEntryMalformedAddress(t *testing.T) {
	t.Parallel()

	record := rawServer{Name: "Broken", Addr: "garbage:27015", GamePort: 27016}

	_, _, errEntry := newServerEntry(record, userSettings{})
	require.ErrorIs(t, errEntry, errInvalidAddress)
}

func TestNewServerEntryNoPassword(t *testing.T) {
	t.Parallel()

	record := rawServer{
		Name:       "  Open House  ",
		Addr:       "203.0.113.7:27015",
		GamePort:   27015,
		Product:    "tf",
		Map:        "pl_upward",
		Players:    20,
		MaxPlayers: 24,
		GameType:   "payload,alltalk",
	}

	entry, ok, errEntry := newServerEntry(record, userSettings{PrivateNetworks: true})
	require.NoError(t, errEntry)
	require.True(t, ok)
	require.Empty(t, entry.Password)
	require.Equal(t, "Open House", entry.Name)
	require.Equal(t, "20/24", entry.Players)
}
