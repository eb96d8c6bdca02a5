package matrix

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		prefix string
		want   command
		ok     bool
	}{
		{name: "invite with token", body: "!invite sekrit", prefix: "!", want: command{verb: "invite", arg: "sekrit"}, ok: true},
		{name: "token is full remainder", body: "!invite two words ", prefix: "!", want: command{verb: "invite", arg: "two words"}, ok: true},
		{name: "invite without token", body: "!invite", prefix: "!", want: command{verb: "invite"}, ok: true},
		{name: "config", body: "!config", prefix: "!", want: command{verb: "config"}, ok: true},
		{name: "surrounding whitespace", body: "  !config  ", prefix: "!", want: command{verb: "config"}, ok: true},
		{name: "tab separated", body: "!invite\tsekrit", prefix: "!", want: command{verb: "invite", arg: "sekrit"}, ok: true},
		{name: "no prefix", body: "invite sekrit", prefix: "!", ok: false},
		{name: "bare prefix", body: "!", prefix: "!", ok: false},
		{name: "plain chatter", body: "hello there", prefix: "!", ok: false},
		{name: "custom prefix", body: "~invite sekrit", prefix: "~", want: command{verb: "invite", arg: "sekrit"}, ok: true},
		{name: "empty prefix never matches", body: "invite sekrit", prefix: "", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseCommand(tc.body, tc.prefix)
			if ok != tc.ok {
				t.Fatalf("parseCommand(%q, %q) ok = %v, want %v", tc.body, tc.prefix, ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("parseCommand(%q, %q) = %+v, want %+v", tc.body, tc.prefix, got, tc.want)
			}
		})
	}
}
