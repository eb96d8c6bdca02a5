package matrix

import (
	"strings"
	"unicode"
)

const (
	verbInvite = "invite"
	verbConfig = "config"
)

type command struct {
	verb string
	arg  string
}

// parseCommand extracts a bot command from a message body. The argument is
// the full remainder of the line, trimmed of surrounding whitespace but
// otherwise un-parsed (tokens may contain spaces). ok is false when the body
// does not start with the command prefix.
func parseCommand(body, prefix string) (command, bool) {
	body = strings.TrimSpace(body)
	if prefix == "" || !strings.HasPrefix(body, prefix) {
		return command{}, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(body, prefix))
	if rest == "" {
		return command{}, false
	}

	i := strings.IndexFunc(rest, unicode.IsSpace)
	if i < 0 {
		return command{verb: rest}, true
	}
	return command{
		verb: rest[:i],
		arg:  strings.TrimSpace(rest[i:]),
	}, true
}
