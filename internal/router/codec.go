package router

import (
	"errors"
	"strings"
)

var (
	ErrMalformed      = errors.New("malformed_line")
	ErrUnknownCommand = errors.New("unknown_command")
	ErrBadAmount      = errors.New("invalid_amount")
	ErrNoName         = errors.New("invalid_name")
)

const (
	AttnMain  = "main"
	AttnGame  = "game"
	AttnChat  = "chat"
	AttnError = "error"
)

// Line is one protocol message: attn:cmd:data. Data may itself contain
// colons.
type Line struct {
	Attn string
	Cmd  string
	Data string
}

func ParseLine(raw string) (Line, error) {
	raw = strings.TrimRight(raw, "\r\n")
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Line{}, ErrMalformed
	}
	l := Line{Attn: parts[0], Cmd: parts[1]}
	if len(parts) == 3 {
		l.Data = parts[2]
	}
	return l, nil
}

func (l Line) String() string {
	return l.Attn + ":" + l.Cmd + ":" + l.Data
}

// SplitLines breaks a frame into its non-empty lines.
func SplitLines(frame string) []string {
	var out []string
	for _, l := range strings.Split(frame, "\n") {
		l = strings.TrimRight(l, "\r")
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
