package main

import (
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"holdem-server/internal/config"
	"holdem-server/internal/logging"
	"holdem-server/internal/router"
)

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	if logCfg.Service == "holdem-server" {
		logCfg.Service = "dumb-bot"
	}
	if err := logging.Init(logCfg); err != nil {
		panic(err)
	}
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("load bot config failed")
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSURL, nil)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.WSURL).Msg("dial failed")
	}
	defer conn.Close()

	b := &bot{rnd: rand.New(rand.NewSource(time.Now().UnixNano())), seat: -1}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(strings.Join(b.hello(cfg), "\n"))); err != nil {
		log.Fatal().Err(err).Msg("write failed")
	}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info().Err(err).Msg("connection_closed")
			return
		}
		for _, raw := range router.SplitLines(string(data)) {
			reply, done := b.handle(raw)
			if done {
				log.Info().Str("line", raw).Msg("bot_done")
				os.Exit(0)
			}
			if reply == "" {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
				log.Error().Err(err).Msg("write failed")
				return
			}
		}
	}
}

// bot checks when it can, calls otherwise and now and then raises the
// minimum.
type bot struct {
	rnd     *rand.Rand
	tableID string
	seat    int
}

func (b *bot) hello(cfg config.BotConfig) []string {
	lines := []string{"main:user:" + cfg.Name}
	if cfg.TableID == "" {
		return append(lines, "game:new:holdem")
	}
	return append(lines, "game:join:"+cfg.TableID)
}

// handle consumes one server line and returns the reply, if any. done is
// set when the table is gone or the server refused to seat the bot.
func (b *bot) handle(raw string) (reply string, done bool) {
	l, err := router.ParseLine(raw)
	if err != nil {
		return "", false
	}
	switch {
	case l.Attn == router.AttnMain && l.Cmd == "game_id":
		b.tableID = l.Data
		log.Info().Str("table_id", b.tableID).Msg("bot_joined")
	case l.Attn == router.AttnGame && l.Cmd == "seat":
		b.seat, _ = strconv.Atoi(l.Data)
	case l.Attn == router.AttnGame && l.Cmd == "closed":
		return "", true
	case l.Attn == router.AttnError:
		log.Warn().Str("code", l.Cmd).Msg("server_error")
		return "", b.tableID == ""
	case l.Attn == router.AttnGame && l.Cmd == "turn":
		return b.decide(l.Data), false
	}
	return "", false
}

func (b *bot) decide(data string) string {
	parts := strings.Split(data, ":")
	if len(parts) < 4 || b.tableID == "" {
		return ""
	}
	if seat, err := strconv.Atoi(parts[0]); err != nil || seat != b.seat {
		return ""
	}
	legal := map[string]bool{}
	for _, a := range strings.Split(parts[1], ",") {
		legal[a] = true
	}
	minRaise := parts[3]
	prefix := "game:act:" + b.tableID + ":"
	switch {
	case legal["raise"] && b.rnd.Intn(10) == 0:
		return prefix + "raise:" + minRaise
	case legal["bet"] && b.rnd.Intn(10) == 0:
		return prefix + "bet:" + minRaise
	case legal["check"]:
		return prefix + "check"
	case legal["call"]:
		return prefix + "call"
	}
	return prefix + "fold"
}
