package main

import (
	"math/rand"
	"testing"

	"holdem-server/internal/config"
)

func seatedBot(seed int64) *bot {
	b := &bot{rnd: rand.New(rand.NewSource(seed)), seat: -1}
	b.handle("main:game_id:12345")
	b.handle("game:seat:2")
	return b
}

func TestHelloCreatesOrJoins(t *testing.T) {
	b := &bot{}
	lines := b.hello(config.BotConfig{Name: "BotA"})
	if len(lines) != 2 || lines[0] != "main:user:BotA" || lines[1] != "game:new:holdem" {
		t.Fatalf("unexpected hello %q", lines)
	}
	lines = b.hello(config.BotConfig{Name: "BotA", TableID: "55555"})
	if lines[1] != "game:join:55555" {
		t.Fatalf("unexpected join line %q", lines[1])
	}
}

func TestBotIgnoresOtherSeats(t *testing.T) {
	b := seatedBot(1)
	if reply, _ := b.handle("game:turn:0:check,bet,fold:0:100"); reply != "" {
		t.Fatalf("bot acted for another seat: %q", reply)
	}
}

func TestBotPrefersCheckThenCall(t *testing.T) {
	checks, calls := 0, 0
	for seed := int64(0); seed < 50; seed++ {
		b := seatedBot(seed)
		reply, _ := b.handle("game:turn:2:check,bet,fold:0:100")
		switch reply {
		case "game:act:12345:check":
			checks++
		case "game:act:12345:bet:100":
		default:
			t.Fatalf("unexpected reply %q", reply)
		}
		reply, _ = b.handle("game:turn:2:call,raise,fold:100:100")
		switch reply {
		case "game:act:12345:call":
			calls++
		case "game:act:12345:raise:100":
		default:
			t.Fatalf("unexpected reply %q", reply)
		}
	}
	if checks == 0 || calls == 0 {
		t.Fatalf("expected mostly passive play, checks=%d calls=%d", checks, calls)
	}
}

func TestBotStopsWhenTableCloses(t *testing.T) {
	b := seatedBot(1)
	if _, done := b.handle("game:closed:12345"); !done {
		t.Fatal("expected bot to stop on table close")
	}
	fresh := &bot{seat: -1}
	if _, done := fresh.handle("error:table_not_found"); !done {
		t.Fatal("expected bot to stop when it cannot join")
	}
}
