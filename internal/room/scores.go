package room

import (
	"context"
	"log"
)

// ScoreEntry is reported once per finished game.
type ScoreEntry struct {
	GameID     string `json:"gameId"`
	Score      int    `json:"score"`
	Round      int    `json:"round"`
	PlayerName string `json:"playerName"`
	PlayerID   string `json:"playerId"`
}

type ScoreSink interface {
	Submit(ctx context.Context, e ScoreEntry) error
}

// LogSink writes entries to the standard logger.
type LogSink struct{}

func (LogSink) Submit(_ context.Context, e ScoreEntry) error {
	log.Printf("score game=%s player=%s (%s) round=%d score=%d", e.GameID, e.PlayerName, e.PlayerID, e.Round, e.Score)
	return nil
}
