// Package console provides a reference ports.DisplaySink implementation
// that logs every call through zap, in place of a real rendering surface.
package console

import (
	"time"

	"go.uber.org/zap"

	"setengine/internal/domain"
)

// Display is a ports.DisplaySink that publishes every call as a structured
// log line. It holds no mutable state of its own, so a single instance can
// be shared across the table, dealer, and every participant.
type Display struct {
	log *zap.Logger
}

// New constructs a Display that writes through the given logger.
func New(log *zap.Logger) *Display {
	return &Display{log: log.Named("display")}
}

func (d *Display) PlaceCard(card domain.Card, slot domain.Slot) {
	d.log.Debug("place_card", zap.Int("card", int(card)), zap.Int("slot", int(slot)))
}

func (d *Display) RemoveCard(slot domain.Slot) {
	d.log.Debug("remove_card", zap.Int("slot", int(slot)))
}

func (d *Display) PlaceToken(participant int, slot domain.Slot) {
	d.log.Debug("place_token", zap.Int("participant", participant), zap.Int("slot", int(slot)))
}

func (d *Display) RemoveToken(participant int, slot domain.Slot) {
	d.log.Debug("remove_token", zap.Int("participant", participant), zap.Int("slot", int(slot)))
}

func (d *Display) RemoveAllTokens() {
	d.log.Debug("remove_all_tokens")
}

func (d *Display) RemoveSlotTokens(slot domain.Slot) {
	d.log.Debug("remove_slot_tokens", zap.Int("slot", int(slot)))
}

func (d *Display) SetScore(participant int, score int) {
	d.log.Info("score", zap.Int("participant", participant), zap.Int("score", score))
}

func (d *Display) SetFreeze(participant int, remaining time.Duration) {
	d.log.Debug("freeze", zap.Int("participant", participant), zap.Duration("remaining", remaining))
}

func (d *Display) SetCountdown(remaining time.Duration, warn bool) {
	d.log.Debug("countdown", zap.Duration("remaining", remaining), zap.Bool("warn", warn))
}

func (d *Display) SetElapsed(elapsed time.Duration) {
	d.log.Debug("elapsed", zap.Duration("elapsed", elapsed))
}

func (d *Display) AnnounceWinners(ids []int) {
	d.log.Info("winners", zap.Ints("participants", ids))
}

func (d *Display) Dispose() {
	_ = d.log.Sync()
}
