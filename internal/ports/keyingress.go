package ports

// KeyIngress is the key-event entry point the core exposes. Its callers (a
// physical key-binding translator, a test harness) reach the admission rules
// in participant.OnKey through it. A synthetic participant's own AI worker
// does not use it; it presses keys on its participant directly, under the
// same admission rules.
type KeyIngress interface {
	OnKey(participantID int, slot int)
}
