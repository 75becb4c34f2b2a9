package model

// ActionKind identifies a rewarded daily action.
type ActionKind string

const (
	ActionCheckin ActionKind = "checkin"
	ActionShare   ActionKind = "share"
)

// IsValid checks if the action kind is known.
func (k ActionKind) IsValid() bool {
	return k == ActionCheckin || k == ActionShare
}

// ActionOutcome is the closed set of results an action can produce.
// Handlers and the presentation layer switch on this tag; nothing else
// inspects partial state.
type ActionOutcome string

const (
	// OutcomeRewarded: local state updated and the token mint succeeded.
	OutcomeRewarded ActionOutcome = "rewarded"
	// OutcomeRewardFailed: local state updated but the mint failed.
	// State is never rolled back.
	OutcomeRewardFailed ActionOutcome = "reward_failed"
	// OutcomeRewardSkipped: local state updated, minting not configured.
	OutcomeRewardSkipped ActionOutcome = "reward_skipped"
	// OutcomeAlreadyDone: cooldown active, no state changed.
	OutcomeAlreadyDone ActionOutcome = "already_done"
	// OutcomeRejected: validation or resolution failed before any mutation.
	OutcomeRejected ActionOutcome = "rejected"
)

// StateUpdated reports whether the outcome implies a local state mutation.
func (o ActionOutcome) StateUpdated() bool {
	switch o {
	case OutcomeRewarded, OutcomeRewardFailed, OutcomeRewardSkipped:
		return true
	}
	return false
}

// ActionResult is the structured result handed to the presentation layer.
type ActionResult struct {
	Outcome   ActionOutcome `json:"outcome"`
	Message   string        `json:"message"`
	EventID   string        `json:"event_id,omitempty"`
	TxHash    string        `json:"tx_hash,omitempty"`
	ShareText string        `json:"share_text,omitempty"`
}

// OK reports whether the action reached its primary effect.
func (r *ActionResult) OK() bool {
	return r.Outcome.StateUpdated()
}
