package session

// Guard wraps cb so that only the first OnGameOver is delivered and score
// changes after it are dropped. The shell wraps every session's callbacks
// with it so a misbehaving game cannot end a run twice.
func Guard(cb Callbacks) Callbacks {
	over := false
	return Callbacks{
		OnScoreChange: func(score int) {
			if over || cb.OnScoreChange == nil {
				return
			}
			cb.OnScoreChange(score)
		},
		OnGameOver: func(final int) {
			if over {
				return
			}
			over = true
			if cb.OnGameOver != nil {
				cb.OnGameOver(final)
			}
		},
	}
}
