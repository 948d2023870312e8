package staku

// Reasons a game ends.
const (
	ReasonPalace     = "palace"
	ReasonEliminated = "eliminated"
	ReasonBlocked    = "blocked"
	ReasonPlyLimit   = "ply-limit"
)

// Outcome is the terminal state of a position, if any. A finished outcome
// with NoColor winner is a tie.
type Outcome struct {
	Finished bool
	Winner   Color
	Reason   string
}

// Outcome inspects the position for a finished game. Checked in order:
// a palace reached, a player out of tokens, the ply limit, and finally the
// side to move having no legal move.
func (that *Position) Outcome(plyLimit int) Outcome {
	for _, palace := range PalaceTargets(White) {
		if that.Board[palace].Top() == White {
			return Outcome{Finished: true, Winner: White, Reason: ReasonPalace}
		}
	}
	for _, palace := range PalaceTargets(Black) {
		if that.Board[palace].Top() == Black {
			return Outcome{Finished: true, Winner: Black, Reason: ReasonPalace}
		}
	}

	whiteTokens, blackTokens := 0, 0
	for _, cell := range that.Board {
		white, black, _ := cell.Counts()
		whiteTokens += white
		blackTokens += black
	}
	if whiteTokens == 0 {
		return Outcome{Finished: true, Winner: Black, Reason: ReasonEliminated}
	}
	if blackTokens == 0 {
		return Outcome{Finished: true, Winner: White, Reason: ReasonEliminated}
	}

	if plyLimit > 0 && that.Ply >= plyLimit {
		return Outcome{Finished: true, Reason: ReasonPlyLimit}
	}

	if len(that.LegalMoves()) == 0 {
		return Outcome{Finished: true, Winner: that.Turn.Opponent(), Reason: ReasonBlocked}
	}

	return Outcome{}
}
