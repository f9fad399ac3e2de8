package api

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/dinesh-mca12/tohnew/game/store"
)

// writeLeaderboardCSV renders the ranked leaderboard as a CSV attachment.
func writeLeaderboardCSV(w io.Writer, entries []*store.LeaderboardEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"playerName", "score", "time", "moves", "matchId"}); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.PlayerName,
			strconv.FormatFloat(e.Score, 'f', 2, 64),
			strconv.FormatFloat(e.Time, 'f', 2, 64),
			strconv.Itoa(e.Moves),
			e.MatchID,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
