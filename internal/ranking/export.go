package ranking

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/talentsphere/internal/types"
)

// CSVHeader is the leaderboard export header row.
var CSVHeader = []string{"Rank", "Name", "Score", "Experience (Yrs)", "Email", "Phone", "Skills"}

// WriteCSV writes the leaderboard to w, one row per candidate in rank order.
func WriteCSV(w io.Writer, ranked []types.RankedCandidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, c := range ranked {
		row := []string{
			strconv.Itoa(c.Rank),
			c.Name,
			formatNumber(c.Score),
			formatNumber(c.Experience),
			c.Contact.Email,
			c.Contact.Phone,
			strings.Join(c.SkillsFound, ", "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", c.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
