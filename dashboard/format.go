package dashboard

import (
	"fmt"
	"strings"

	"w3dash/models"
)

// Placeholders shown when a slot has nothing to draw
const (
	NoProfileText = "did not get data"
	NoDetailText  = "no data"
	MissingCell   = "-"
)

// winrateHeaders lines up with models.TableRaces
var winrateHeaders = []string{"VS Random", "VS Human", "VS Orc", "VS Undead", "VS Night Elf"}

// FormatWinrate renders a winrate with exactly two decimals (0.5 -> "0.50")
func FormatWinrate(winrate float64) string {
	return fmt.Sprintf("%.2f", winrate)
}

// FormatStat renders one stat line as "race, winrate, ranking points"
func FormatStat(stat models.Stat) string {
	return fmt.Sprintf("%s, %s, %d", stat.Race, FormatWinrate(stat.Winrate), stat.RankingPoint)
}

// SummaryText is the profile box content for a slot
func SummaryText(user *models.User) string {
	if user == nil {
		return NoProfileText
	}

	var b strings.Builder
	b.WriteString("User: ")
	b.WriteString(user.UserID)
	for _, stat := range user.Stats {
		b.WriteString("\n")
		b.WriteString(FormatStat(stat))
	}
	return b.String()
}

// WinrateRow returns the table cells in header order.
// The second return is false when there is no breakdown to show.
func WinrateRow(user *models.User) ([]string, bool) {
	if !user.HasDetailWinrate() {
		return nil, false
	}

	row := make([]string, 0, len(models.TableRaces))
	for _, race := range models.TableRaces {
		if winrate, ok := user.DetailWinrate[race.Name()]; ok {
			row = append(row, FormatWinrate(winrate))
		} else {
			row = append(row, MissingCell)
		}
	}
	return row, true
}
