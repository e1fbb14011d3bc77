package dashboard

import (
	"w3dash/models"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Layout builds a full frame for a snapshot: the self pane on top, the opponent below,
// each split into a profile summary and a winrate table.
func Layout(data models.Data) tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(playerPane("you", data.User), 0, 1, false).
		AddItem(playerPane("opponent", data.Opponent), 0, 1, false)
}

func playerPane(role string, user *models.User) tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(profileBox(role, user), 0, 3, false).
		AddItem(winrateTable(user), 0, 7, false)
}

func profileBox(role string, user *models.User) tview.Primitive {
	text := tview.NewTextView().
		SetText(SummaryText(user)).
		SetTextAlign(tview.AlignCenter).
		SetWordWrap(true).
		SetTextColor(tcell.ColorWhite)
	text.SetBackgroundColor(tcell.ColorBlack)
	text.SetBorder(true).SetTitle("Profile - " + role)
	return text
}

func winrateTable(user *models.User) tview.Primitive {
	table := tview.NewTable().SetBorders(true)
	table.SetBorder(true).SetTitle("Detail info")

	row, ok := WinrateRow(user)
	if !ok {
		table.SetCell(0, 0, tview.NewTableCell(NoDetailText).SetSelectable(false))
		return table
	}

	for col, header := range winrateHeaders {
		table.SetCell(0, col, tview.NewTableCell(header).
			SetAlign(tview.AlignCenter).
			SetExpansion(1).
			SetSelectable(false))
		table.SetCell(1, col, tview.NewTableCell(row[col]).
			SetAlign(tview.AlignCenter).
			SetExpansion(1).
			SetSelectable(false))
	}
	return table
}
