package view

import (
	"fmt"
	"strings"

	"github.com/mmynk/friendsplit/internal/models"
)

// Markdown renders v as a markdown document for terminal display.
func Markdown(v View) string {
	var b strings.Builder

	b.WriteString("# Friends\n\n")
	if len(v.Friends) == 0 {
		b.WriteString("_No friends yet._\n\n")
	} else {
		for i, f := range v.Friends {
			marker := ""
			if f.Selected {
				marker = " ◀"
			}
			fmt.Fprintf(&b, "%d. **%s**%s · %s · _[%s]_\n", i+1, f.Name, marker, settlement(f), f.ButtonLabel)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Owed to you: %s · You owe: %s · Net: %s\n\n", v.Summary.Owed, v.Summary.Owing, v.Summary.Net)

	if v.AddForm != nil {
		b.WriteString("## Add friend\n\n")
		fmt.Fprintf(&b, "- 👫 Friend name: `%s`\n", v.AddForm.Name)
		fmt.Fprintf(&b, "- 📷 Image URL: `%s`\n\n", v.AddForm.Image)
	}
	fmt.Fprintf(&b, "_[%s]_\n\n", v.ToggleLabel)

	if f := v.SplitForm; f != nil {
		fmt.Fprintf(&b, "## Split bill with %s\n\n", f.FriendName)
		fmt.Fprintf(&b, "- 💰 Bill value: `%s`\n", f.Bill)
		fmt.Fprintf(&b, "- 👱 Your expense: `%s`\n", f.PaidByUser)
		fmt.Fprintf(&b, "- 👫 %s's expense: `%s`\n", f.FriendName, f.FriendExpense)
		payer := "You"
		if f.WhoIsPaying == models.PayerFriend {
			payer = f.FriendName
		}
		fmt.Fprintf(&b, "- 🤑 Who is paying the bill? **%s**\n", payer)
	}

	return b.String()
}

func settlement(f FriendRow) string {
	switch f.Status {
	case models.StatusOwe:
		return "🔴 " + f.Settlement
	case models.StatusOwed:
		return "🟢 " + f.Settlement
	default:
		return f.Settlement
	}
}
