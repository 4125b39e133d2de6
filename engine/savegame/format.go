package savegame

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousands separators
func FormatMoney(n int) string {
	return printer.Sprintf("$%d", n)
}

// FormatGameTime renders in-game time as H:MM:SS
func FormatGameTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}

// FormatSavedAt renders the wall-clock save time in local time
func FormatSavedAt(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
