package dialogs

import (
	"fmt"

	"sketchpad/internal/version"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// ShowAbout displays the about dialog with build information.
func ShowAbout(window fyne.Window) {
	dialog.ShowInformation("About Sketchpad",
		fmt.Sprintf("Sketchpad %s\ncommit %s, built %s",
			version.Version, version.GitCommit, version.BuildTime),
		window)
}
