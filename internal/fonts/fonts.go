package fonts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/platform"
)

const mediaBaseURL = "https://github.com/romkatv/powerlevel10k-media/raw/master/"

// MesloAssets are the four patched font files the prompt theme's icons
// need. Fixed names, fixed source; no alternate-source configuration.
var MesloAssets = []string{
	"MesloLGS NF Regular.ttf",
	"MesloLGS NF Bold.ttf",
	"MesloLGS NF Italic.ttf",
	"MesloLGS NF Bold Italic.ttf",
}

// ManualReminder is always surfaced after a font install: no component can
// switch the terminal emulator's font programmatically.
const ManualReminder = "Set your terminal font to 'MesloLGS NF' in your terminal emulator's preferences."

// Installer downloads the Nerd Font assets into the user font directory.
type Installer struct {
	fs      afero.Fs
	runner  cmdrun.Runner
	client  *http.Client
	baseURL string
	logChan chan<- string
}

func NewInstaller(fs afero.Fs, runner cmdrun.Runner, logChan chan<- string) *Installer {
	return &Installer{
		fs:      fs,
		runner:  runner,
		client:  http.DefaultClient,
		baseURL: mediaBaseURL,
		logChan: logChan,
	}
}

func (i *Installer) log(message string) {
	if i.logChan != nil {
		i.logChan <- message
	}
}

// Install places the four font files under the platform font directory,
// creating it if absent, then refreshes the font cache when a refresh tool
// is available. On platforms without a known font directory it returns
// manual instructions and performs no download at all.
func (i *Installer) Install(ctx context.Context, plat platform.Platform, home string) (string, error) {
	if !plat.SupportsFontDownload() {
		return fmt.Sprintf("Automatic font installation is not supported on %s.\n"+
			"Download the MesloLGS NF fonts from %s and install them manually.\n%s",
			plat, i.baseURL, ManualReminder), nil
	}

	fontDir := plat.FontDir(home)
	if err := i.fs.MkdirAll(fontDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create font directory %s: %w", fontDir, err)
	}

	for _, asset := range MesloAssets {
		dest := filepath.Join(fontDir, asset)
		if exists, _ := afero.Exists(i.fs, dest); exists {
			i.log(fmt.Sprintf("%s already present, skipping", asset))
			continue
		}
		if err := i.download(ctx, asset, dest); err != nil {
			return "", err
		}
	}

	i.refreshCache(ctx)

	return ManualReminder, nil
}

func (i *Installer) download(ctx context.Context, asset, dest string) error {
	url := i.baseURL + escapeAssetName(asset)
	i.log(fmt.Sprintf("Downloading %s", asset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", asset, err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", asset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: HTTP %d", asset, resp.StatusCode)
	}

	file, err := i.fs.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	return nil
}

// refreshCache runs fc-cache when present and silently skips otherwise;
// macOS picks new fonts up without one.
func (i *Installer) refreshCache(ctx context.Context) {
	if _, ok := i.runner.LookPath("fc-cache"); !ok {
		return
	}
	if _, err := i.runner.Run(ctx, "fc-cache", "-f"); err != nil {
		i.log(fmt.Sprintf("fc-cache failed: %v", err))
	}
}

func escapeAssetName(name string) string {
	escaped := ""
	for _, r := range name {
		if r == ' ' {
			escaped += "%20"
		} else {
			escaped += string(r)
		}
	}
	return escaped
}
