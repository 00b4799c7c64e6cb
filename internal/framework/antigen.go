package framework

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"
)

const antigenURL = "https://git.io/antigen"

const antigenBlockMarker = "zshup: antigen"

const antigenBlock = `source ~/antigen.zsh
antigen theme romkatv/powerlevel10k
antigen apply
`

// AntigenInstaller downloads the antigen manager script when absent and
// registers the theme through a marker-keyed configuration block.
type AntigenInstaller struct {
	baseInstaller
	client    *http.Client
	scriptURL string
}

func (i *AntigenInstaller) Strategy() Strategy {
	return StrategyAntigen
}

func (i *AntigenInstaller) Install(ctx context.Context) error {
	if err := i.ensureScript(ctx); err != nil {
		return err
	}
	return i.editor.EnsureBlock(antigenBlockMarker, antigenBlock)
}

func (i *AntigenInstaller) ensureScript(ctx context.Context) error {
	dest := filepath.Join(i.home, "antigen.zsh")
	if exists, _ := afero.Exists(i.fs, dest); exists {
		i.log("antigen.zsh already present, skipping download")
		return nil
	}

	i.log(fmt.Sprintf("Downloading antigen from %s", i.scriptURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.scriptURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build antigen request: %w", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download antigen: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download antigen: HTTP %d", resp.StatusCode)
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
