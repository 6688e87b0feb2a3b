package build

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	esbuild "github.com/evanw/esbuild/pkg/api"
)

// copyStaticAssets copies the static asset tree into outDir, minifying CSS
// and JS on the way through. Everything else is copied verbatim.
func (b *Builder) copyStaticAssets(outDir string) error {
	if b.staticFS == nil {
		return nil
	}
	return fs.WalkDir(b.staticFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(b.staticFS, p)
		if err != nil {
			return err
		}

		switch strings.ToLower(filepath.Ext(p)) {
		case ".css":
			data, err = minify(data, esbuild.LoaderCSS)
		case ".js":
			data, err = minify(data, esbuild.LoaderJS)
		}
		if err != nil {
			return fmt.Errorf("asset %q: %w", p, err)
		}

		return writeFile(filepath.Join(outDir, filepath.FromSlash(p)), data)
	})
}

func minify(src []byte, loader esbuild.Loader) ([]byte, error) {
	result := esbuild.Transform(string(src), esbuild.TransformOptions{
		Loader:            loader,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("esbuild: %s", result.Errors[0].Text)
	}
	return result.Code, nil
}
