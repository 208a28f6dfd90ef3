package display

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solarlune/tetra3d"
)

// DiskLoader returns a LoadFunc resolving asset paths under dir and
// parsing them as glTF/GLB.
func DiskLoader(dir string) LoadFunc {
	return func(path string) (*tetra3d.Scene, error) {
		data, err := os.ReadFile(filepath.Join(dir, path))
		if err != nil {
			return nil, fmt.Errorf("reading model %s: %w", path, err)
		}
		library, err := tetra3d.LoadGLTFData(bytes.NewReader(data), nil)
		if err != nil {
			return nil, fmt.Errorf("parsing model %s: %w", path, err)
		}
		scene := library.ExportedScene
		if scene == nil {
			return nil, fmt.Errorf("model %s exports no scene", path)
		}
		return scene, nil
	}
}
