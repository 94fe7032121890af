package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"cliptrim/domain/video"

	"github.com/google/uuid"
)

// Workspaces implements video.WorkspaceAllocator. Each workspace is a
// uuid-named directory under the configured root, exclusively owned by one
// operation. Nothing here deletes workspaces; they are caller-owned, to be
// reaped when no longer referenced.
type Workspaces struct {
	root string
}

// NewWorkspaces creates a workspace allocator. An empty root falls back to
// the system temp directory.
func NewWorkspaces(root string) *Workspaces {
	if root == "" {
		root = os.TempDir()
	}
	return &Workspaces{root: root}
}

// Root returns the directory workspaces are created under
func (w *Workspaces) Root() string {
	return w.root
}

// NewWorkspace implements video.WorkspaceAllocator
func (w *Workspaces) NewWorkspace() (string, error) {
	dir := filepath.Join(w.root, "trim-"+uuid.New().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create workspace %s: %w", dir, err)
	}
	return dir, nil
}

// Ensure Workspaces implements video.WorkspaceAllocator
var _ video.WorkspaceAllocator = (*Workspaces)(nil)
