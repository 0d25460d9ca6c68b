package installer

import (
	"fmt"
	"os"

	"brew-formatter/internal/logger"
	"brew-formatter/internal/state"
)

// Remove deletes a tool's directory and forgets it in the state file, so the
// next Install provisions it from scratch. Removing a tool that is not
// present is not an error.
func (i *Installer) Remove(tool Tool) error {
	dir := tool.Dir(i.Paths.ToolsDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Debug("[DEBUG] %s not provisioned, nothing to remove\n", tool.Name)
		return nil
	}

	logger.Info("[INFO] Removing %s from %s\n", tool.Name, dir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", tool.Name, err)
	}

	st := state.Load(i.Paths.StateFile)
	st.Forget(tool.Name)
	state.Save(i.Paths.StateFile, st)
	return nil
}
