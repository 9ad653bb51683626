package filecheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/afero"

	"github.com/vertti/installcheck/pkg/check"
)

// Check verifies that a path exists with the expected type, or that it is gone.
type Check struct {
	Path       string   // path to check
	ExpectFile bool     // expect a regular file
	ExpectDir  bool     // expect a directory
	Executable bool     // expect any execute bit
	Absent     bool     // expect the path not to exist
	FS         afero.Fs // injected for testing (default: OS filesystem)
}

// Run executes the file check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("file: %s", c.Path),
	}
	if c.Absent {
		result.Name = fmt.Sprintf("file: %s absent", c.Path)
	}

	fsys := c.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	info, err := fsys.Stat(c.Path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist) && c.Absent:
			result.AddDetail("not found")
			return result.Pass()
		case errors.Is(err, fs.ErrNotExist):
			return result.Fail("not found", err)
		case os.IsPermission(err):
			return result.Fail("permission denied", err)
		default:
			return result.Failf("stat failed: %v", err)
		}
	}

	if c.Absent {
		return result.Failf("%s still exists", describeType(info))
	}

	if err := c.checkTypeConstraint(info, &result); err != nil {
		return result
	}

	result.AddDetailf("permissions: %s", info.Mode().Perm())

	if c.Executable && !isExecutable(info.Mode()) {
		return result.Fail("not executable", fmt.Errorf("file is not executable"))
	}

	return result.Pass()
}

func (c *Check) checkTypeConstraint(info fs.FileInfo, result *check.Result) error {
	actual := describeType(info)

	switch {
	case c.ExpectDir && !info.IsDir():
		err := fmt.Errorf("expected directory, got %s", actual)
		result.Fail(err.Error(), err)
		return err
	case c.ExpectFile && !info.Mode().IsRegular():
		err := fmt.Errorf("expected file, got %s", actual)
		result.Fail(err.Error(), err)
		return err
	}

	result.AddDetailf("type: %s", actual)
	return nil
}

func describeType(info fs.FileInfo) string {
	mode := info.Mode()
	switch {
	case info.IsDir():
		return "directory"
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode.IsRegular():
		return "file"
	default:
		return "special file"
	}
}

// isExecutable checks if the mode has any execute bit set (owner, group, or other)
func isExecutable(mode fs.FileMode) bool {
	return mode&0o111 != 0
}
