package usercheck

import (
	"bufio"
	"bytes"
	"fmt"
	"os/user"
	"strings"

	"github.com/spf13/afero"
)

// Account is a local user and the attributes a service account is checked for.
type Account struct {
	Name   string
	UID    string
	GID    string
	Home   string
	Shell  string
	Groups []string // names of all groups the user belongs to
}

// UserLookup abstracts user lookup for testability.
type UserLookup interface {
	Lookup(username string) (*Account, error)
}

// RealUserLookup resolves identity and groups through os/user and reads the
// login shell from the passwd file, which os/user does not expose.
type RealUserLookup struct {
	FS         afero.Fs // default: OS filesystem
	PasswdPath string   // default: /etc/passwd
}

// Lookup looks up a user by username.
func (r *RealUserLookup) Lookup(username string) (*Account, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return nil, err
	}

	acct := &Account{
		Name: u.Username,
		UID:  u.Uid,
		GID:  u.Gid,
		Home: u.HomeDir,
	}

	gids, err := u.GroupIds()
	if err != nil {
		return nil, fmt.Errorf("failed to list groups of %s: %w", username, err)
	}
	for _, gid := range gids {
		g, err := user.LookupGroupId(gid)
		if err != nil {
			acct.Groups = append(acct.Groups, gid)
			continue
		}
		acct.Groups = append(acct.Groups, g.Name)
	}

	acct.Shell, err = r.shell(username)
	if err != nil {
		return nil, err
	}
	return acct, nil
}

func (r *RealUserLookup) shell(username string) (string, error) {
	fs := r.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	path := r.PasswdPath
	if path == "" {
		path = "/etc/passwd"
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return shellFromPasswd(data, username)
}

// shellFromPasswd returns the seventh field of the user's passwd entry.
func shellFromPasswd(data []byte, username string) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ":")
		if len(fields) == 7 && fields[0] == username {
			return fields[6], nil
		}
	}
	return "", fmt.Errorf("no passwd entry for %s", username)
}
