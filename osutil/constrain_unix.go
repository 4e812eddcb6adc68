//go:build !windows
// +build !windows

package osutil

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
	"syscall"
)

const me = "osutil.Constrain: "

// Constrain reduces the privileges of the process: chroot to the nominated directory,
// then setgid (clearing supplementary groups), then setuid. Each step is skipped when
// the corresponding parameter is empty.
//
// The order matters. Symbolic names are converted to ids first, while /etc/passwd is
// still reachable; the chroot happens while we still hold the power to make it; groups
// are dropped before the uid because afterwards we no longer may; and the setuid comes
// last because it makes the whole sequence irreversible.
func Constrain(userName, groupName, chrootDir string) error {
	uid := -1
	gid := -1

	if len(userName) > 0 {
		u, err := user.Lookup(userName)
		if err != nil {
			return fmt.Errorf(me+"user lookup: %w", err)
		}
		uid, err = strconv.Atoi(u.Uid)
		if err != nil {
			return fmt.Errorf(me+"uid '%s' is not numeric: %w", u.Uid, err)
		}
	}

	if len(groupName) > 0 {
		g, err := user.LookupGroup(groupName)
		if err != nil {
			return fmt.Errorf(me+"group lookup: %w", err)
		}
		gid, err = strconv.Atoi(g.Gid)
		if err != nil {
			return fmt.Errorf(me+"gid '%s' is not numeric: %w", g.Gid, err)
		}
	}

	if len(chrootDir) > 0 {
		if err := os.Chdir(chrootDir); err != nil {
			return fmt.Errorf(me+"chdir: %w", err)
		}
		if err := syscall.Chroot(chrootDir); err != nil {
			return fmt.Errorf(me+"chroot: %w", err)
		}
		if err := os.Chdir("/"); err != nil {
			return fmt.Errorf(me+"chdir /: %w", err)
		}
	}

	if gid != -1 {
		if err := syscall.Setgroups([]int{}); err != nil {
			return fmt.Errorf(me+"clearing group list: %w", err)
		}
		if err := syscall.Setgid(gid); err != nil {
			return fmt.Errorf(me+"setgid %d/%s: %w", gid, groupName, err)
		}
	}

	if uid != -1 {
		if err := syscall.Setuid(uid); err != nil {
			return fmt.Errorf(me+"setuid %d/%s: %w", uid, userName, err)
		}
	}

	return nil
}

// ConstraintReport returns a printable summary of the uid/gid/cwd of the process,
// normally logged after Constrain() to confirm privileges really did drop.
func ConstraintReport() string {
	gList, _ := os.Getgroups()
	gStr := make([]string, 0, len(gList))
	for _, g := range gList {
		gStr = append(gStr, strconv.Itoa(g))
	}
	cwd, _ := os.Getwd()

	return fmt.Sprintf("uid=%d gid=%d (%s) cwd=%s",
		os.Getuid(), os.Getgid(), strings.Join(gStr, ","), cwd)
}
