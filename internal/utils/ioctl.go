package utils

import (
	"os"

	"golang.org/x/sys/unix"
)

// IOCtl は指定されたデバイスファイルに対してioctlを発行する
func IOCtl(deviceFile *os.File, cmd uintptr, arg uintptr) error {
	return IOCtlFd(deviceFile.Fd(), cmd, arg)
}

// IOCtlFd は生のファイルディスクリプタに対してioctlを発行する
func IOCtlFd(fd uintptr, cmd uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, cmd, arg)
	if errno != 0 {
		return errno
	}
	return nil
}
