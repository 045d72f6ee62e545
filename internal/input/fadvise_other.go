//go:build !linux

package input

import "os"

func adviseSequential(f *os.File) {}
