package alloc

import (
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Allocate maps zeroed anonymous memory of the given size.
func Allocate(size uint64, useHugePages bool) (unsafe.Pointer, func(), error) {
	if size == 0 {
		return nil, nil, errors.New("allocation size must be greater than zero")
	}

	opts := unix.MAP_PRIVATE | unix.MAP_ANONYMOUS | unix.MAP_POPULATE
	if useHugePages {
		// When using huge pages, the size must be a multiple of the hugepage size. Otherwise, munmap fails.
		opts |= unix.MAP_HUGETLB
	}
	dataP, err := unix.MmapPtr(-1, 0, nil, uintptr(size), unix.PROT_READ|unix.PROT_WRITE, opts)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "memory allocation failed")
	}

	return dataP, func() {
		// mmap might allocate more memory because it is always a multiple of the page size.
		// munmap must receive that size, otherwise memory is not released.
		// There is no function returning hugepage size, but only 2MB or 1GB are possible, so both are tried.
		if useHugePages {
			if err := unmap(dataP, uintptr(size), 2*1024*1024); err == nil {
				return
			}
			if err := unmap(dataP, uintptr(size), 1024*1024*1024); err == nil {
				return
			}
		}

		_ = unmap(dataP, uintptr(size), uintptr(os.Getpagesize()))
	}, nil
}

func unmap(ptr unsafe.Pointer, size, pageSize uintptr) error {
	return unix.MunmapPtr(ptr, (size+pageSize-1)/pageSize*pageSize)
}
