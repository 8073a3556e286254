//go:build darwin

// Package dyld enumerates the shared libraries (Mach-O images) loaded into
// the current process, the macOS counterpart of parsing /proc/self/maps.
package dyld

/*
#include <mach-o/dyld.h>
#include <mach-o/loader.h>
#include <mach-o/getsect.h>
#include <stdint.h>
#include <string.h>

typedef struct {
    uint64_t start;
    uint64_t end;
} dyld_segment;

// rpprof_count_segments returns an upper bound on the number of LC_SEGMENT_64
// load commands across every loaded image, so the Go side can size its
// buffer before the real fill pass.
static int rpprof_count_segments(void) {
    int total = 0;
    uint32_t n = _dyld_image_count();
    for (uint32_t i = 0; i < n; i++) {
        const struct mach_header_64 *hdr = (const struct mach_header_64 *)_dyld_get_image_header(i);
        if (hdr == NULL) {
            continue;
        }
        const struct load_command *lc = (const struct load_command *)((const char *)hdr + sizeof(struct mach_header_64));
        for (uint32_t c = 0; c < hdr->ncmds; c++) {
            if (lc->cmd == LC_SEGMENT_64) {
                total++;
            }
            lc = (const struct load_command *)((const char *)lc + lc->cmdsize);
        }
    }
    return total;
}

// rpprof_fill_segments writes up to max segments (slide-adjusted
// [vmaddr, vmaddr+vmsize) ranges) into out, paired with the owning image's
// path via out_paths (each entry up to path_cap bytes). Returns the number
// written.
static int rpprof_fill_segments(dyld_segment *out, char *out_paths, int path_cap, int max) {
    int total = 0;
    uint32_t n = _dyld_image_count();
    for (uint32_t i = 0; i < n && total < max; i++) {
        const struct mach_header_64 *hdr = (const struct mach_header_64 *)_dyld_get_image_header(i);
        const char *path = _dyld_get_image_name(i);
        intptr_t slide = _dyld_get_image_vmaddr_slide(i);
        if (hdr == NULL || path == NULL) {
            continue;
        }

        const struct load_command *lc = (const struct load_command *)((const char *)hdr + sizeof(struct mach_header_64));
        for (uint32_t c = 0; c < hdr->ncmds && total < max; c++) {
            if (lc->cmd == LC_SEGMENT_64) {
                const struct segment_command_64 *seg = (const struct segment_command_64 *)lc;
                uint64_t start = seg->vmaddr + (uint64_t)slide;
                out[total].start = start;
                out[total].end = start + seg->vmsize;

                char *dst = out_paths + (size_t)total * (size_t)path_cap;
                strncpy(dst, path, (size_t)path_cap - 1);
                dst[path_cap - 1] = '\0';

                total++;
            }
            lc = (const struct load_command *)((const char *)lc + lc->cmdsize);
        }
    }
    return total;
}
*/
import "C"

import "unsafe"

// Segment is one loaded Mach-O segment's virtual address range, slide-adjusted.
type Segment struct {
	Start    uint64
	End      uint64
	ImagePath string
}

const pathCap = 1024

// Segments enumerates every LC_SEGMENT_64 range across all currently loaded
// Mach-O images.
func Segments() ([]Segment, error) {
	count := int(C.rpprof_count_segments())
	if count == 0 {
		return nil, nil
	}

	cSegs := make([]C.dyld_segment, count)
	paths := make([]byte, count*pathCap)

	n := int(C.rpprof_fill_segments(
		(*C.dyld_segment)(unsafe.Pointer(&cSegs[0])),
		(*C.char)(unsafe.Pointer(&paths[0])),
		C.int(pathCap),
		C.int(count),
	))

	out := make([]Segment, n)
	for i := 0; i < n; i++ {
		pathBytes := paths[i*pathCap : (i+1)*pathCap]
		end := indexByte(pathBytes, 0)
		out[i] = Segment{
			Start:     uint64(cSegs[i].start),
			End:       uint64(cSegs[i].end),
			ImagePath: string(pathBytes[:end]),
		}
	}
	return out, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return len(b)
}
