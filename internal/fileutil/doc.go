// Package fileutil provides the filesystem measurements rclean reports.
//
// # Purpose
//
// The fileutil package is the single place where sizes are computed and
// formatted:
//   - DirSize walks a directory tree and totals the regular files inside it
//   - FormatSize renders a byte count with IEC binary units
//
// # DirSize
//
// DirSize never follows symbolic links, so a link inside a directory target
// contributes nothing and cannot pull in data from outside the tree. Only
// regular files are counted. Unreadable subdirectories are collected as
// non-fatal errors and the walk continues; only a root that cannot be
// accessed at all is a hard error.
//
//	result, err := fileutil.DirSize("/path/to/.mypy_cache")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Bytes, result.Files)
//	for _, err := range result.Errors {
//	    log.Printf("partial size: %v", err)
//	}
//
// # FormatSize
//
// Byte counts below 1 KiB print as an integer ("512 B"). Larger values use two
// decimals of KiB, MiB, GiB or TiB:
//
//	fileutil.FormatSize(1536)          // "1.50 KiB"
//	fileutil.FormatSize(5 * 1 << 30)   // "5.00 GiB"
//
// # Standard Library Only
//
// Sizing is a thin layer over io/fs walking; the unit table is fixed by the
// report format, so no formatting library is used.
package fileutil
