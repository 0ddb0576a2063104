package game

import (
	"fmt"
	"strconv"
	"strings"
)

// FileChars names board files, skipping j like the traditional notation.
const FileChars = "abcdefghiklmnoprst"

// SquareName formats sq as file letter plus 1-based rank, e.g. "a1".
func SquareName(n, sq int) string {
	return fmt.Sprintf("%c%d", FileChars[sq%n], sq/n+1)
}

// ParseSquare is the inverse of SquareName.
func ParseSquare(n int, name string) (int, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("%w: square %q", ErrInvalidArgument, name)
	}
	file := strings.IndexByte(FileChars, name[0])
	if file < 0 || file >= n {
		return 0, fmt.Errorf("%w: invalid file in square %q", ErrInvalidArgument, name)
	}
	rank, err := strconv.Atoi(name[1:])
	if err != nil || rank < 1 || rank > n {
		return 0, fmt.Errorf("%w: invalid rank in square %q", ErrInvalidArgument, name)
	}
	return (rank-1)*n + file, nil
}
