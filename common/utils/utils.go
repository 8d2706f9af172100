package utils

import (
	"fmt"

	"github.com/framebluffer/KTX-Software/go/common/constant"
	"github.com/google/uuid"
)

// GetTempFilePath returns a unique sibling path of path for staging a write
// that is later renamed into place.
func GetTempFilePath(path string) string {
	return fmt.Sprintf("%s.%s%s", path, uuid.NewString(), constant.TempFileSuffix)
}

// Padding returns how many bytes bring n up to a multiple of align.
func Padding(n int64, align int64) int64 {
	return (align - n%align) % align
}
