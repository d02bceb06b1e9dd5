package utils

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const reportIDLength = 8

// GenerateReportID returns a short, human-copyable report id such as
// "YGN-3F2A1B7C". The suffix is 8 uppercase hex characters drawn from a
// random uuid, which is enough entropy for the bot's lifetime; the store
// still enforces uniqueness at write time. An empty prefix yields a bare
// suffix.
func GenerateReportID(prefix string) string {
	id := uuid.New()
	suffix := strings.ToUpper(hex.EncodeToString(id[:]))[:reportIDLength]
	if prefix == "" {
		return suffix
	}
	return fmt.Sprintf("%s-%s", strings.ToUpper(prefix), suffix)
}
