package logging

import (
	"fmt"
	"strings"
)

// GormWriter routes gorm's logger output through zerolog. Gorm only hands
// it slow queries and SQL errors, so every line is logged at warn.
type GormWriter struct{}

// Printf implements gorm.io/gorm/logger.Writer.
func (GormWriter) Printf(format string, args ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	l := WithComponent("gorm")
	l.Warn().Msg(msg)
}
