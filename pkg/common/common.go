package common

import (
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
)

const (
	NA       = "N/A"
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	idNode     *snowflake.Node
	idNodeOnce sync.Once
	idNodeNum  int64 = 1
)

// SetNodeID sets the snowflake node number used by UUIDint64.
// It must be called before the first id is generated to take effect.
func SetNodeID(n int64) {
	idNodeNum = n
}

// UUIDint64 returns a new snowflake id.
func UUIDint64() int64 {
	idNodeOnce.Do(func() {
		node, err := snowflake.NewNode(idNodeNum)
		if err != nil {
			node, _ = snowflake.NewNode(1)
		}
		idNode = node
	})
	return idNode.Generate().Int64()
}

// IfEmptyStr returns defval when src is blank.
func IfEmptyStr(src string, defval string) string {
	if strings.TrimSpace(src) == "" {
		return defval
	}
	return src
}

// InSlice reports whether v is one of the values, ignoring case.
func InSlice(v string, values []string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
