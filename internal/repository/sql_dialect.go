package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// likeEscapeChar LIKE 转义字符
const likeEscapeChar = `\`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// containsIgnoreCaseCondition 构建大小写不敏感的子串匹配条件与参数。
func containsIgnoreCaseCondition(db *gorm.DB, column, value string) (string, string) {
	return containsIgnoreCaseConditionByDialect(dbDialectName(db), column, value)
}

func containsIgnoreCaseConditionByDialect(dialect, column, value string) (string, string) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
	switch dialect {
	case "postgres", "postgresql":
		return fmt.Sprintf("%s ILIKE ? ESCAPE '%s'", column, likeEscapeChar), pattern
	default:
		// sqlite 的 LIKE 仅对 ASCII 大小写不敏感，统一转小写比较
		return fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '%s'", column, likeEscapeChar), pattern
	}
}
