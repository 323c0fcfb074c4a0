package errors

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate 唯一键冲突
var ErrDuplicate = errors.New("记录已存在")

// mysqlDuplicateEntry MySQL ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// IsDuplicate 判断错误是否为 MySQL 唯一键冲突
func IsDuplicate(err error) bool {
	if errors.Is(err, ErrDuplicate) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
